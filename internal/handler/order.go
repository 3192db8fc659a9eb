package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gostorefront/fulfillment/internal/domain/cart"
	"github.com/gostorefront/fulfillment/internal/domain/order"
)

// createOrderRequest is the JSON body for POST /api/orders.
type createOrderRequest struct {
	UserID      string `json:"user_id"`
	AddressID   string `json:"address_id"`
	UserName    string `json:"user_name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Note        string `json:"note"`
}

// orderResponse mirrors the order aggregate for API consumers. Monetary
// values are rendered as JSON numbers, following the rest of the API.
type orderResponse struct {
	ID              string             `json:"id"`
	UserID          string             `json:"user_id"`
	UserName        string             `json:"user_name,omitempty"`
	PhoneNumber     string             `json:"phone_number,omitempty"`
	Email           string             `json:"email,omitempty"`
	Note            string             `json:"note,omitempty"`
	AddressID       string             `json:"address_id"`
	ShippingAddress string             `json:"shipping_address"`
	ShippingCost    float64            `json:"shipping_cost"`
	Price           float64            `json:"price"`
	Discount        float64            `json:"discount"`
	TotalAmount     float64            `json:"total_amount"`
	Status          string             `json:"status"`
	OrderDate       time.Time          `json:"order_date"`
	Items           []cartItemResponse `json:"items"`
}

type cartItemResponse struct {
	ProductID    string  `json:"product_id"`
	CategoryName string  `json:"category_name,omitempty"`
	ProductName  string  `json:"product_name"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	Discount     float64 `json:"discount"`
	ImagePath    string  `json:"image_path,omitempty"`
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
		return
	}

	o, err := h.orders.CreateOrder(r.Context(), order.CreateOrderRequest{
		UserID:      req.UserID,
		AddressID:   req.AddressID,
		UserName:    req.UserName,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Note:        req.Note,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(o))
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orderStore.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.DeleteOrder(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toOrderResponse(o *order.Order) orderResponse {
	return orderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		UserName:        o.UserName,
		PhoneNumber:     o.PhoneNumber,
		Email:           o.Email,
		Note:            o.Note,
		AddressID:       o.AddressID,
		ShippingAddress: o.ShippingAddress,
		ShippingCost:    o.ShippingCost.InexactFloat64(),
		Price:           o.Price.InexactFloat64(),
		Discount:        o.Discount.InexactFloat64(),
		TotalAmount:     o.TotalAmount.InexactFloat64(),
		Status:          string(o.Status),
		OrderDate:       o.OrderDate,
		Items:           toCartItemResponses(o.Items),
	}
}

func toCartItemResponses(items []cart.Item) []cartItemResponse {
	out := make([]cartItemResponse, len(items))
	for i, item := range items {
		out[i] = cartItemResponse{
			ProductID:    item.ProductID,
			CategoryName: item.CategoryName,
			ProductName:  item.ProductName,
			Quantity:     item.Quantity,
			Price:        item.Price.InexactFloat64(),
			Discount:     item.Discount.InexactFloat64(),
			ImagePath:    item.ImagePath,
		}
	}
	return out
}
