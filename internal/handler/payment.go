package handler

import (
	"net/http"
	"time"

	"github.com/gostorefront/fulfillment/internal/domain/payment"
)

// confirmationResponse is returned after a successful settlement. The order
// itself no longer exists at that point, so this is the caller's record.
type confirmationResponse struct {
	OrderID         string                     `json:"order_id"`
	UserName        string                     `json:"user_name,omitempty"`
	PhoneNumber     string                     `json:"phone_number,omitempty"`
	Email           string                     `json:"email,omitempty"`
	Note            string                     `json:"note,omitempty"`
	ShippingAddress string                     `json:"shipping_address"`
	ShippingCost    float64                    `json:"shipping_cost"`
	Price           float64                    `json:"price"`
	Discount        float64                    `json:"discount"`
	TotalAmount     float64                    `json:"total_amount"`
	OrderStatus     string                     `json:"order_status"`
	OrderDate       time.Time                  `json:"order_date"`
	Items           []confirmationItemResponse `json:"items"`
}

type confirmationItemResponse struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"discount"`
}

func (h *Handler) processPayment(w http.ResponseWriter, r *http.Request) {
	view, err := h.settlement.ProcessPayment(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toConfirmationResponse(view))
}

func toConfirmationResponse(c *payment.Confirmation) confirmationResponse {
	items := make([]confirmationItemResponse, len(c.Items))
	for i, item := range c.Items {
		items[i] = confirmationItemResponse{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price.InexactFloat64(),
			Discount:    item.Discount.InexactFloat64(),
		}
	}

	return confirmationResponse{
		OrderID:         c.OrderID,
		UserName:        c.UserName,
		PhoneNumber:     c.PhoneNumber,
		Email:           c.Email,
		Note:            c.Note,
		ShippingAddress: c.ShippingAddress,
		ShippingCost:    c.ShippingCost.InexactFloat64(),
		Price:           c.Price.InexactFloat64(),
		Discount:        c.Discount.InexactFloat64(),
		TotalAmount:     c.TotalAmount.InexactFloat64(),
		OrderStatus:     string(c.OrderStatus),
		OrderDate:       c.OrderDate,
		Items:           items,
	}
}
