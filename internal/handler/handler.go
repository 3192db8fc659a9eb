// Package handler exposes the order lifecycle over plain net/http JSON
// endpoints, delegating all business logic to the domain services.
package handler

import (
	"net/http"

	"github.com/gostorefront/fulfillment/internal/domain/address"
	"github.com/gostorefront/fulfillment/internal/domain/order"
	"github.com/gostorefront/fulfillment/internal/domain/payment"
	"github.com/gostorefront/fulfillment/internal/domain/shipping"
)

// Handler bundles the order lifecycle endpoints.
type Handler struct {
	orders     *order.Service
	settlement *payment.Service
	orderStore order.Repository
	addresses  address.Repository
	shipping   shipping.Repository
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(
	orders *order.Service,
	settlement *payment.Service,
	orderStore order.Repository,
	addresses address.Repository,
	shipping shipping.Repository,
) *Handler {
	return &Handler{
		orders:     orders,
		settlement: settlement,
		orderStore: orderStore,
		addresses:  addresses,
		shipping:   shipping,
	}
}

// Register mounts all API routes on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/orders", h.createOrder)
	mux.HandleFunc("GET /api/orders/{id}", h.getOrder)
	mux.HandleFunc("DELETE /api/orders/{id}", h.deleteOrder)
	mux.HandleFunc("POST /api/orders/{id}/payment", h.processPayment)
	mux.HandleFunc("GET /api/shipping-costs/{addressID}", h.shippingCost)
}
