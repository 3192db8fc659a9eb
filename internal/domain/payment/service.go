package payment

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/gostorefront/fulfillment/internal/domain/cart"
	"github.com/gostorefront/fulfillment/internal/domain/order"
	"github.com/gostorefront/fulfillment/internal/notification"
)

// Service settles payments: it confirms the order to the customer, clears
// the live cart, and retires the order record.
type Service struct {
	orders  order.Repository
	carts   cart.Repository
	gateway notification.Gateway
}

// NewService creates a settlement Service.
func NewService(orders order.Repository, carts cart.Repository, gateway notification.Gateway) *Service {
	return &Service{
		orders:  orders,
		carts:   carts,
		gateway: gateway,
	}
}

// ProcessPayment settles the given order.
//
// The confirmation is delivered before any mutation on purpose: a delivery
// failure leaves both the order and the cart intact so the payment remains
// resumable. The clear-cart and delete-order steps that follow are not
// atomic with it; if either fails after a successful send, the partial state
// is logged distinctly for manual reconciliation and a retry risks a
// duplicate confirmation.
func (s *Service) ProcessPayment(ctx context.Context, orderID string) (*Confirmation, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			return nil, err
		}
		return nil, errors.Wrapf(err, "get order %s", orderID)
	}

	view := NewConfirmation(o)

	body, err := notification.RenderOrderConfirmation(confirmationEmail(view))
	if err != nil {
		return nil, errors.Wrap(err, "render confirmation")
	}

	msg := notification.Message{
		To:      []string{o.Email},
		Subject: notification.OrderConfirmationSubject,
		Body:    body,
	}
	if err := s.gateway.Send(ctx, msg); err != nil {
		return nil, &NotificationError{OrderID: o.ID, Err: err}
	}

	if err := s.carts.ClearByUser(ctx, o.UserID); err != nil {
		s.logPartialSettlement(ctx, o.ID, "clear_cart", err)
		return nil, errors.Wrapf(err, "clear cart for user %s", o.UserID)
	}

	if err := s.orders.Delete(ctx, o.ID); err != nil {
		s.logPartialSettlement(ctx, o.ID, "delete_order", err)
		return nil, errors.Wrapf(err, "delete order %s", o.ID)
	}

	return view, nil
}

// logPartialSettlement records a settlement that failed after the
// confirmation was already sent. These need manual reconciliation: the
// customer was notified but the order is still open.
func (s *Service) logPartialSettlement(ctx context.Context, orderID, step string, err error) {
	zctx.From(ctx).Error("settlement incomplete after confirmation sent",
		zap.String("order_id", orderID),
		zap.String("failed_step", step),
		zap.Error(err),
	)
}

func confirmationEmail(view *Confirmation) notification.OrderEmail {
	items := make([]notification.OrderEmailItem, len(view.Items))
	for i, item := range view.Items {
		items[i] = notification.OrderEmailItem{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
	}

	return notification.OrderEmail{
		OrderID:         view.OrderID,
		CustomerName:    view.UserName,
		ShippingAddress: view.ShippingAddress,
		PhoneNumber:     view.PhoneNumber,
		Note:            view.Note,
		OrderDate:       view.OrderDate,
		Price:           view.Price,
		Discount:        view.Discount,
		ShippingCost:    view.ShippingCost,
		TotalAmount:     view.TotalAmount,
		Items:           items,
	}
}
