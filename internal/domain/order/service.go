package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/gostorefront/fulfillment/internal/domain/address"
	"github.com/gostorefront/fulfillment/internal/domain/cart"
	"github.com/gostorefront/fulfillment/internal/domain/shipping"
)

// CreateOrderRequest holds the input for creating an order. UserID and
// AddressID are mandatory; the contact fields are carried onto the order for
// the later payment confirmation.
type CreateOrderRequest struct {
	UserID      string
	AddressID   string
	UserName    string
	PhoneNumber string
	Email       string
	Note        string
}

// Service coordinates address lookup, shipping-cost resolution, cart
// snapshotting, and pricing into the order lifecycle operations.
type Service struct {
	addresses address.Repository
	shipping  shipping.Repository
	carts     cart.Repository
	orders    Repository

	now   func() time.Time
	newID func() string
}

// NewService creates an order Service with the required collaborators.
func NewService(
	addresses address.Repository,
	shipping shipping.Repository,
	carts cart.Repository,
	orders Repository,
) *Service {
	return &Service{
		addresses: addresses,
		shipping:  shipping,
		carts:     carts,
		orders:    orders,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
}

// CreateOrder turns the user's current cart into a priced pending order.
//
// The cart itself is left untouched: creating an order is a quote, not a
// cart-clearing action. The live cart is cleared only at payment time.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if req.UserID == "" {
		return nil, &MissingFieldError{Field: "user_id"}
	}
	if req.AddressID == "" {
		return nil, &MissingFieldError{Field: "address_id"}
	}

	// Fast-path duplicate check. The unique constraint enforced by the
	// repository on Create remains the authoritative signal; two concurrent
	// creations for the same user can both pass this check.
	if _, err := s.orders.FindOpenByUser(ctx, req.UserID); err == nil {
		return nil, ErrAlreadyExists
	} else if !errors.Is(err, ErrNotFound) {
		return nil, errors.Wrap(err, "check open order")
	}

	addr, err := s.addresses.GetByID(ctx, req.AddressID)
	if err != nil {
		if errors.Is(err, address.ErrNotFound) {
			return nil, err
		}
		return nil, errors.Wrapf(err, "get address %s", req.AddressID)
	}

	cost, err := s.shipping.ResolveByProvince(ctx, addr.ProvinceCode)
	if err != nil {
		if errors.Is(err, shipping.ErrNotFound) {
			return nil, err
		}
		return nil, errors.Wrapf(err, "resolve shipping cost for province %s", addr.ProvinceCode)
	}

	items, err := s.carts.ItemsByUser(ctx, req.UserID)
	if err != nil {
		return nil, errors.Wrapf(err, "snapshot cart for user %s", req.UserID)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	pricing := CalculatePricing(items, cost.Amount)

	o := &Order{
		ID:              s.newID(),
		UserID:          req.UserID,
		UserName:        req.UserName,
		PhoneNumber:     req.PhoneNumber,
		Email:           req.Email,
		Note:            req.Note,
		AddressID:       addr.ID,
		ShippingAddress: addr.Render(),
		ShippingCostID:  cost.ID,
		ShippingCost:    cost.Amount,
		Price:           pricing.Price,
		Discount:        pricing.Discount,
		TotalAmount:     pricing.Total,
		Status:          StatusPending,
		OrderDate:       s.now(),
		// Owned copy: the live cart stays mutable while this snapshot is frozen.
		Items: append([]cart.Item(nil), items...),
	}

	if err := s.orders.Create(ctx, o); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return nil, ErrAlreadyExists
		}
		return nil, errors.Wrap(err, "create order")
	}

	return o, nil
}

// DeleteOrder removes an order permanently. It refuses to delete while the
// owning user's live cart still has items, since those were meant to be
// cleared together with the order at settlement.
func (s *Service) DeleteOrder(ctx context.Context, orderID string) error {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return errors.Wrapf(err, "get order %s", orderID)
	}

	items, err := s.carts.ItemsByUser(ctx, o.UserID)
	if err != nil {
		return errors.Wrapf(err, "inspect cart for user %s", o.UserID)
	}
	if len(items) > 0 {
		return ErrCartNotEmpty
	}

	if err := s.orders.Delete(ctx, o.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return errors.Wrapf(err, "delete order %s", o.ID)
	}

	return nil
}
