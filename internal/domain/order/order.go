package order

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/gostorefront/fulfillment/internal/domain/cart"
)

// Status describes the lifecycle state of an order. The workflow only ever
// stores Pending: a paid order is archived by deletion rather than
// transitioned, and a cancelled order is removed outright.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// Sentinel errors for the order workflow.
var (
	// ErrNotFound is returned when no order exists for a given ID.
	ErrNotFound = errors.New("order not found")
	// ErrAlreadyExists is returned when the user already has an open order.
	// The storage layer's uniqueness constraint is the authoritative source
	// of this error; the orchestrator's pre-create check is a fast path only.
	ErrAlreadyExists = errors.New("user already has an open order")
	// ErrEmptyCart is returned when order creation finds no cart items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrCartNotEmpty blocks deletion while the user's live cart has items.
	ErrCartNotEmpty = errors.New("cart still has items")
)

// MissingFieldError indicates a required request field was absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// Order is the central aggregate: a priced, pending order with a frozen
// snapshot of the cart it was created from. All monetary fields are
// computed once at creation and never recomputed.
type Order struct {
	ID              string
	UserID          string
	UserName        string
	PhoneNumber     string
	Email           string
	Note            string
	AddressID       string
	ShippingAddress string
	ShippingCostID  string
	ShippingCost    decimal.Decimal
	Price           decimal.Decimal
	Discount        decimal.Decimal
	TotalAmount     decimal.Decimal
	Status          Status
	OrderDate       time.Time
	Items           []cart.Item
}

// Repository defines persistence operations for orders.
//
// Create must enforce at most one open order per user and return
// ErrAlreadyExists on violation. FindOpenByUser and GetByID return
// ErrNotFound when no matching order exists, as does Delete.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	FindOpenByUser(ctx context.Context, userID string) (*Order, error)
	Delete(ctx context.Context, id string) error
}
