package shipping

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when no shipping rate is registered for a province.
var ErrNotFound = errors.New("shipping cost not found")

// Cost is the delivery rate for a single province. It is looked up during
// order creation and never mutated by the order workflow; the order copies
// the amount so later rate changes do not affect existing orders.
type Cost struct {
	ID           string
	ProvinceCode string
	Amount       decimal.Decimal
}

// Repository resolves shipping rates by province code.
type Repository interface {
	ResolveByProvince(ctx context.Context, provinceCode string) (*Cost, error)
}
