package address

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when a requested address does not exist.
var ErrNotFound = errors.New("address not found")

// Address is an immutable reference record describing a delivery location.
// Orders keep a rendered copy of the address, never a live reference, so
// later edits to reference data do not alter existing orders.
type Address struct {
	ID            string
	ProvinceCode  string
	ProvinceName  string
	DistrictName  string
	WardName      string
	StreetAddress string
}

// Render produces the single-line shipping address embedded into orders
// and confirmation emails.
func (a Address) Render() string {
	return fmt.Sprintf("%s, %s, %s %s", a.ProvinceName, a.DistrictName, a.WardName, a.StreetAddress)
}

// Repository defines read operations for address reference data.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Address, error)
}
