package cart

import (
	"context"

	"github.com/shopspring/decimal"
)

// Item is a single line in a user's live cart. Price and Discount are line
// totals read verbatim at order-creation time; once embedded into an order
// the items become a frozen snapshot independent of the live cart.
type Item struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	ProductID    string          `json:"product_id"`
	CategoryName string          `json:"category_name"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Discount     decimal.Decimal `json:"discount"`
	ImagePath    string          `json:"image_path"`
}

// Repository provides the cart operations the order workflow depends on.
// ItemsByUser returns an empty slice when the user has no cart. ClearByUser
// is idempotent: clearing an already-empty cart is not an error.
type Repository interface {
	ItemsByUser(ctx context.Context, userID string) ([]Item, error)
	ClearByUser(ctx context.Context, userID string) error
}
