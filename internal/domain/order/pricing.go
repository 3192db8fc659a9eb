package order

import (
	"github.com/shopspring/decimal"

	"github.com/gostorefront/fulfillment/internal/domain/cart"
)

// Pricing holds the order totals derived from a cart snapshot and a shipping
// cost. Price and Discount are read verbatim from the line items; no catalog
// pricing rules apply here.
type Pricing struct {
	Price    decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// CalculatePricing computes order totals from cart items and a shipping cost.
// It is a pure function so pricing can be tested without any storage:
//
//	price    = Σ item.Price
//	discount = Σ item.Discount
//	total    = price − discount + shippingCost
func CalculatePricing(items []cart.Item, shippingCost decimal.Decimal) Pricing {
	price := decimal.Zero
	discount := decimal.Zero
	for _, item := range items {
		price = price.Add(item.Price)
		discount = discount.Add(item.Discount)
	}

	return Pricing{
		Price:    price,
		Discount: discount,
		Total:    price.Sub(discount).Add(shippingCost),
	}
}
