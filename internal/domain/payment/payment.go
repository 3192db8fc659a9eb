package payment

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gostorefront/fulfillment/internal/domain/order"
)

// Confirmation is the presentation view returned after a successful
// settlement and rendered into the customer notification.
type Confirmation struct {
	OrderID         string
	TotalAmount     decimal.Decimal
	Price           decimal.Decimal
	Discount        decimal.Decimal
	ShippingCost    decimal.Decimal
	ShippingAddress string
	UserName        string
	PhoneNumber     string
	Email           string
	Note            string
	OrderDate       time.Time
	OrderStatus     order.Status
	Items           []ConfirmationItem
}

// ConfirmationItem reshapes a frozen cart line for presentation.
type ConfirmationItem struct {
	ProductID    string
	CategoryName string
	ProductName  string
	Quantity     int
	Price        decimal.Decimal
	Discount     decimal.Decimal
	ImagePath    string
}

// NewConfirmation builds the settlement view from an order.
func NewConfirmation(o *order.Order) *Confirmation {
	items := make([]ConfirmationItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = ConfirmationItem{
			ProductID:    item.ProductID,
			CategoryName: item.CategoryName,
			ProductName:  item.ProductName,
			Quantity:     item.Quantity,
			Price:        item.Price,
			Discount:     item.Discount,
			ImagePath:    item.ImagePath,
		}
	}

	return &Confirmation{
		OrderID:         o.ID,
		TotalAmount:     o.TotalAmount,
		Price:           o.Price,
		Discount:        o.Discount,
		ShippingCost:    o.ShippingCost,
		ShippingAddress: o.ShippingAddress,
		UserName:        o.UserName,
		PhoneNumber:     o.PhoneNumber,
		Email:           o.Email,
		Note:            o.Note,
		OrderDate:       o.OrderDate,
		OrderStatus:     o.Status,
		Items:           items,
	}
}

// NotificationError indicates the confirmation could not be delivered.
// Settlement aborts before any mutation when this occurs, so the order and
// cart are guaranteed intact and the payment can be retried.
type NotificationError struct {
	OrderID string
	Err     error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("confirmation delivery failed for order %s: %v", e.OrderID, e.Err)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}
