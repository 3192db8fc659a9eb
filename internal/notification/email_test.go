package notification

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderOrderConfirmation(t *testing.T) {
	body, err := RenderOrderConfirmation(OrderEmail{
		OrderID:         "order-1",
		CustomerName:    "Alice",
		ShippingAddress: "Ho Chi Minh, District 1, Ben Nghe 12 Le Loi",
		PhoneNumber:     "0123456789",
		Note:            "leave at the door",
		OrderDate:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Price:           decimal.RequireFromString("150.00"),
		Discount:        decimal.RequireFromString("10.00"),
		ShippingCost:    decimal.RequireFromString("20.00"),
		TotalAmount:     decimal.RequireFromString("160.00"),
		Items: []OrderEmailItem{
			{ProductName: "Widget", Quantity: 2, Price: decimal.RequireFromString("100.00")},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Hello Alice")
	assert.Contains(t, body, "order order-1")
	assert.Contains(t, body, "Widget x2")
	assert.Contains(t, body, "Total:         160")
	assert.Contains(t, body, "Ho Chi Minh, District 1")
	assert.Contains(t, body, "2025-06-01 12:00")
}

func TestRenderOrderConfirmation_OptionalFieldsOmitted(t *testing.T) {
	body, err := RenderOrderConfirmation(OrderEmail{
		OrderID:      "order-2",
		CustomerName: "Bob",
		OrderDate:    time.Now(),
	})
	require.NoError(t, err)

	assert.NotContains(t, body, "Contact phone")
	assert.NotContains(t, body, "Note:")
}
