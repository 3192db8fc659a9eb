package payment

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gostorefront/fulfillment/internal/domain/cart"
	"github.com/gostorefront/fulfillment/internal/domain/order"
	"github.com/gostorefront/fulfillment/internal/notification"
)

// --- Mock implementations ---

type mockOrderRepo struct {
	byID      map[string]*order.Order
	deleteErr error
}

func (m *mockOrderRepo) Create(_ context.Context, o *order.Order) error {
	m.byID[o.ID] = o
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id string) (*order.Order, error) {
	o, ok := m.byID[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	return o, nil
}

func (m *mockOrderRepo) FindOpenByUser(_ context.Context, userID string) (*order.Order, error) {
	for _, o := range m.byID {
		if o.UserID == userID {
			return o, nil
		}
	}
	return nil, order.ErrNotFound
}

func (m *mockOrderRepo) Delete(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.byID[id]; !ok {
		return order.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type mockCartRepo struct {
	items    map[string][]cart.Item
	clearErr error
}

func (m *mockCartRepo) ItemsByUser(_ context.Context, userID string) ([]cart.Item, error) {
	return m.items[userID], nil
}

func (m *mockCartRepo) ClearByUser(_ context.Context, userID string) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	delete(m.items, userID)
	return nil
}

type mockGateway struct {
	sent []notification.Message
	err  error
}

func (m *mockGateway) Send(_ context.Context, msg notification.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

// --- Helpers ---

func testOrder() *order.Order {
	return &order.Order{
		ID:              "order-1",
		UserID:          "u1",
		UserName:        "Alice",
		PhoneNumber:     "0123456789",
		Email:           "alice@example.com",
		Note:            "leave at the door",
		AddressID:       "addr-1",
		ShippingAddress: "Ho Chi Minh, District 1, Ben Nghe 12 Le Loi",
		ShippingCostID:  "sc-79",
		ShippingCost:    decimal.RequireFromString("20.00"),
		Price:           decimal.RequireFromString("150.00"),
		Discount:        decimal.RequireFromString("10.00"),
		TotalAmount:     decimal.RequireFromString("160.00"),
		Status:          order.StatusPending,
		OrderDate:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Items: []cart.Item{
			{
				ID: "c1", UserID: "u1", ProductID: "p1", ProductName: "Widget",
				Quantity: 1,
				Price:    decimal.RequireFromString("100.00"),
				Discount: decimal.RequireFromString("10.00"),
			},
		},
	}
}

func fixtures() (*mockOrderRepo, *mockCartRepo, *mockGateway) {
	o := testOrder()
	orders := &mockOrderRepo{byID: map[string]*order.Order{o.ID: o}}
	carts := &mockCartRepo{items: map[string][]cart.Item{"u1": o.Items}}
	return orders, carts, &mockGateway{}
}

// --- Tests ---

func TestProcessPayment_OrderNotFound(t *testing.T) {
	orders, carts, gw := fixtures()
	svc := NewService(orders, carts, gw)

	_, err := svc.ProcessPayment(context.Background(), "missing")
	require.ErrorIs(t, err, order.ErrNotFound)

	// The gateway must not be touched for an unknown order.
	assert.Empty(t, gw.sent)
}

func TestProcessPayment_Success(t *testing.T) {
	orders, carts, gw := fixtures()
	svc := NewService(orders, carts, gw)

	view, err := svc.ProcessPayment(context.Background(), "order-1")
	require.NoError(t, err)

	assert.Equal(t, "order-1", view.OrderID)
	assert.True(t, decimal.RequireFromString("160.00").Equal(view.TotalAmount))
	assert.Equal(t, "Ho Chi Minh, District 1, Ben Nghe 12 Le Loi", view.ShippingAddress)
	assert.Equal(t, order.StatusPending, view.OrderStatus)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, "Widget", view.Items[0].ProductName)

	// Exactly one confirmation, addressed to the order's email.
	require.Len(t, gw.sent, 1)
	assert.Equal(t, []string{"alice@example.com"}, gw.sent[0].To)
	assert.Equal(t, notification.OrderConfirmationSubject, gw.sent[0].Subject)
	assert.Contains(t, gw.sent[0].Body, "order-1")
	assert.Contains(t, gw.sent[0].Body, "160")

	// Settlement clears the cart and retires the order.
	items, err := carts.ItemsByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, items)
	_, err = orders.GetByID(context.Background(), "order-1")
	require.ErrorIs(t, err, order.ErrNotFound)
}

func TestProcessPayment_NotificationFailure(t *testing.T) {
	orders, carts, gw := fixtures()
	gw.err = errors.New("smtp unreachable")
	svc := NewService(orders, carts, gw)

	_, err := svc.ProcessPayment(context.Background(), "order-1")

	var nErr *NotificationError
	require.ErrorAs(t, err, &nErr)
	assert.Equal(t, "order-1", nErr.OrderID)

	// A delivery failure must leave everything untouched.
	_, err = orders.GetByID(context.Background(), "order-1")
	require.NoError(t, err)
	items, err := carts.ItemsByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestProcessPayment_ClearCartFailsAfterSend(t *testing.T) {
	orders, carts, gw := fixtures()
	carts.clearErr = errors.New("cart table locked")
	svc := NewService(orders, carts, gw)

	_, err := svc.ProcessPayment(context.Background(), "order-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clear cart")

	// Confirmation already went out; the order stays open for reconciliation.
	assert.Len(t, gw.sent, 1)
	_, err = orders.GetByID(context.Background(), "order-1")
	require.NoError(t, err)
}

func TestProcessPayment_DeleteOrderFailsAfterSend(t *testing.T) {
	orders, carts, gw := fixtures()
	orders.deleteErr = errors.New("db write failed")
	svc := NewService(orders, carts, gw)

	_, err := svc.ProcessPayment(context.Background(), "order-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete order")

	// Cart was already cleared; only the order remains.
	assert.Len(t, gw.sent, 1)
	items, err := carts.ItemsByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, items)
}
