package memory

import (
	"context"
	"sync"

	"github.com/gostorefront/fulfillment/internal/domain/cart"
	"github.com/gostorefront/fulfillment/internal/domain/order"
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository is an in-memory order.Repository. Like the PostgreSQL
// implementation it enforces at most one open order per user inside Create,
// so the constraint-as-authoritative-signal behaviour holds in tests too.
type OrderRepository struct {
	mu     sync.RWMutex
	byID   map[string]order.Order
	byUser map[string]string // user ID -> open order ID
}

// NewOrderRepository returns an empty in-memory order repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		byID:   make(map[string]order.Order),
		byUser: make(map[string]string),
	}
}

// Create stores the order, rejecting a second open order for the same user.
func (r *OrderRepository) Create(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUser[o.UserID]; exists {
		return order.ErrAlreadyExists
	}

	stored := *o
	stored.Items = append([]cart.Item(nil), o.Items...)
	r.byID[stored.ID] = stored
	r.byUser[stored.UserID] = stored.ID
	return nil
}

// GetByID returns a copy of the order or order.ErrNotFound.
func (r *OrderRepository) GetByID(_ context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	return copyOrder(o), nil
}

// FindOpenByUser returns the user's open order or order.ErrNotFound.
func (r *OrderRepository) FindOpenByUser(_ context.Context, userID string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUser[userID]
	if !ok {
		return nil, order.ErrNotFound
	}
	o := r.byID[id]
	return copyOrder(o), nil
}

// Delete removes the order or returns order.ErrNotFound.
func (r *OrderRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.byID[id]
	if !ok {
		return order.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byUser, o.UserID)
	return nil
}

func copyOrder(o order.Order) *order.Order {
	o.Items = append([]cart.Item(nil), o.Items...)
	return &o
}
