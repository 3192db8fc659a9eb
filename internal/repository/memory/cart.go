package memory

import (
	"context"
	"sync"

	"github.com/gostorefront/fulfillment/internal/domain/cart"
)

var _ cart.Repository = (*CartRepository)(nil)

// CartRepository is an in-memory cart.Repository.
type CartRepository struct {
	mu    sync.RWMutex
	items map[string][]cart.Item // keyed by user ID
}

// NewCartRepository returns an empty in-memory cart repository.
func NewCartRepository() *CartRepository {
	return &CartRepository{items: make(map[string][]cart.Item)}
}

// ItemsByUser returns a copy of the user's cart lines, empty when none exist.
func (r *CartRepository) ItemsByUser(_ context.Context, userID string) ([]cart.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]cart.Item(nil), r.items[userID]...), nil
}

// ClearByUser removes all cart lines for the user; clearing an empty cart is
// a no-op.
func (r *CartRepository) ClearByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, userID)
	return nil
}

// AddItem appends a line to the user's cart.
func (r *CartRepository) AddItem(_ context.Context, item cart.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.UserID] = append(r.items[item.UserID], item)
	return nil
}
