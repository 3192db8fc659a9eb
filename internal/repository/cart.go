package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gostorefront/fulfillment/internal/domain/cart"
)

const (
	getCartItemsSQL = `SELECT id, user_id, product_id, category_name, product_name, quantity, price, discount, image_path
		FROM cart_items WHERE user_id = $1 ORDER BY id`

	clearCartSQL = `DELETE FROM cart_items WHERE user_id = $1`

	insertCartItemSQL = `INSERT INTO cart_items (id, user_id, product_id, category_name, product_name, quantity, price, discount, image_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
)

var _ cart.Repository = (*CartRepository)(nil)

// CartRepository implements cart.Repository backed by PostgreSQL.
type CartRepository struct {
	pool *pgxpool.Pool
}

// NewCartRepository returns a CartRepository that uses the given pool.
func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

// ItemsByUser returns the user's live cart lines, empty when there are none.
func (r *CartRepository) ItemsByUser(ctx context.Context, userID string) ([]cart.Item, error) {
	rows, err := r.pool.Query(ctx, getCartItemsSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("listing cart items for user %q: %w", userID, err)
	}
	items, err := pgx.CollectRows(rows, scanCartItem)
	if err != nil {
		return nil, fmt.Errorf("listing cart items for user %q: %w", userID, err)
	}
	return items, nil
}

// ClearByUser removes all cart lines for the user. Deleting from an empty
// cart is a no-op, which keeps settlement idempotent on this step.
func (r *CartRepository) ClearByUser(ctx context.Context, userID string) error {
	if _, err := r.pool.Exec(ctx, clearCartSQL, userID); err != nil {
		return fmt.Errorf("clearing cart for user %q: %w", userID, err)
	}
	return nil
}

// AddItem stores a cart line. Used by the seeding tool and tests.
func (r *CartRepository) AddItem(ctx context.Context, item cart.Item) error {
	_, err := r.pool.Exec(ctx, insertCartItemSQL,
		item.ID, item.UserID, item.ProductID, item.CategoryName, item.ProductName,
		item.Quantity, item.Price, item.Discount, item.ImagePath,
	)
	if err != nil {
		return fmt.Errorf("inserting cart item %q: %w", item.ID, err)
	}
	return nil
}

func scanCartItem(row pgx.CollectableRow) (cart.Item, error) {
	var item cart.Item
	err := row.Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.CategoryName, &item.ProductName,
		&item.Quantity, &item.Price, &item.Discount, &item.ImagePath,
	)
	return item, err
}
