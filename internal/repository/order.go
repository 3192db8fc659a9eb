package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gostorefront/fulfillment/internal/domain/cart"
	"github.com/gostorefront/fulfillment/internal/domain/order"
)

const (
	createOrderSQL = `INSERT INTO orders (id, user_id, user_name, phone_number, email, note,
			address_id, shipping_address, shipping_cost_id, shipping_cost,
			price, discount, total_amount, status, order_date, items)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	orderColumns = `id, user_id, user_name, phone_number, email, note,
			address_id, shipping_address, shipping_cost_id, shipping_cost,
			price, discount, total_amount, status, order_date, items`

	getOrderByIDSQL = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	findOrderByUserSQL = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1`

	deleteOrderSQL = `DELETE FROM orders WHERE id = $1`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL. The
// frozen cart snapshot is serialized to a JSONB column; the unique index on
// user_id enforces the one-open-order-per-user invariant.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists a new order. A unique violation on user_id surfaces as
// order.ErrAlreadyExists, making the database constraint the authoritative
// duplicate-order signal.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshaling order items: %w", err)
	}

	_, err = r.pool.Exec(ctx, createOrderSQL,
		o.ID, o.UserID, o.UserName, o.PhoneNumber, o.Email, o.Note,
		o.AddressID, o.ShippingAddress, o.ShippingCostID, o.ShippingCost,
		o.Price, o.Discount, o.TotalAmount, string(o.Status), o.OrderDate, itemsJSON,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return order.ErrAlreadyExists
		}
		return fmt.Errorf("creating order %q: %w", o.ID, err)
	}

	return nil
}

// GetByID returns a single order by its identifier.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	rows, err := r.pool.Query(ctx, getOrderByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting order %q: %w", id, err)
	}

	o, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("getting order %q: %w", id, err)
	}
	return &o, nil
}

// FindOpenByUser returns the user's open order, or order.ErrNotFound.
func (r *OrderRepository) FindOpenByUser(ctx context.Context, userID string) (*order.Order, error) {
	rows, err := r.pool.Query(ctx, findOrderByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("finding order for user %q: %w", userID, err)
	}

	o, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("finding order for user %q: %w", userID, err)
	}
	return &o, nil
}

// Delete removes an order permanently. Returns order.ErrNotFound when no row
// was deleted.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, deleteOrderSQL, id)
	if err != nil {
		return fmt.Errorf("deleting order %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

func scanOrder(row pgx.CollectableRow) (order.Order, error) {
	var (
		o         order.Order
		status    string
		itemsJSON []byte
	)
	err := row.Scan(
		&o.ID, &o.UserID, &o.UserName, &o.PhoneNumber, &o.Email, &o.Note,
		&o.AddressID, &o.ShippingAddress, &o.ShippingCostID, &o.ShippingCost,
		&o.Price, &o.Discount, &o.TotalAmount, &status, &o.OrderDate, &itemsJSON,
	)
	if err != nil {
		return order.Order{}, err
	}

	o.Status = order.Status(status)
	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return order.Order{}, fmt.Errorf("unmarshaling order items: %w", err)
	}
	if o.Items == nil {
		o.Items = []cart.Item{}
	}
	return o, nil
}
