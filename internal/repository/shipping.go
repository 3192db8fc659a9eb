package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gostorefront/fulfillment/internal/domain/shipping"
)

const (
	getShippingCostSQL = `SELECT id, province_code, cost
		FROM shipping_costs WHERE province_code = $1`

	upsertShippingCostSQL = `INSERT INTO shipping_costs (id, province_code, cost)
		VALUES ($1, $2, $3)
		ON CONFLICT (province_code) DO UPDATE SET cost = EXCLUDED.cost`
)

var _ shipping.Repository = (*ShippingRepository)(nil)

// ShippingRepository implements shipping.Repository backed by PostgreSQL.
type ShippingRepository struct {
	pool *pgxpool.Pool
}

// NewShippingRepository returns a ShippingRepository that uses the given pool.
func NewShippingRepository(pool *pgxpool.Pool) *ShippingRepository {
	return &ShippingRepository{pool: pool}
}

// ResolveByProvince returns the shipping rate registered for a province code.
func (r *ShippingRepository) ResolveByProvince(ctx context.Context, provinceCode string) (*shipping.Cost, error) {
	rows, err := r.pool.Query(ctx, getShippingCostSQL, provinceCode)
	if err != nil {
		return nil, fmt.Errorf("getting shipping cost for province %q: %w", provinceCode, err)
	}

	c, err := pgx.CollectExactlyOneRow(rows, scanShippingCost)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shipping.ErrNotFound
		}
		return nil, fmt.Errorf("getting shipping cost for province %q: %w", provinceCode, err)
	}
	return &c, nil
}

// Upsert stores or updates the rate for a province. Used by the seeding and
// ingest tools.
func (r *ShippingRepository) Upsert(ctx context.Context, c shipping.Cost) error {
	_, err := r.pool.Exec(ctx, upsertShippingCostSQL, c.ID, c.ProvinceCode, c.Amount)
	if err != nil {
		return fmt.Errorf("upserting shipping cost for province %q: %w", c.ProvinceCode, err)
	}
	return nil
}

func scanShippingCost(row pgx.CollectableRow) (shipping.Cost, error) {
	var c shipping.Cost
	err := row.Scan(&c.ID, &c.ProvinceCode, &c.Amount)
	return c, err
}
