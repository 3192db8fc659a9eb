package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gostorefront/fulfillment/internal/domain/address"
)

const (
	getAddressByIDSQL = `SELECT id, province_code, province_name, district_name, ward_name, street_address
		FROM addresses WHERE id = $1`

	upsertAddressSQL = `INSERT INTO addresses (id, province_code, province_name, district_name, ward_name, street_address)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			province_code = EXCLUDED.province_code,
			province_name = EXCLUDED.province_name,
			district_name = EXCLUDED.district_name,
			ward_name = EXCLUDED.ward_name,
			street_address = EXCLUDED.street_address`
)

var _ address.Repository = (*AddressRepository)(nil)

// AddressRepository implements address.Repository backed by PostgreSQL.
type AddressRepository struct {
	pool *pgxpool.Pool
}

// NewAddressRepository returns an AddressRepository that uses the given pool.
func NewAddressRepository(pool *pgxpool.Pool) *AddressRepository {
	return &AddressRepository{pool: pool}
}

// GetByID returns a single address by its identifier.
func (r *AddressRepository) GetByID(ctx context.Context, id string) (*address.Address, error) {
	rows, err := r.pool.Query(ctx, getAddressByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting address %q: %w", id, err)
	}

	a, err := pgx.CollectExactlyOneRow(rows, scanAddress)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, address.ErrNotFound
		}
		return nil, fmt.Errorf("getting address %q: %w", id, err)
	}
	return &a, nil
}

// Upsert stores an address record, replacing any previous version. Used by
// the seeding and ingest tools; the order workflow itself never writes
// reference data.
func (r *AddressRepository) Upsert(ctx context.Context, a address.Address) error {
	_, err := r.pool.Exec(ctx, upsertAddressSQL,
		a.ID, a.ProvinceCode, a.ProvinceName, a.DistrictName, a.WardName, a.StreetAddress,
	)
	if err != nil {
		return fmt.Errorf("upserting address %q: %w", a.ID, err)
	}
	return nil
}

func scanAddress(row pgx.CollectableRow) (address.Address, error) {
	var a address.Address
	err := row.Scan(&a.ID, &a.ProvinceCode, &a.ProvinceName, &a.DistrictName, &a.WardName, &a.StreetAddress)
	return a, err
}
