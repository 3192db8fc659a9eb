package memory

import (
	"context"
	"sync"

	"github.com/gostorefront/fulfillment/internal/domain/address"
	"github.com/gostorefront/fulfillment/internal/domain/shipping"
)

var (
	_ address.Repository  = (*AddressRepository)(nil)
	_ shipping.Repository = (*ShippingRepository)(nil)
)

// AddressRepository is an in-memory address.Repository.
type AddressRepository struct {
	mu   sync.RWMutex
	byID map[string]address.Address
}

// NewAddressRepository returns an in-memory address repository pre-populated
// with the given records.
func NewAddressRepository(addrs ...address.Address) *AddressRepository {
	byID := make(map[string]address.Address, len(addrs))
	for _, a := range addrs {
		byID[a.ID] = a
	}
	return &AddressRepository{byID: byID}
}

// GetByID returns the address or address.ErrNotFound.
func (r *AddressRepository) GetByID(_ context.Context, id string) (*address.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, address.ErrNotFound
	}
	return &a, nil
}

// Upsert stores an address record, replacing any previous version.
func (r *AddressRepository) Upsert(_ context.Context, a address.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[a.ID] = a
	return nil
}

// ShippingRepository is an in-memory shipping.Repository.
type ShippingRepository struct {
	mu         sync.RWMutex
	byProvince map[string]shipping.Cost
}

// NewShippingRepository returns an in-memory shipping repository
// pre-populated with the given rates.
func NewShippingRepository(costs ...shipping.Cost) *ShippingRepository {
	byProvince := make(map[string]shipping.Cost, len(costs))
	for _, c := range costs {
		byProvince[c.ProvinceCode] = c
	}
	return &ShippingRepository{byProvince: byProvince}
}

// ResolveByProvince returns the rate for a province or shipping.ErrNotFound.
func (r *ShippingRepository) ResolveByProvince(_ context.Context, provinceCode string) (*shipping.Cost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byProvince[provinceCode]
	if !ok {
		return nil, shipping.ErrNotFound
	}
	return &c, nil
}

// Upsert stores or updates a province rate.
func (r *ShippingRepository) Upsert(_ context.Context, c shipping.Cost) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byProvince[c.ProvinceCode] = c
	return nil
}
