//go:build integration

package repository_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/gostorefront/fulfillment/internal/domain/address"
	"github.com/gostorefront/fulfillment/internal/domain/cart"
	"github.com/gostorefront/fulfillment/internal/domain/order"
	"github.com/gostorefront/fulfillment/internal/domain/shipping"
	"github.com/gostorefront/fulfillment/internal/repository"
)

var pool *pgxpool.Pool

func TestMain(m *testing.M) {
	os.Exit(testMain(m))
}

func testMain(m *testing.M) int {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("fulfillment_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Fatalf("start postgres: %v", err)
	}
	defer func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			log.Printf("terminate postgres: %v", err)
		}
	}()

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("connection string: %v", err)
	}

	pool, err = repository.NewPool(ctx, dsn)
	if err != nil {
		log.Fatalf("create pool: %v", err)
	}
	defer pool.Close()

	if err := repository.RunMigrations(ctx, pool); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	return m.Run()
}

func seedReferenceData(t *testing.T, ctx context.Context) (addrID string) {
	t.Helper()

	addrID = "addr-" + t.Name()
	require.NoError(t, repository.NewAddressRepository(pool).Upsert(ctx, address.Address{
		ID:            addrID,
		ProvinceCode:  "79",
		ProvinceName:  "Ho Chi Minh",
		DistrictName:  "District 1",
		WardName:      "Ben Nghe",
		StreetAddress: "12 Le Loi",
	}))
	require.NoError(t, repository.NewShippingRepository(pool).Upsert(ctx, shipping.Cost{
		ID:           "ship-79",
		ProvinceCode: "79",
		Amount:       decimal.NewFromInt(20),
	}))
	return addrID
}

func TestAddressRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	id := seedReferenceData(t, ctx)

	got, err := repository.NewAddressRepository(pool).GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ho Chi Minh, District 1, Ben Nghe 12 Le Loi", got.Render())

	_, err = repository.NewAddressRepository(pool).GetByID(ctx, "nope")
	assert.ErrorIs(t, err, address.ErrNotFound)
}

func TestShippingRepository_ResolveByProvince(t *testing.T) {
	ctx := context.Background()
	seedReferenceData(t, ctx)

	repo := repository.NewShippingRepository(pool)

	got, err := repo.ResolveByProvince(ctx, "79")
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(20)))

	_, err = repo.ResolveByProvince(ctx, "00")
	assert.ErrorIs(t, err, shipping.ErrNotFound)

	// Upsert replaces the existing rate.
	require.NoError(t, repo.Upsert(ctx, shipping.Cost{
		ID:           "ship-79",
		ProvinceCode: "79",
		Amount:       decimal.NewFromInt(25),
	}))
	got, err = repo.ResolveByProvince(ctx, "79")
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(25)))
}

func TestCartRepository_AddListClear(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewCartRepository(pool)
	userID := "user-" + t.Name()

	require.NoError(t, repo.AddItem(ctx, cart.Item{
		ID:          "ci-" + t.Name(),
		UserID:      userID,
		ProductID:   "p-1",
		ProductName: "Widget",
		Quantity:    2,
		Price:       decimal.NewFromInt(100),
		Discount:    decimal.NewFromInt(10),
	}))

	items, err := repo.ItemsByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(100)))

	require.NoError(t, repo.ClearByUser(ctx, userID))
	items, err = repo.ItemsByUser(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, items)

	// Clearing an already empty cart is not an error.
	require.NoError(t, repo.ClearByUser(ctx, userID))
}

func TestOrderRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	addrID := seedReferenceData(t, ctx)
	repo := repository.NewOrderRepository(pool)
	userID := "user-" + t.Name()

	o := &order.Order{
		ID:              "order-" + t.Name(),
		UserID:          userID,
		UserName:        "Alice",
		Email:           "alice@example.com",
		AddressID:       addrID,
		ShippingAddress: "Ho Chi Minh, District 1, Ben Nghe 12 Le Loi",
		ShippingCostID:  "ship-79",
		ShippingCost:    decimal.NewFromInt(20),
		Price:           decimal.NewFromInt(150),
		Discount:        decimal.NewFromInt(10),
		TotalAmount:     decimal.NewFromInt(160),
		Status:          order.StatusPending,
		OrderDate:       time.Now().UTC(),
		Items: []cart.Item{{
			ID:          "ci-1",
			UserID:      userID,
			ProductID:   "p-1",
			ProductName: "Widget",
			Quantity:    2,
			Price:       decimal.NewFromInt(100),
			Discount:    decimal.NewFromInt(10),
		}},
	}
	require.NoError(t, repo.Create(ctx, o))

	got, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.UserID, got.UserID)
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(160)))
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Widget", got.Items[0].ProductName)

	found, err := repo.FindOpenByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, found.ID)

	// A second open order for the same user trips the unique index.
	dup := *o
	dup.ID = o.ID + "-dup"
	err = repo.Create(ctx, &dup)
	assert.ErrorIs(t, err, order.ErrAlreadyExists)

	require.NoError(t, repo.Delete(ctx, o.ID))
	_, err = repo.GetByID(ctx, o.ID)
	assert.ErrorIs(t, err, order.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, o.ID), order.ErrNotFound)

	// With the previous order gone the user slot is free again.
	require.NoError(t, repo.Create(ctx, &dup))
	require.NoError(t, repo.Delete(ctx, dup.ID))
}
