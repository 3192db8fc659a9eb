package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/gostorefront/fulfillment/internal/domain/address"
	"github.com/gostorefront/fulfillment/internal/domain/cart"
	"github.com/gostorefront/fulfillment/internal/domain/shipping"
	"github.com/gostorefront/fulfillment/internal/repository"
)

type addressJSON struct {
	ID            string `json:"id"`
	ProvinceCode  string `json:"province_code"`
	ProvinceName  string `json:"province_name"`
	DistrictName  string `json:"district_name"`
	WardName      string `json:"ward_name"`
	StreetAddress string `json:"street_address"`
}

type shippingCostJSON struct {
	ID           string          `json:"id"`
	ProvinceCode string          `json:"province_code"`
	Amount       decimal.Decimal `json:"amount"`
}

type seedFile struct {
	Addresses     []addressJSON      `json:"addresses"`
	ShippingCosts []shippingCostJSON `json:"shipping_costs"`
	CartItems     []cart.Item        `json:"cart_items"`
}

func main() {
	var (
		databaseURL string
		seedPath    string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&seedPath, "seed-file", "db/seed/fixtures.json", "path to seed fixtures JSON file")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, seedPath); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, seedPath string) error {
	slog.Info("connecting to database")

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	slog.Info("reading seed file", slog.String("path", seedPath))

	data, err := os.ReadFile(seedPath)
	if err != nil {
		return errors.Wrap(err, "read seed file")
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return errors.Wrap(err, "parse seed JSON")
	}

	shippingRepo := repository.NewShippingRepository(pool)
	slog.Info("upserting shipping costs", slog.Int("count", len(seed.ShippingCosts)))
	for _, c := range seed.ShippingCosts {
		err := shippingRepo.Upsert(ctx, shipping.Cost{
			ID:           c.ID,
			ProvinceCode: c.ProvinceCode,
			Amount:       c.Amount,
		})
		if err != nil {
			return errors.Wrapf(err, "upsert shipping cost for province %s", c.ProvinceCode)
		}
	}

	addressRepo := repository.NewAddressRepository(pool)
	slog.Info("upserting addresses", slog.Int("count", len(seed.Addresses)))
	for _, a := range seed.Addresses {
		err := addressRepo.Upsert(ctx, address.Address{
			ID:            a.ID,
			ProvinceCode:  a.ProvinceCode,
			ProvinceName:  a.ProvinceName,
			DistrictName:  a.DistrictName,
			WardName:      a.WardName,
			StreetAddress: a.StreetAddress,
		})
		if err != nil {
			return errors.Wrapf(err, "upsert address %s", a.ID)
		}
	}

	cartRepo := repository.NewCartRepository(pool)
	slog.Info("adding demo cart items", slog.Int("count", len(seed.CartItems)))
	for _, item := range seed.CartItems {
		if err := cartRepo.AddItem(ctx, item); err != nil {
			return errors.Wrapf(err, "add cart item %s", item.ID)
		}
	}

	return nil
}
