// Command address-ingest loads gzipped administrative-unit CSV exports into
// the addresses and shipping_costs tables.
//
// Each input file holds one record per line:
//
//	address_id,province_code,province_name,district_name,ward_name,street_address,shipping_rate
//
// Files are parsed concurrently; the shipping rate of a province is taken
// from the first record seen for that province.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/gostorefront/fulfillment/internal/domain/address"
	"github.com/gostorefront/fulfillment/internal/domain/shipping"
	"github.com/gostorefront/fulfillment/internal/repository"
)

const recordFields = 7

type record struct {
	addr address.Address
	rate decimal.Decimal
}

func main() {
	var (
		dataDir     string
		databaseURL string
	)

	flag.StringVar(&dataDir, "data-dir", "data", "directory containing *.csv.gz address exports")
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
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

	if err := run(ctx, dataDir, databaseURL); err != nil {
		slog.Error("address ingest failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("address ingest completed successfully")
}

func run(ctx context.Context, dataDir, databaseURL string) error {
	files, err := filepath.Glob(filepath.Join(dataDir, "*.csv.gz"))
	if err != nil {
		return errors.Wrap(err, "list data dir")
	}
	if len(files) == 0 {
		return errors.Errorf("no *.csv.gz files found in %s", dataDir)
	}

	slog.Info("parsing address exports", slog.Int("files", len(files)))

	records, err := parseFiles(ctx, files)
	if err != nil {
		return errors.Wrap(err, "parse files")
	}

	slog.Info("records parsed", slog.Int("count", len(records)))

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	return store(ctx, pool, records)
}

// parseFiles decompresses and parses all files concurrently, one goroutine
// per file.
func parseFiles(ctx context.Context, files []string) ([]record, error) {
	var (
		mu      sync.Mutex
		records []record
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, file := range files {
		g.Go(func() error {
			recs, err := parseFile(ctx, file)
			if err != nil {
				return errors.Wrapf(err, "parse %s", file)
			}

			mu.Lock()
			records = append(records, recs...)
			mu.Unlock()

			slog.Info("parsed file", slog.String("path", file), slog.Int("records", len(recs)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

func parseFile(ctx context.Context, path string) ([]record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	defer f.Close()

	zr, err := pgzip.NewReader(f)
	if err != nil {
		return nil, errors.Wrap(err, "gzip reader")
	}
	defer zr.Close()

	cr := csv.NewReader(zr)
	cr.FieldsPerRecord = recordFields
	cr.ReuseRecord = true

	var records []record
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "read row")
		}

		rec, err := parseRecord(row)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, errors.Wrapf(err, "line %d", line)
		}
		records = append(records, rec)
	}
}

func parseRecord(row []string) (record, error) {
	rate, err := decimal.NewFromString(row[6])
	if err != nil {
		return record{}, errors.Wrap(err, "parse shipping rate")
	}

	id := row[0]
	if id == "" {
		id = uuid.New().String()
	}

	return record{
		addr: address.Address{
			ID:            id,
			ProvinceCode:  row[1],
			ProvinceName:  row[2],
			DistrictName:  row[3],
			WardName:      row[4],
			StreetAddress: row[5],
		},
		rate: rate,
	}, nil
}

func store(ctx context.Context, pool *pgxpool.Pool, records []record) error {
	shippingRepo := repository.NewShippingRepository(pool)
	addressRepo := repository.NewAddressRepository(pool)

	seenProvinces := make(map[string]bool)
	for _, rec := range records {
		if !seenProvinces[rec.addr.ProvinceCode] {
			seenProvinces[rec.addr.ProvinceCode] = true
			err := shippingRepo.Upsert(ctx, shipping.Cost{
				ID:           uuid.New().String(),
				ProvinceCode: rec.addr.ProvinceCode,
				Amount:       rec.rate,
			})
			if err != nil {
				return errors.Wrapf(err, "upsert shipping cost for province %s", rec.addr.ProvinceCode)
			}
		}

		if err := addressRepo.Upsert(ctx, rec.addr); err != nil {
			return errors.Wrapf(err, "upsert address %s", rec.addr.ID)
		}
	}

	slog.Info("stored records",
		slog.Int("addresses", len(records)),
		slog.Int("provinces", len(seenProvinces)),
	)
	return nil
}
