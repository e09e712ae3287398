// Package main provides a CLI tool for seeding the record store with demo data.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"stockledger/internal/config"
	"stockledger/internal/domain/ledger"
	"stockledger/internal/infrastructure/storage"
	"stockledger/pkg/logger"
)

type demoProduct struct {
	name, code, unit string
	opening          [2]string // quantity, rate
	inward           []demoMove
	outward          []demoMove
}

type demoMove struct {
	qty, rate, date, party, remarks string
}

var demo = []demoProduct{
	{
		name: "Widget", code: "W-1", unit: "nos",
		opening: [2]string{"100", "5"},
		inward:  []demoMove{{"50", "6", "2024-01-05", "Acme Supplies", "restock"}},
		outward: []demoMove{{"30", "8", "2024-01-10", "Bob's Hardware", ""}},
	},
	{
		name: "Copper Wire", code: "CW-25", unit: "m",
		opening: [2]string{"250.5", "1.2"},
		inward:  []demoMove{{"100", "1.15", "2024-01-08", "Metals Ltd", ""}},
		outward: []demoMove{
			{"120", "2", "2024-01-12", "City Electric", ""},
			{"225", "2", "2024-01-20", "City Electric", "bulk order"},
		},
	},
	{
		name: "Bolt M8", code: "B-M8", unit: "box",
		opening: [2]string{"8", "12"},
	},
}

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(os.Getenv("ENV_FILE"))
	if err == nil {
		err = run(context.Background(), cfg.Store, os.Getenv("SEED_FORCE") == "true", log)
	}
	if err != nil {
		log.Errorw("seeding failed", "error", err)
	}
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run seeds the configured store unless it already holds products and
// force is false. The store is closed before it returns.
func run(ctx context.Context, cfg config.StoreConfig, force bool, log *logger.Logger) error {
	store, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open record store: %w", err)
	}
	defer store.Close()

	existing, err := store.Repo.Products(ctx)
	if err != nil {
		return fmt.Errorf("read products: %w", err)
	}
	if len(existing) > 0 && !force {
		log.Infow("store already has products, skipping seed", "products", len(existing))
		return nil
	}

	svc := ledger.NewService(store.Repo)
	if err := seedDemoData(ctx, svc, log); err != nil {
		return fmt.Errorf("seed demo data: %w", err)
	}

	log.Info("seeding completed successfully")
	return nil
}

func seedDemoData(ctx context.Context, svc *ledger.Service, log *logger.Logger) error {
	for _, d := range demo {
		p, err := svc.CreateProduct(ctx, ledger.CreateProductInput{
			ProductName: d.name,
			ProductCode: d.code,
			Unit:        d.unit,
		})
		if err != nil {
			return fmt.Errorf("create product %s: %w", d.code, err)
		}

		if _, err := svc.AddOpeningStock(ctx, ledger.StockInput{
			ProductID: p.ID,
			Quantity:  dec(d.opening[0]),
			Rate:      dec(d.opening[1]),
			Date:      "2024-01-01",
		}); err != nil {
			return fmt.Errorf("opening stock for %s: %w", d.code, err)
		}

		for _, m := range d.inward {
			if _, err := svc.AddInwardStock(ctx, ledger.StockInput{
				ProductID: p.ID, Quantity: dec(m.qty), Rate: dec(m.rate),
				Date: m.date, Supplier: m.party, Remarks: m.remarks,
			}); err != nil {
				return fmt.Errorf("inward stock for %s: %w", d.code, err)
			}
		}
		for _, m := range d.outward {
			if _, err := svc.AddOutwardStock(ctx, ledger.StockInput{
				ProductID: p.ID, Quantity: dec(m.qty), Rate: dec(m.rate),
				Date: m.date, Customer: m.party, Remarks: m.remarks,
			}); err != nil {
				return fmt.Errorf("outward stock for %s: %w", d.code, err)
			}
		}

		log.Infow("seeded product", "code", d.code, "id", p.ID)
	}
	return nil
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
