// Package storage opens the configured ledger record store.
package storage

import (
	"context"
	"fmt"

	"stockledger/internal/config"
	"stockledger/internal/domain/ledger"
	"stockledger/internal/infrastructure/storage/jsonfile"
	"stockledger/internal/infrastructure/storage/postgres"
	"stockledger/pkg/logger"
)

// Opened is an initialized store plus the function that releases it.
type Opened struct {
	Repo  ledger.Repository
	Close func()
	// Ping checks that the backend is reachable. Used by readiness probes.
	Ping func(ctx context.Context) error
}

// Open creates the store selected by cfg.Driver and initializes it.
func Open(ctx context.Context, cfg config.StoreConfig, log *logger.Logger) (*Opened, error) {
	switch cfg.Driver {
	case config.DriverJSON:
		store := jsonfile.New(jsonfile.Options{
			Dir:      cfg.DataDir,
			FailSoft: cfg.FailSoft,
			Logger:   log,
		})
		if err := store.Initialize(ctx); err != nil {
			return nil, fmt.Errorf("initialize json store: %w", err)
		}
		return &Opened{
			Repo:  store,
			Close: func() {},
			Ping: func(ctx context.Context) error {
				_, err := store.Products(ctx)
				return err
			},
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		store := postgres.NewStore(pool, log)
		if err := store.Initialize(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("initialize postgres store: %w", err)
		}
		return &Opened{
			Repo:  store,
			Close: pool.Close,
			Ping:  pool.Ping,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
