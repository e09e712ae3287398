package ledger

import (
	"context"
	"fmt"
)

// Repository defines durable storage for the four record collections.
// Collections are append-only; there is no update or delete.
type Repository interface {
	// Initialize ensures the storage location and all collections exist.
	// It is idempotent and safe to call on every startup.
	Initialize(ctx context.Context) error

	// Full collection reads, in insertion order. Never nil.
	Products(ctx context.Context) ([]Product, error)
	OpeningEntries(ctx context.Context) ([]OpeningStockEntry, error)
	InwardEntries(ctx context.Context) ([]InwardStockEntry, error)
	OutwardEntries(ctx context.Context) ([]OutwardStockEntry, error)

	// Appends persist one record durably before returning.
	AppendProduct(ctx context.Context, p Product) error
	AppendOpening(ctx context.Context, e OpeningStockEntry) error
	AppendInward(ctx context.Context, e InwardStockEntry) error
	AppendOutward(ctx context.Context, e OutwardStockEntry) error
}

// LoadSnapshot reads all four collections.
func LoadSnapshot(ctx context.Context, repo Repository) (Snapshot, error) {
	var (
		s   Snapshot
		err error
	)
	if s.Products, err = repo.Products(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("load products: %w", err)
	}
	if s.Opening, err = repo.OpeningEntries(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("load opening stock: %w", err)
	}
	if s.Inward, err = repo.InwardEntries(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("load inward stock: %w", err)
	}
	if s.Outward, err = repo.OutwardEntries(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("load outward stock: %w", err)
	}
	return s, nil
}
