// Package jsonfile stores each ledger collection as a JSON document on the
// local filesystem. Every append rewrites the whole collection.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"stockledger/internal/core/apperror"
	"stockledger/internal/domain/ledger"
	"stockledger/pkg/logger"
)

// Compile-time check that Store implements ledger.Repository.
var _ ledger.Repository = (*Store)(nil)

var fileNames = map[ledger.Kind]string{
	ledger.KindProduct: "products.json",
	ledger.KindOpening: "opening_stock.json",
	ledger.KindInward:  "inward_stock.json",
	ledger.KindOutward: "outward_stock.json",
}

// Options configures a Store.
type Options struct {
	// Dir is the directory holding the collection files.
	Dir string

	// FailSoft turns unreadable or corrupt collections into empty ones
	// (logged as storage warnings) instead of returning a storage error.
	FailSoft bool

	Logger *logger.Logger
}

// Store is a JSON-file backed ledger.Repository.
// A mutex per collection serialises read-modify-write cycles, so
// concurrent appends within one process never lose records.
type Store struct {
	dir      string
	failSoft bool
	log      *logger.Logger
	locks    map[ledger.Kind]*sync.Mutex
}

// New creates a Store. Call Initialize before first use.
func New(opts Options) *Store {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	locks := make(map[ledger.Kind]*sync.Mutex, len(fileNames))
	for kind := range fileNames {
		locks[kind] = &sync.Mutex{}
	}
	return &Store{
		dir:      opts.Dir,
		failSoft: opts.FailSoft,
		log:      log.WithComponent("store.jsonfile"),
		locks:    locks,
	}
}

// Path returns the file backing a collection.
func (s *Store) Path(kind ledger.Kind) string {
	return filepath.Join(s.dir, fileNames[kind])
}

// Initialize creates the data directory and any missing collection file.
func (s *Store) Initialize(ctx context.Context) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return apperror.NewStorage("create data directory", err)
	}
	for _, kind := range ledger.Kinds {
		mu := s.locks[kind]
		mu.Lock()
		err := s.ensureFile(kind)
		mu.Unlock()
		if err != nil {
			return err
		}
	}
	s.log.Infow("json store ready", "dir", s.dir)
	return nil
}

func (s *Store) ensureFile(kind ledger.Kind) error {
	_, err := os.Stat(s.Path(kind))
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return apperror.NewStorage("stat "+string(kind)+" collection", err)
	}
	return writeCollection(s, kind, []struct{}{})
}

func (s *Store) Products(ctx context.Context) ([]ledger.Product, error) {
	return readLocked[ledger.Product](ctx, s, ledger.KindProduct)
}

func (s *Store) OpeningEntries(ctx context.Context) ([]ledger.OpeningStockEntry, error) {
	return readLocked[ledger.OpeningStockEntry](ctx, s, ledger.KindOpening)
}

func (s *Store) InwardEntries(ctx context.Context) ([]ledger.InwardStockEntry, error) {
	return readLocked[ledger.InwardStockEntry](ctx, s, ledger.KindInward)
}

func (s *Store) OutwardEntries(ctx context.Context) ([]ledger.OutwardStockEntry, error) {
	return readLocked[ledger.OutwardStockEntry](ctx, s, ledger.KindOutward)
}

func (s *Store) AppendProduct(ctx context.Context, p ledger.Product) error {
	return appendLocked(ctx, s, ledger.KindProduct, p)
}

func (s *Store) AppendOpening(ctx context.Context, e ledger.OpeningStockEntry) error {
	return appendLocked(ctx, s, ledger.KindOpening, e)
}

func (s *Store) AppendInward(ctx context.Context, e ledger.InwardStockEntry) error {
	return appendLocked(ctx, s, ledger.KindInward, e)
}

func (s *Store) AppendOutward(ctx context.Context, e ledger.OutwardStockEntry) error {
	return appendLocked(ctx, s, ledger.KindOutward, e)
}

func readLocked[T any](ctx context.Context, s *Store, kind ledger.Kind) ([]T, error) {
	mu := s.locks[kind]
	mu.Lock()
	defer mu.Unlock()
	return readCollection[T](ctx, s, kind)
}

func appendLocked[T any](ctx context.Context, s *Store, kind ledger.Kind, record T) error {
	mu := s.locks[kind]
	mu.Lock()
	defer mu.Unlock()

	// Appending on top of a collection we could not read would wipe it,
	// so writes always use strict reads.
	items, err := readStrict[T](s, kind)
	if err != nil {
		return err
	}
	items = append(items, record)
	return writeCollection(s, kind, items)
}

// readCollection loads a collection. A missing file is an empty collection.
// Corrupt data is a storage error unless the store is fail-soft.
func readCollection[T any](ctx context.Context, s *Store, kind ledger.Kind) ([]T, error) {
	items, err := readStrict[T](s, kind)
	if err == nil {
		return items, nil
	}
	if !s.failSoft {
		s.log.WithContext(ctx).Errorw("storage error", "collection", string(kind), "error", err)
		return nil, err
	}
	s.log.WithContext(ctx).Warnw("storage error, serving empty collection",
		"collection", string(kind),
		"error", err,
	)
	return []T{}, nil
}

func readStrict[T any](s *Store, kind ledger.Kind) ([]T, error) {
	data, err := os.ReadFile(s.Path(kind))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}
		return nil, apperror.NewStorage("read "+string(kind)+" collection", err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, apperror.NewStorage("read "+string(kind)+" collection",
			fmt.Errorf("decode %s: %w", filepath.Base(s.Path(kind)), err))
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// writeCollection replaces a collection file atomically: the new content is
// written to a temp file in the same directory and renamed over the old one.
func writeCollection[T any](s *Store, kind ledger.Kind, items []T) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return apperror.NewStorage("encode "+string(kind)+" collection", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+fileNames[kind]+".*.tmp")
	if err != nil {
		return apperror.NewStorage("write "+string(kind)+" collection", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return apperror.NewStorage("write "+string(kind)+" collection", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return apperror.NewStorage("write "+string(kind)+" collection", err)
	}
	if err := tmp.Close(); err != nil {
		return apperror.NewStorage("write "+string(kind)+" collection", err)
	}
	if err := os.Rename(tmpName, s.Path(kind)); err != nil {
		return apperror.NewStorage("write "+string(kind)+" collection", err)
	}
	return nil
}
