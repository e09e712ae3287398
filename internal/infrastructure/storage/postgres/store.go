package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"stockledger/internal/core/apperror"
	"stockledger/internal/domain/ledger"
	"stockledger/pkg/logger"
)

// Compile-time check that Store implements ledger.Repository.
var _ ledger.Repository = (*Store)(nil)

// Store is a PostgreSQL backed ledger.Repository. Each append is a single
// INSERT, so concurrent writers never lose records.
type Store struct {
	pool    *Pool
	builder squirrel.StatementBuilderType
	log     *logger.Logger
}

// NewStore creates a store on top of an open pool.
func NewStore(pool *Pool, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		pool:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		log:     log.WithComponent("store.postgres"),
	}
}

// Initialize creates the tables if they do not exist.
func (s *Store) Initialize(ctx context.Context) error {
	err := runInTx(ctx, s.pool.Pool, "initialize schema", func(ctx context.Context, tx pgx.Tx) error {
		for _, stmt := range schemaStatements {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("exec schema statement: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return apperror.NewStorage("initialize schema", err)
	}
	s.pool.LogStats(ctx, s.log)
	s.log.WithContext(ctx).Infow("postgres store ready")
	return nil
}

func (s *Store) Products(ctx context.Context) ([]ledger.Product, error) {
	return selectAll[ledger.Product](ctx, s, ledger.KindProduct)
}

func (s *Store) OpeningEntries(ctx context.Context) ([]ledger.OpeningStockEntry, error) {
	return selectAll[ledger.OpeningStockEntry](ctx, s, ledger.KindOpening)
}

func (s *Store) InwardEntries(ctx context.Context) ([]ledger.InwardStockEntry, error) {
	return selectAll[ledger.InwardStockEntry](ctx, s, ledger.KindInward)
}

func (s *Store) OutwardEntries(ctx context.Context) ([]ledger.OutwardStockEntry, error) {
	return selectAll[ledger.OutwardStockEntry](ctx, s, ledger.KindOutward)
}

func (s *Store) AppendProduct(ctx context.Context, p ledger.Product) error {
	return s.insert(ctx, ledger.KindProduct, StructValues(p))
}

func (s *Store) AppendOpening(ctx context.Context, e ledger.OpeningStockEntry) error {
	return s.insert(ctx, ledger.KindOpening, StructValues(e))
}

func (s *Store) AppendInward(ctx context.Context, e ledger.InwardStockEntry) error {
	return s.insert(ctx, ledger.KindInward, StructValues(e))
}

func (s *Store) AppendOutward(ctx context.Context, e ledger.OutwardStockEntry) error {
	return s.insert(ctx, ledger.KindOutward, StructValues(e))
}

// selectQuery builds the full-collection read in insertion order.
func (s *Store) selectQuery(kind ledger.Kind) squirrel.SelectBuilder {
	return s.builder.Select(columns[kind]...).
		From(tableNames[kind]).
		OrderBy("seq")
}

// insertQuery builds a single-row insert.
func (s *Store) insertQuery(kind ledger.Kind, values []any) squirrel.InsertBuilder {
	return s.builder.Insert(tableNames[kind]).
		Columns(columns[kind]...).
		Values(values...)
}

func selectAll[T any](ctx context.Context, s *Store, kind ledger.Kind) ([]T, error) {
	ctx, span := tracer.Start(ctx, "postgres.select",
		trace.WithAttributes(attribute.String("db.table", tableNames[kind])))
	defer span.End()

	sql, args, err := s.selectQuery(kind).ToSql()
	if err != nil {
		return nil, apperror.NewStorage("read "+string(kind)+" collection", fmt.Errorf("build query: %w", err))
	}

	items := make([]T, 0)
	if err := pgxscan.Select(ctx, s.pool, &items, sql, args...); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select")
		s.log.WithContext(ctx).Errorw("storage error", "collection", string(kind), "error", err)
		return nil, apperror.NewStorage("read "+string(kind)+" collection", err)
	}
	span.SetAttributes(attribute.Int("db.rows", len(items)))
	return items, nil
}

func (s *Store) insert(ctx context.Context, kind ledger.Kind, values []any) error {
	ctx, span := tracer.Start(ctx, "postgres.insert",
		trace.WithAttributes(attribute.String("db.table", tableNames[kind])))
	defer span.End()

	sql, args, err := s.insertQuery(kind, values).ToSql()
	if err != nil {
		return apperror.NewStorage("write "+string(kind)+" collection", fmt.Errorf("build query: %w", err))
	}

	if _, err := s.pool.Exec(ctx, sql, args...); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert")
		s.log.WithContext(ctx).Errorw("storage error", "collection", string(kind), "error", err)
		return apperror.NewStorage("write "+string(kind)+" collection", err)
	}
	return nil
}
