package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"stockledger/pkg/logger"
)

var tracer = otel.Tracer("stockledger/postgres")

// defaultStatementTimeout protects against runaway queries inside a transaction.
const defaultStatementTimeout = 30 * time.Second

// runInTx executes fn within a read-committed transaction. fn's error rolls
// the transaction back.
func runInTx(ctx context.Context, pool *pgxpool.Pool, name string, fn func(ctx context.Context, tx pgx.Tx) error) error {
	ctx, span := tracer.Start(ctx, "transaction",
		trace.WithAttributes(
			attribute.String("tx.name", name),
			attribute.String("tx.isolation", string(pgx.ReadCommitted)),
		))
	defer span.End()

	tx, err := pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	_, err = tx.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = '%dms'", defaultStatementTimeout.Milliseconds()))
	if err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("set statement_timeout: %w", err)
	}

	if err := fn(ctx, tx); err != nil {
		// Background context so the rollback completes even if ctx was cancelled.
		if rbErr := tx.Rollback(context.Background()); rbErr != nil {
			logger.Error(ctx, "rollback failed", "error", rbErr, "original_error", err)
		}
		span.RecordError(err)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
