package reports

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"stockledger/internal/domain/ledger"
)

var tracer = otel.Tracer("stockledger/reports")

// Service loads a fresh snapshot for every call and derives the report
// from it. Nothing is cached.
type Service struct {
	repo             ledger.Repository
	defaultThreshold decimal.Decimal
}

// NewService creates a new reports service.
func NewService(repo ledger.Repository, defaultThreshold decimal.Decimal) *Service {
	return &Service{repo: repo, defaultThreshold: defaultThreshold}
}

// DefaultThreshold returns the low-stock cutoff used when callers pass none.
func (s *Service) DefaultThreshold() decimal.Decimal {
	return s.defaultThreshold
}

// snapshot loads all collections inside a span named after the report.
func (s *Service) snapshot(ctx context.Context, report string) (ledger.Snapshot, trace.Span, error) {
	ctx, span := tracer.Start(ctx, "reports."+report,
		trace.WithAttributes(attribute.String("report.name", report)))

	snap, err := ledger.LoadSnapshot(ctx, s.repo)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load snapshot")
		span.End()
		return ledger.Snapshot{}, nil, fmt.Errorf("%s report: %w", report, err)
	}
	span.SetAttributes(
		attribute.Int("ledger.products", len(snap.Products)),
		attribute.Int("ledger.entries", len(snap.Opening)+len(snap.Inward)+len(snap.Outward)),
	)
	return snap, span, nil
}

// Opening lists opening entries with resolved products.
func (s *Service) Opening(ctx context.Context) ([]OpeningRow, error) {
	snap, span, err := s.snapshot(ctx, "opening_list")
	if err != nil {
		return nil, err
	}
	defer span.End()
	return ListOpening(snap), nil
}

// Inward lists inward entries with resolved products, in insertion order.
func (s *Service) Inward(ctx context.Context) ([]InwardRow, error) {
	snap, span, err := s.snapshot(ctx, "inward_list")
	if err != nil {
		return nil, err
	}
	defer span.End()
	return ListInward(snap), nil
}

// Outward lists outward entries with resolved products, in insertion order.
func (s *Service) Outward(ctx context.Context) ([]OutwardRow, error) {
	snap, span, err := s.snapshot(ctx, "outward_list")
	if err != nil {
		return nil, err
	}
	defer span.End()
	return ListOutward(snap), nil
}

// StockSummary returns the per-product rollup.
func (s *Service) StockSummary(ctx context.Context) ([]SummaryRow, error) {
	snap, span, err := s.snapshot(ctx, "stock_summary")
	if err != nil {
		return nil, err
	}
	defer span.End()
	return StockSummary(snap), nil
}

// StockByProduct returns the detail report, or nil for an unknown product.
func (s *Service) StockByProduct(ctx context.Context, productID string) (*ProductStock, error) {
	snap, span, err := s.snapshot(ctx, "stock_by_product")
	if err != nil {
		return nil, err
	}
	defer span.End()
	span.SetAttributes(attribute.String("product.id", productID))
	return StockByProduct(snap, productID), nil
}

// TransactionHistory returns every movement, oldest first.
func (s *Service) TransactionHistory(ctx context.Context) ([]Transaction, error) {
	snap, span, err := s.snapshot(ctx, "transaction_history")
	if err != nil {
		return nil, err
	}
	defer span.End()
	return TransactionHistory(snap), nil
}

// InwardReport returns inward entries, most recent first.
func (s *Service) InwardReport(ctx context.Context) ([]InwardRow, error) {
	snap, span, err := s.snapshot(ctx, "inward")
	if err != nil {
		return nil, err
	}
	defer span.End()
	return InwardReport(snap), nil
}

// OutwardReport returns outward entries, most recent first.
func (s *Service) OutwardReport(ctx context.Context) ([]OutwardRow, error) {
	snap, span, err := s.snapshot(ctx, "outward")
	if err != nil {
		return nil, err
	}
	defer span.End()
	return OutwardReport(snap), nil
}

// StockMovement returns movement timelines for active products.
func (s *Service) StockMovement(ctx context.Context) ([]ProductMovement, error) {
	snap, span, err := s.snapshot(ctx, "movement")
	if err != nil {
		return nil, err
	}
	defer span.End()
	return StockMovement(snap), nil
}

// LowStock returns products at or below threshold. A nil threshold uses
// the service default.
func (s *Service) LowStock(ctx context.Context, threshold *decimal.Decimal) ([]SummaryRow, error) {
	snap, span, err := s.snapshot(ctx, "low_stock")
	if err != nil {
		return nil, err
	}
	defer span.End()
	limit := s.threshold(threshold)
	span.SetAttributes(attribute.String("report.threshold", limit.String()))
	return LowStock(snap, limit), nil
}

// Dashboard returns the landing page figures.
func (s *Service) Dashboard(ctx context.Context, threshold *decimal.Decimal) (Dashboard, error) {
	snap, span, err := s.snapshot(ctx, "dashboard")
	if err != nil {
		return Dashboard{}, err
	}
	defer span.End()
	return BuildDashboard(snap, s.threshold(threshold)), nil
}

func (s *Service) threshold(t *decimal.Decimal) decimal.Decimal {
	if t != nil {
		return *t
	}
	return s.defaultThreshold
}
