package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"stockledger/internal/core/apperror"
	"stockledger/internal/core/id"
	"stockledger/internal/core/types"
)

const (
	msgProductRequired = "Product name and code are required"
	msgEntryRequired   = "Product ID, quantity, and rate are required"
	msgEntryRange      = "Quantity and rate are out of range"
)

// CreateProductInput carries the fields accepted when creating a product.
type CreateProductInput struct {
	ProductName string
	ProductCode string
	Unit        string
}

// StockInput carries the fields accepted for any stock movement.
// Supplier applies to inward entries, Customer to outward entries.
type StockInput struct {
	ProductID string
	Quantity  *decimal.Decimal
	Rate      *decimal.Decimal
	Date      string
	Supplier  string
	Customer  string
	Remarks   string
}

// Validate checks that the required movement fields are present.
// A zero quantity or rate counts as missing.
func (in StockInput) Validate() error {
	if strings.TrimSpace(in.ProductID) == "" || types.IsBlank(in.Quantity) || types.IsBlank(in.Rate) {
		return apperror.NewValidation(msgEntryRequired)
	}
	if !types.InRange(*in.Quantity) || !types.InRange(*in.Rate) {
		return apperror.NewValidation(msgEntryRange).
			WithDetail("maxDigits", types.MaxDigits)
	}
	return nil
}

// Service creates and lists ledger records.
type Service struct {
	repo  Repository
	now   func() time.Time
	newID func() string
}

// Option customises a Service.
type Option func(*Service)

// WithClock overrides the time source used for createdDate and default dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides record id generation.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

// NewService creates a new ledger service.
func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:  repo,
		now:   time.Now,
		newID: id.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Products returns every product in creation order.
func (s *Service) Products(ctx context.Context) ([]Product, error) {
	products, err := s.repo.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// CreateProduct validates and persists a new product.
func (s *Service) CreateProduct(ctx context.Context, in CreateProductInput) (Product, error) {
	if strings.TrimSpace(in.ProductName) == "" || strings.TrimSpace(in.ProductCode) == "" {
		return Product{}, apperror.NewValidation(msgProductRequired)
	}

	unit := in.Unit
	if unit == "" {
		unit = DefaultUnit
	}

	p := Product{
		ID:          s.newID(),
		ProductName: in.ProductName,
		ProductCode: in.ProductCode,
		Unit:        unit,
		CreatedDate: s.now().UTC(),
	}
	if err := s.repo.AppendProduct(ctx, p); err != nil {
		return Product{}, fmt.Errorf("append product: %w", err)
	}
	return p, nil
}

// AddOpeningStock records an opening balance.
func (s *Service) AddOpeningStock(ctx context.Context, in StockInput) (OpeningStockEntry, error) {
	if err := in.Validate(); err != nil {
		return OpeningStockEntry{}, err
	}
	e := OpeningStockEntry{StockEntry: s.newEntry(in)}
	if err := s.repo.AppendOpening(ctx, e); err != nil {
		return OpeningStockEntry{}, fmt.Errorf("append opening stock: %w", err)
	}
	return e, nil
}

// AddInwardStock records a purchase or receipt.
func (s *Service) AddInwardStock(ctx context.Context, in StockInput) (InwardStockEntry, error) {
	if err := in.Validate(); err != nil {
		return InwardStockEntry{}, err
	}
	e := InwardStockEntry{
		StockEntry: s.newEntry(in),
		Supplier:   in.Supplier,
		Remarks:    in.Remarks,
	}
	if err := s.repo.AppendInward(ctx, e); err != nil {
		return InwardStockEntry{}, fmt.Errorf("append inward stock: %w", err)
	}
	return e, nil
}

// AddOutwardStock records a sale or issue.
func (s *Service) AddOutwardStock(ctx context.Context, in StockInput) (OutwardStockEntry, error) {
	if err := in.Validate(); err != nil {
		return OutwardStockEntry{}, err
	}
	e := OutwardStockEntry{
		StockEntry: s.newEntry(in),
		Customer:   in.Customer,
		Remarks:    in.Remarks,
	}
	if err := s.repo.AppendOutward(ctx, e); err != nil {
		return OutwardStockEntry{}, fmt.Errorf("append outward stock: %w", err)
	}
	return e, nil
}

// newEntry fills the shared movement fields. in must be validated.
func (s *Service) newEntry(in StockInput) StockEntry {
	now := s.now()
	date := strings.TrimSpace(in.Date)
	if date == "" {
		date = types.Today(now)
	}
	return StockEntry{
		ID:          s.newID(),
		ProductID:   in.ProductID,
		Quantity:    *in.Quantity,
		Rate:        *in.Rate,
		Amount:      in.Quantity.Mul(*in.Rate),
		Date:        date,
		CreatedDate: now.UTC(),
	}
}
