package dto

import (
	"github.com/shopspring/decimal"

	"stockledger/internal/domain/ledger"
)

// CreateProductRequest is the body of POST /api/products.
type CreateProductRequest struct {
	ProductName string `json:"productName"`
	ProductCode string `json:"productCode"`
	Unit        string `json:"unit"`
}

// ToInput converts the request to the domain input.
func (r CreateProductRequest) ToInput() ledger.CreateProductInput {
	return ledger.CreateProductInput{
		ProductName: r.ProductName,
		ProductCode: r.ProductCode,
		Unit:        r.Unit,
	}
}

// StockEntryRequest is the body of every stock movement POST.
// Quantity and rate accept JSON numbers or numeric strings.
type StockEntryRequest struct {
	ProductID string           `json:"productId"`
	Quantity  *decimal.Decimal `json:"quantity"`
	Rate      *decimal.Decimal `json:"rate"`
	Date      string           `json:"date"`
	Supplier  string           `json:"supplier"`
	Customer  string           `json:"customer"`
	Remarks   string           `json:"remarks"`
}

// ToInput converts the request to the domain input.
func (r StockEntryRequest) ToInput() ledger.StockInput {
	return ledger.StockInput{
		ProductID: r.ProductID,
		Quantity:  r.Quantity,
		Rate:      r.Rate,
		Date:      r.Date,
		Supplier:  r.Supplier,
		Customer:  r.Customer,
		Remarks:   r.Remarks,
	}
}
