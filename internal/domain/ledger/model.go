// Package ledger holds the stock ledger records: products and the three
// movement logs (opening, inward, outward).
package ledger

import (
	"time"

	"stockledger/internal/core/types"
)

// Kind names one of the four record collections.
type Kind string

const (
	KindProduct Kind = "product"
	KindOpening Kind = "opening"
	KindInward  Kind = "inward"
	KindOutward Kind = "outward"
)

// Kinds lists every collection in a fixed order.
var Kinds = []Kind{KindProduct, KindOpening, KindInward, KindOutward}

// DefaultUnit is used when a product is created without a unit.
const DefaultUnit = "nos"

// Product is product master data. Products are immutable once created.
type Product struct {
	ID          string    `json:"id" db:"id"`
	ProductName string    `json:"productName" db:"product_name"`
	ProductCode string    `json:"productCode" db:"product_code"`
	Unit        string    `json:"unit" db:"unit"`
	CreatedDate time.Time `json:"createdDate" db:"created_date"`
}

// StockEntry is the part shared by every movement.
// Amount is fixed at creation as Quantity * Rate and never recomputed.
type StockEntry struct {
	ID          string         `json:"id" db:"id"`
	ProductID   string         `json:"productId" db:"product_id"`
	Quantity    types.Quantity `json:"quantity" db:"quantity"`
	Rate        types.Money    `json:"rate" db:"rate"`
	Amount      types.Money    `json:"amount" db:"amount"`
	Date        string         `json:"date" db:"date"`
	CreatedDate time.Time      `json:"createdDate" db:"created_date"`
}

// OpeningStockEntry records the starting balance of a product.
type OpeningStockEntry struct {
	StockEntry
}

// InwardStockEntry records a purchase or receipt.
type InwardStockEntry struct {
	StockEntry
	Supplier string `json:"supplier" db:"supplier"`
	Remarks  string `json:"remarks" db:"remarks"`
}

// OutwardStockEntry records a sale or issue.
type OutwardStockEntry struct {
	StockEntry
	Customer string `json:"customer" db:"customer"`
	Remarks  string `json:"remarks" db:"remarks"`
}

// Snapshot is a full read of all four collections, in insertion order.
type Snapshot struct {
	Products []Product
	Opening  []OpeningStockEntry
	Inward   []InwardStockEntry
	Outward  []OutwardStockEntry
}
