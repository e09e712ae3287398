// Package reports derives stock reports from the ledger collections.
package reports

import (
	"stockledger/internal/core/types"
	"stockledger/internal/domain/ledger"
)

// Transaction type labels.
const (
	TypeOpening = "Opening"
	TypeInward  = "Inward"
	TypeOutward = "Outward"

	LabelOpening = "Opening Stock"
	LabelInward  = "Inward Stock"
	LabelOutward = "Outward Stock"
)

// OpeningRow is an opening entry with its resolved product (nil if dangling).
type OpeningRow struct {
	ledger.OpeningStockEntry
	Product *ledger.Product `json:"product"`
}

// InwardRow is an inward entry with its resolved product.
type InwardRow struct {
	ledger.InwardStockEntry
	Product *ledger.Product `json:"product"`
}

// OutwardRow is an outward entry with its resolved product.
type OutwardRow struct {
	ledger.OutwardStockEntry
	Product *ledger.Product `json:"product"`
}

// SummaryRow is one product's rollup in the stock summary.
type SummaryRow struct {
	ProductID     string         `json:"productId"`
	ProductName   string         `json:"productName"`
	ProductCode   string         `json:"productCode"`
	Unit          string         `json:"unit"`
	OpeningQty    types.Quantity `json:"openingQty"`
	InwardQty     types.Quantity `json:"inwardQty"`
	OutwardQty    types.Quantity `json:"outwardQty"`
	ClosingQty    types.Quantity `json:"closingQty"`
	InwardAmount  types.Money    `json:"inwardAmount"`
	OutwardAmount types.Money    `json:"outwardAmount"`
}

// Transaction is a movement of any kind in a merged timeline.
// Product is only set in the transaction history. Supplier and Customer
// are set for inward and outward entries respectively, Remarks for both,
// so those keys are present even when empty.
type Transaction struct {
	Type string `json:"type"`
	ledger.StockEntry
	Supplier *string         `json:"supplier,omitempty"`
	Customer *string         `json:"customer,omitempty"`
	Remarks  *string         `json:"remarks,omitempty"`
	Product  *ledger.Product `json:"product,omitempty"`
}

// ProductStock is the detail report for a single product.
type ProductStock struct {
	Product      ledger.Product `json:"product"`
	OpeningQty   types.Quantity `json:"openingQty"`
	InwardQty    types.Quantity `json:"inwardQty"`
	OutwardQty   types.Quantity `json:"outwardQty"`
	ClosingQty   types.Quantity `json:"closingQty"`
	Transactions []Transaction  `json:"transactions"`
}

// Movement is one line of a product's movement timeline.
type Movement struct {
	Date     string         `json:"date"`
	Type     string         `json:"type"`
	InQty    types.Quantity `json:"inQty"`
	OutQty   types.Quantity `json:"outQty"`
	Amount   types.Money    `json:"amount"`
	Supplier *string        `json:"supplier,omitempty"`
	Customer *string        `json:"customer,omitempty"`
}

// ProductMovement is a product's full movement timeline.
type ProductMovement struct {
	ProductID   string     `json:"productId"`
	ProductName string     `json:"productName"`
	ProductCode string     `json:"productCode"`
	Movements   []Movement `json:"movements"`
}

// Dashboard holds the headline figures shown on the landing page.
type Dashboard struct {
	TotalProducts int          `json:"totalProducts"`
	OpeningValue  types.Money  `json:"openingValue"`
	InwardValue   types.Money  `json:"inwardValue"`
	OutwardValue  types.Money  `json:"outwardValue"`
	LowStock      []SummaryRow `json:"lowStock"`
}
