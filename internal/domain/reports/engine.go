package reports

import (
	"slices"

	"github.com/shopspring/decimal"

	"stockledger/internal/core/types"
	"stockledger/internal/domain/ledger"
)

// The functions in this file are pure: they derive reports from a snapshot
// and keep no state between calls.
//
// Timelines are ordered by movement date with a stable sort. Entries sharing
// a date keep their merge order: opening entries first, then inward, then
// outward, each in insertion order.

// DefaultLowStockThreshold is the low-stock cutoff used when none is given.
var DefaultLowStockThreshold = decimal.NewFromInt(10)

// productIndex maps product ids to products. Built once per report.
type productIndex map[string]*ledger.Product

func indexProducts(products []ledger.Product) productIndex {
	idx := make(productIndex, len(products))
	for i := range products {
		p := &products[i]
		// First definition wins, like a linear scan would.
		if _, dup := idx[p.ID]; !dup {
			idx[p.ID] = p
		}
	}
	return idx
}

// resolve returns a copy of the referenced product, or nil if it is unknown.
func (idx productIndex) resolve(productID string) *ledger.Product {
	p, ok := idx[productID]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

// totals accumulates one product's quantities and amounts.
type totals struct {
	openingQty    decimal.Decimal
	inwardQty     decimal.Decimal
	outwardQty    decimal.Decimal
	inwardAmount  decimal.Decimal
	outwardAmount decimal.Decimal
}

func (t *totals) closingQty() decimal.Decimal {
	return t.openingQty.Add(t.inwardQty).Sub(t.outwardQty)
}

// rollup sums every movement per product id in one pass per collection.
func rollup(s ledger.Snapshot) map[string]*totals {
	acc := make(map[string]*totals)
	get := func(productID string) *totals {
		t, ok := acc[productID]
		if !ok {
			t = &totals{}
			acc[productID] = t
		}
		return t
	}
	for _, e := range s.Opening {
		t := get(e.ProductID)
		t.openingQty = t.openingQty.Add(e.Quantity)
	}
	for _, e := range s.Inward {
		t := get(e.ProductID)
		t.inwardQty = t.inwardQty.Add(e.Quantity)
		t.inwardAmount = t.inwardAmount.Add(e.Amount)
	}
	for _, e := range s.Outward {
		t := get(e.ProductID)
		t.outwardQty = t.outwardQty.Add(e.Quantity)
		t.outwardAmount = t.outwardAmount.Add(e.Amount)
	}
	return acc
}

// ListOpening returns opening entries with their products resolved.
func ListOpening(s ledger.Snapshot) []OpeningRow {
	idx := indexProducts(s.Products)
	rows := make([]OpeningRow, 0, len(s.Opening))
	for _, e := range s.Opening {
		rows = append(rows, OpeningRow{OpeningStockEntry: e, Product: idx.resolve(e.ProductID)})
	}
	return rows
}

// ListInward returns inward entries with their products resolved.
func ListInward(s ledger.Snapshot) []InwardRow {
	idx := indexProducts(s.Products)
	rows := make([]InwardRow, 0, len(s.Inward))
	for _, e := range s.Inward {
		rows = append(rows, InwardRow{InwardStockEntry: e, Product: idx.resolve(e.ProductID)})
	}
	return rows
}

// ListOutward returns outward entries with their products resolved.
func ListOutward(s ledger.Snapshot) []OutwardRow {
	idx := indexProducts(s.Products)
	rows := make([]OutwardRow, 0, len(s.Outward))
	for _, e := range s.Outward {
		rows = append(rows, OutwardRow{OutwardStockEntry: e, Product: idx.resolve(e.ProductID)})
	}
	return rows
}

// StockSummary rolls up every product, in product order. Products without
// movements are included with zero figures.
func StockSummary(s ledger.Snapshot) []SummaryRow {
	acc := rollup(s)
	rows := make([]SummaryRow, 0, len(s.Products))
	for _, p := range s.Products {
		t, ok := acc[p.ID]
		if !ok {
			t = &totals{}
		}
		rows = append(rows, SummaryRow{
			ProductID:     p.ID,
			ProductName:   p.ProductName,
			ProductCode:   p.ProductCode,
			Unit:          p.Unit,
			OpeningQty:    t.openingQty,
			InwardQty:     t.inwardQty,
			OutwardQty:    t.outwardQty,
			ClosingQty:    t.closingQty(),
			InwardAmount:  t.inwardAmount,
			OutwardAmount: t.outwardAmount,
		})
	}
	return rows
}

// StockByProduct returns the detail report for productID, or nil when no
// such product exists.
func StockByProduct(s ledger.Snapshot, productID string) *ProductStock {
	product := indexProducts(s.Products).resolve(productID)
	if product == nil {
		return nil
	}

	var t totals
	txns := make([]Transaction, 0)
	for _, e := range s.Opening {
		if e.ProductID == productID {
			t.openingQty = t.openingQty.Add(e.Quantity)
			txns = append(txns, Transaction{Type: TypeOpening, StockEntry: e.StockEntry})
		}
	}
	for _, e := range s.Inward {
		if e.ProductID == productID {
			t.inwardQty = t.inwardQty.Add(e.Quantity)
			txns = append(txns, Transaction{
				Type: TypeInward, StockEntry: e.StockEntry,
				Supplier: strPtr(e.Supplier), Remarks: strPtr(e.Remarks),
			})
		}
	}
	for _, e := range s.Outward {
		if e.ProductID == productID {
			t.outwardQty = t.outwardQty.Add(e.Quantity)
			txns = append(txns, Transaction{
				Type: TypeOutward, StockEntry: e.StockEntry,
				Customer: strPtr(e.Customer), Remarks: strPtr(e.Remarks),
			})
		}
	}
	sortAscending(txns, func(tx Transaction) string { return tx.Date })

	return &ProductStock{
		Product:      *product,
		OpeningQty:   t.openingQty,
		InwardQty:    t.inwardQty,
		OutwardQty:   t.outwardQty,
		ClosingQty:   t.closingQty(),
		Transactions: txns,
	}
}

// TransactionHistory merges every movement of every product, oldest first.
func TransactionHistory(s ledger.Snapshot) []Transaction {
	idx := indexProducts(s.Products)
	txns := make([]Transaction, 0, len(s.Opening)+len(s.Inward)+len(s.Outward))
	for _, e := range s.Opening {
		txns = append(txns, Transaction{
			Type: LabelOpening, StockEntry: e.StockEntry,
			Product: idx.resolve(e.ProductID),
		})
	}
	for _, e := range s.Inward {
		txns = append(txns, Transaction{
			Type: LabelInward, StockEntry: e.StockEntry,
			Supplier: strPtr(e.Supplier), Remarks: strPtr(e.Remarks),
			Product: idx.resolve(e.ProductID),
		})
	}
	for _, e := range s.Outward {
		txns = append(txns, Transaction{
			Type: LabelOutward, StockEntry: e.StockEntry,
			Customer: strPtr(e.Customer), Remarks: strPtr(e.Remarks),
			Product: idx.resolve(e.ProductID),
		})
	}
	sortAscending(txns, func(tx Transaction) string { return tx.Date })
	return txns
}

// InwardReport lists inward entries, most recent first.
func InwardReport(s ledger.Snapshot) []InwardRow {
	rows := ListInward(s)
	sortDescending(rows, func(r InwardRow) string { return r.Date })
	return rows
}

// OutwardReport lists outward entries, most recent first.
func OutwardReport(s ledger.Snapshot) []OutwardRow {
	rows := ListOutward(s)
	sortDescending(rows, func(r OutwardRow) string { return r.Date })
	return rows
}

// StockMovement builds a timeline for every product that has at least one
// movement. Opening and inward entries count as stock in.
func StockMovement(s ledger.Snapshot) []ProductMovement {
	byProduct := make(map[string][]Movement)
	for _, e := range s.Opening {
		byProduct[e.ProductID] = append(byProduct[e.ProductID], Movement{
			Date: e.Date, Type: TypeOpening,
			InQty: e.Quantity, OutQty: decimal.Zero, Amount: e.Amount,
		})
	}
	for _, e := range s.Inward {
		byProduct[e.ProductID] = append(byProduct[e.ProductID], Movement{
			Date: e.Date, Type: TypeInward,
			InQty: e.Quantity, OutQty: decimal.Zero, Amount: e.Amount,
			Supplier: strPtr(e.Supplier),
		})
	}
	for _, e := range s.Outward {
		byProduct[e.ProductID] = append(byProduct[e.ProductID], Movement{
			Date: e.Date, Type: TypeOutward,
			InQty: decimal.Zero, OutQty: e.Quantity, Amount: e.Amount,
			Customer: strPtr(e.Customer),
		})
	}

	report := make([]ProductMovement, 0)
	for _, p := range s.Products {
		movements := byProduct[p.ID]
		if len(movements) == 0 {
			continue
		}
		// Duplicate product ids would otherwise share one slice.
		movements = slices.Clone(movements)
		sortAscending(movements, func(m Movement) string { return m.Date })
		report = append(report, ProductMovement{
			ProductID:   p.ID,
			ProductName: p.ProductName,
			ProductCode: p.ProductCode,
			Movements:   movements,
		})
	}
	return report
}

// LowStock returns the summary rows whose closing quantity is at or below
// threshold.
func LowStock(s ledger.Snapshot, threshold decimal.Decimal) []SummaryRow {
	return filterLowStock(StockSummary(s), threshold)
}

func filterLowStock(summary []SummaryRow, threshold decimal.Decimal) []SummaryRow {
	rows := make([]SummaryRow, 0)
	for _, r := range summary {
		if r.ClosingQty.LessThanOrEqual(threshold) {
			rows = append(rows, r)
		}
	}
	return rows
}

// BuildDashboard computes the landing page figures.
func BuildDashboard(s ledger.Snapshot, threshold decimal.Decimal) Dashboard {
	d := Dashboard{
		TotalProducts: len(s.Products),
		OpeningValue:  types.Zero(),
		InwardValue:   types.Zero(),
		OutwardValue:  types.Zero(),
	}
	for _, e := range s.Opening {
		d.OpeningValue = d.OpeningValue.Add(e.Amount)
	}
	for _, e := range s.Inward {
		d.InwardValue = d.InwardValue.Add(e.Amount)
	}
	for _, e := range s.Outward {
		d.OutwardValue = d.OutwardValue.Add(e.Amount)
	}
	d.LowStock = LowStock(s, threshold)
	return d
}

func sortAscending[T any](items []T, date func(T) string) {
	slices.SortStableFunc(items, func(a, b T) int {
		return types.DateKey(date(a)).Compare(types.DateKey(date(b)))
	})
}

func sortDescending[T any](items []T, date func(T) string) {
	slices.SortStableFunc(items, func(a, b T) int {
		return types.DateKey(date(b)).Compare(types.DateKey(date(a)))
	})
}

func strPtr(s string) *string {
	return &s
}
