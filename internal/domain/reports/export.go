package reports

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"stockledger/internal/core/apperror"
	"stockledger/internal/domain/ledger"
)

// Exportable report names.
const (
	ExportStockSummary       = "stock-summary"
	ExportInward             = "inward"
	ExportOutward            = "outward"
	ExportMovement           = "movement"
	ExportTransactionHistory = "transaction-history"
	ExportLowStock           = "low-stock"
)

// Table is a report flattened for download. Cells are strings or decimals.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]any
}

// Export builds the named report as a table.
func (s *Service) Export(ctx context.Context, report string, threshold *decimal.Decimal) (Table, error) {
	switch report {
	case ExportStockSummary:
		rows, err := s.StockSummary(ctx)
		if err != nil {
			return Table{}, err
		}
		return SummaryTable(rows), nil
	case ExportInward:
		rows, err := s.InwardReport(ctx)
		if err != nil {
			return Table{}, err
		}
		return InwardTable(rows), nil
	case ExportOutward:
		rows, err := s.OutwardReport(ctx)
		if err != nil {
			return Table{}, err
		}
		return OutwardTable(rows), nil
	case ExportMovement:
		rows, err := s.StockMovement(ctx)
		if err != nil {
			return Table{}, err
		}
		return MovementTable(rows), nil
	case ExportTransactionHistory:
		rows, err := s.TransactionHistory(ctx)
		if err != nil {
			return Table{}, err
		}
		return TransactionTable(rows), nil
	case ExportLowStock:
		rows, err := s.LowStock(ctx, threshold)
		if err != nil {
			return Table{}, err
		}
		return LowStockTable(rows), nil
	default:
		return Table{}, apperror.NewNotFound("report", report)
	}
}

// SummaryTable flattens the stock summary.
func SummaryTable(rows []SummaryRow) Table {
	t := Table{
		Title: "Stock Summary",
		Headers: []string{"Product", "Code", "Opening Qty", "Inward Qty", "Outward Qty",
			"Closing Qty", "Inward Value", "Outward Value"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{r.ProductName, r.ProductCode, r.OpeningQty, r.InwardQty,
			r.OutwardQty, r.ClosingQty, r.InwardAmount, r.OutwardAmount})
	}
	return t
}

// InwardTable flattens the inward report.
func InwardTable(rows []InwardRow) Table {
	t := Table{
		Title:   "Inward Stock",
		Headers: []string{"Product", "Quantity", "Rate", "Amount", "Supplier", "Date", "Remarks"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{productName(r.Product), r.Quantity, r.Rate, r.Amount,
			orDash(r.Supplier), r.Date, orDash(r.Remarks)})
	}
	return t
}

// OutwardTable flattens the outward report.
func OutwardTable(rows []OutwardRow) Table {
	t := Table{
		Title:   "Outward Stock",
		Headers: []string{"Product", "Quantity", "Rate", "Amount", "Customer", "Date", "Remarks"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{productName(r.Product), r.Quantity, r.Rate, r.Amount,
			orDash(r.Customer), r.Date, orDash(r.Remarks)})
	}
	return t
}

// MovementTable flattens every product timeline into one row per movement.
func MovementTable(products []ProductMovement) Table {
	t := Table{
		Title:   "Stock Movement",
		Headers: []string{"Product", "Code", "Date", "Type", "In Qty", "Out Qty", "Amount", "Party"},
	}
	for _, p := range products {
		for _, m := range p.Movements {
			party := "-"
			switch {
			case m.Supplier != nil && *m.Supplier != "":
				party = *m.Supplier
			case m.Customer != nil && *m.Customer != "":
				party = *m.Customer
			}
			t.Rows = append(t.Rows, []any{p.ProductName, p.ProductCode, m.Date, m.Type,
				m.InQty, m.OutQty, m.Amount, party})
		}
	}
	return t
}

// TransactionTable flattens the transaction history.
func TransactionTable(txns []Transaction) Table {
	t := Table{
		Title:   "Transaction History",
		Headers: []string{"Date", "Type", "Product", "Quantity", "Rate", "Amount", "Reference"},
	}
	for _, tx := range txns {
		var ref string
		switch {
		case tx.Supplier != nil:
			ref = *tx.Supplier
		case tx.Customer != nil:
			ref = *tx.Customer
		}
		t.Rows = append(t.Rows, []any{tx.Date, tx.Type, productName(tx.Product),
			tx.Quantity, tx.Rate, tx.Amount, orDash(ref)})
	}
	return t
}

// LowStockTable flattens the low stock report.
func LowStockTable(rows []SummaryRow) Table {
	t := Table{
		Title:   "Low Stock",
		Headers: []string{"Product", "Code", "Current Stock", "Unit"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{r.ProductName, r.ProductCode, r.ClosingQty, r.Unit})
	}
	return t
}

// WriteCSV writes the table as CSV with a header row.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	record := make([]string, len(t.Headers))
	for _, row := range t.Rows {
		record = record[:0]
		for _, cell := range row {
			record = append(record, cellString(cell))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the table as a single-sheet workbook. Decimals become
// numeric cells.
func WriteXLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := sheetName(t.Title)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	for col, h := range t.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("set header %s: %w", cell, err)
		}
	}
	for i, row := range t.Rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if d, ok := v.(decimal.Decimal); ok {
				v = d.InexactFloat64()
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func cellString(v any) string {
	switch c := v.(type) {
	case string:
		return c
	case decimal.Decimal:
		return c.String()
	default:
		return fmt.Sprint(c)
	}
}

// sheetName trims a title to the 31 characters a sheet name allows.
func sheetName(title string) string {
	if title == "" {
		return "Report"
	}
	if len(title) > 31 {
		return title[:31]
	}
	return title
}

func productName(p *ledger.Product) string {
	if p == nil || p.ProductName == "" {
		return "Unknown"
	}
	return p.ProductName
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
