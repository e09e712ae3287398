package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"stockledger/internal/core/apperror"
	"stockledger/internal/domain/reports"
	"stockledger/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles HTTP requests for reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// StockSummary handles GET /api/reports/stock-summary
func (h *ReportsHandler) StockSummary(c *gin.Context) {
	rows, err := h.service.StockSummary(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rows)
}

// StockByProduct handles GET /api/reports/stock/:productId
// An unknown product yields data: null rather than 404.
func (h *ReportsHandler) StockByProduct(c *gin.Context) {
	detail, err := h.service.StockByProduct(c.Request.Context(), c.Param("productId"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, detail)
}

// TransactionHistory handles GET /api/reports/transaction-history
func (h *ReportsHandler) TransactionHistory(c *gin.Context) {
	txns, err := h.service.TransactionHistory(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, txns)
}

// Inward handles GET /api/reports/inward
func (h *ReportsHandler) Inward(c *gin.Context) {
	rows, err := h.service.InwardReport(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rows)
}

// Outward handles GET /api/reports/outward
func (h *ReportsHandler) Outward(c *gin.Context) {
	rows, err := h.service.OutwardReport(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rows)
}

// Movement handles GET /api/reports/movement
func (h *ReportsHandler) Movement(c *gin.Context) {
	report, err := h.service.StockMovement(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}

// LowStock handles GET /api/reports/low-stock?threshold=N
func (h *ReportsHandler) LowStock(c *gin.Context) {
	threshold, ok := h.threshold(c)
	if !ok {
		return
	}

	rows, err := h.service.LowStock(c.Request.Context(), threshold)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rows)
}

// Dashboard handles GET /api/reports/dashboard?threshold=N
func (h *ReportsHandler) Dashboard(c *gin.Context) {
	threshold, ok := h.threshold(c)
	if !ok {
		return
	}

	d, err := h.service.Dashboard(c.Request.Context(), threshold)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, d)
}

// Export handles GET /api/reports/export/:report?format=csv|xlsx
func (h *ReportsHandler) Export(c *gin.Context) {
	var q dto.ReportQuery
	if !h.BindQuery(c, &q) {
		return
	}

	format := strings.ToLower(q.Format)
	if format == "" {
		format = dto.FormatCSV
	}
	if format != dto.FormatCSV && format != dto.FormatXLSX {
		h.Error(c, apperror.NewInvalidInput("format must be csv or xlsx").WithDetail("format", q.Format))
		return
	}

	threshold, ok := h.ParseDecimalQuery(c, "threshold", q.Threshold)
	if !ok {
		return
	}

	report := c.Param("report")
	table, err := h.service.Export(c.Request.Context(), report, threshold)
	if err != nil {
		h.Error(c, err)
		return
	}

	filename := report + "." + format
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	switch format {
	case dto.FormatXLSX:
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Status(http.StatusOK)
		err = reports.WriteXLSX(c.Writer, table)
	default:
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Status(http.StatusOK)
		err = reports.WriteCSV(c.Writer, table)
	}
	if err != nil {
		// ErrorHandler renders this only if no body bytes were written yet.
		_ = c.Error(apperror.NewInternal(fmt.Errorf("write %s export: %w", format, err)))
	}
}

func (h *ReportsHandler) threshold(c *gin.Context) (*decimal.Decimal, bool) {
	var q dto.ReportQuery
	if !h.BindQuery(c, &q) {
		return nil, false
	}
	return h.ParseDecimalQuery(c, "threshold", q.Threshold)
}
