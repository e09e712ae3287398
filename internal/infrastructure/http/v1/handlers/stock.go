package handlers

import (
	"github.com/gin-gonic/gin"

	"stockledger/internal/domain/ledger"
	"stockledger/internal/domain/reports"
	"stockledger/internal/infrastructure/http/v1/dto"
)

// StockHandler handles the opening, inward and outward stock endpoints.
// Writes go through the ledger service; listings come from the reports
// service so every entry carries its resolved product.
type StockHandler struct {
	*BaseHandler
	ledger  *ledger.Service
	reports *reports.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, ledgerSvc *ledger.Service, reportsSvc *reports.Service) *StockHandler {
	return &StockHandler{BaseHandler: base, ledger: ledgerSvc, reports: reportsSvc}
}

// ListOpening handles GET /api/opening-stock
func (h *StockHandler) ListOpening(c *gin.Context) {
	rows, err := h.reports.Opening(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rows)
}

// AddOpening handles POST /api/opening-stock
func (h *StockHandler) AddOpening(c *gin.Context) {
	var req dto.StockEntryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry, err := h.ledger.AddOpeningStock(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, entry, "Opening stock added successfully")
}

// ListInward handles GET /api/inward-stock
func (h *StockHandler) ListInward(c *gin.Context) {
	rows, err := h.reports.Inward(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rows)
}

// AddInward handles POST /api/inward-stock
func (h *StockHandler) AddInward(c *gin.Context) {
	var req dto.StockEntryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry, err := h.ledger.AddInwardStock(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, entry, "Inward stock added successfully")
}

// ListOutward handles GET /api/outward-stock
func (h *StockHandler) ListOutward(c *gin.Context) {
	rows, err := h.reports.Outward(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rows)
}

// AddOutward handles POST /api/outward-stock
func (h *StockHandler) AddOutward(c *gin.Context) {
	var req dto.StockEntryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry, err := h.ledger.AddOutwardStock(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, entry, "Outward stock added successfully")
}
