package handlers

import (
	"github.com/gin-gonic/gin"

	"stockledger/internal/domain/ledger"
	"stockledger/internal/infrastructure/http/v1/dto"
)

// ProductsHandler handles the product master endpoints.
type ProductsHandler struct {
	*BaseHandler
	service *ledger.Service
}

// NewProductsHandler creates a new products handler.
func NewProductsHandler(base *BaseHandler, service *ledger.Service) *ProductsHandler {
	return &ProductsHandler{BaseHandler: base, service: service}
}

// List handles GET /api/products
func (h *ProductsHandler) List(c *gin.Context) {
	products, err := h.service.Products(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, products)
}

// Create handles POST /api/products
func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, product, "Product added successfully")
}
