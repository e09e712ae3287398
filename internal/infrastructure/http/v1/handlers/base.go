// Package handlers provides HTTP request handlers.
package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"stockledger/internal/core/apperror"
	"stockledger/internal/core/types"
	"stockledger/internal/infrastructure/http/v1/dto"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// NewBaseHandler creates a new base handler.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// BindJSON binds the JSON request body. An empty body binds to the zero
// value so the required-field checks report what is missing.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	err := c.ShouldBindJSON(obj)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.Error(c, apperror.NewInvalidInput("request body too large").WithDetail("limit", tooLarge.Limit))
		return false
	}
	if err != nil && !errors.Is(err, io.EOF) {
		h.Error(c, apperror.NewValidation("invalid request body").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// BindQuery binds query parameters.
func (h *BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid query parameters").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// Error registers error on Gin context and aborts request.
// Actual JSON response is produced by middleware.ErrorHandler (single source of truth).
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ParseDecimalQuery parses an optional decimal query parameter.
// It returns nil when the parameter is absent.
func (h *BaseHandler) ParseDecimalQuery(c *gin.Context, key, raw string) (*decimal.Decimal, bool) {
	if raw == "" {
		return nil, true
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		h.Error(c, apperror.NewInvalidInput(key+" must be a number").WithDetail(key, raw))
		return nil, false
	}
	if !types.InRange(d) {
		h.Error(c, apperror.NewInvalidInput(key+" is out of range").WithDetail(key, raw))
		return nil, false
	}
	return &d, true
}

// OK sends 200 response with data in the envelope.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.OK(data))
}

// Created sends 200 response with the new record and a confirmation message.
func (h *BaseHandler) Created(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, dto.Created(data, message))
}
