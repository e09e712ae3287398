package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	driver string
	ping   func(ctx context.Context) error
}

// NewHealthHandler creates a new health handler. ping checks the record store.
func NewHealthHandler(driver string, ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{driver: driver, ping: ping}
}

// Live handles liveness probe (is the process alive?).
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready handles readiness probe (can the store be read?).
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.ping != nil {
		if err := h.ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "error",
				"checks": map[string]string{
					"store": "unhealthy",
				},
				"driver": h.driver,
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"checks": map[string]string{
			"store": "healthy",
		},
		"driver": h.driver,
	})
}
