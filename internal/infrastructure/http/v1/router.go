// Package v1 provides the ledger HTTP API.
package v1

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"github.com/shopspring/decimal"

	"stockledger/internal/domain/ledger"
	"stockledger/internal/domain/reports"
	"stockledger/internal/infrastructure/http/v1/handlers"
	"stockledger/internal/infrastructure/http/v1/middleware"
	"stockledger/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Repo is the record store backing every endpoint.
	Repo ledger.Repository

	// Ping checks the store for the readiness probe. Optional.
	Ping func(ctx context.Context) error

	// StoreDriver is reported by the readiness probe.
	StoreDriver string

	// Logger for request logging
	Logger *logger.Logger

	// Production switches gin to release mode.
	Production bool

	// AllowedOrigins restricts CORS. Empty allows all origins.
	AllowedOrigins []string

	// StaticDir, when set, is served at / for the bundled frontend.
	StaticDir string

	// LedgerOptions customise the ledger service (clock, id generation).
	LedgerOptions []ledger.Option

	// LowStockThreshold is used when a request passes no threshold.
	// Nil means reports.DefaultLowStockThreshold.
	LowStockThreshold *decimal.Decimal
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	threshold := reports.DefaultLowStockThreshold
	if cfg.LowStockThreshold != nil {
		threshold = *cfg.LowStockThreshold
	}
	ledgerService := ledger.NewService(cfg.Repo, cfg.LedgerOptions...)
	reportsService := reports.NewService(cfg.Repo, threshold)

	healthHandler := handlers.NewHealthHandler(cfg.StoreDriver, cfg.Ping)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	base := handlers.NewBaseHandler()
	api := router.Group("/api")
	registerLedgerRoutes(api, base, ledgerService, reportsService)
	registerReportRoutes(api, base, reportsService)

	if cfg.StaticDir != "" {
		router.NoRoute(gin.WrapH(http.FileServer(http.Dir(cfg.StaticDir))))
	}

	return router
}

// NewHandler wraps the router with gzip response compression.
func NewHandler(cfg RouterConfig) http.Handler {
	return gzhttp.GzipHandler(NewRouter(cfg))
}

// registerLedgerRoutes registers product and stock movement endpoints.
func registerLedgerRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, ledgerSvc *ledger.Service, reportsSvc *reports.Service) {
	products := handlers.NewProductsHandler(base, ledgerSvc)
	rg.GET("/products", products.List)
	rg.POST("/products", products.Create)

	stock := handlers.NewStockHandler(base, ledgerSvc, reportsSvc)
	rg.GET("/opening-stock", stock.ListOpening)
	rg.POST("/opening-stock", stock.AddOpening)
	rg.GET("/inward-stock", stock.ListInward)
	rg.POST("/inward-stock", stock.AddInward)
	rg.GET("/outward-stock", stock.ListOutward)
	rg.POST("/outward-stock", stock.AddOutward)
}

// registerReportRoutes registers the read-only report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, svc *reports.Service) {
	h := handlers.NewReportsHandler(base, svc)
	r := rg.Group("/reports")
	{
		r.GET("/stock-summary", h.StockSummary)
		r.GET("/stock/:productId", h.StockByProduct)
		r.GET("/transaction-history", h.TransactionHistory)
		r.GET("/inward", h.Inward)
		r.GET("/outward", h.Outward)
		r.GET("/movement", h.Movement)
		r.GET("/low-stock", h.LowStock)
		r.GET("/dashboard", h.Dashboard)
		r.GET("/export/:report", h.Export)
	}
}

func corsConfig(allowed []string) cors.Config {
	c := cors.DefaultConfig()
	if len(allowed) > 0 {
		c.AllowOrigins = allowed
	} else {
		c.AllowAllOrigins = true
	}
	c.AddAllowHeaders(middleware.HeaderRequestID, middleware.HeaderTraceID)
	c.AddExposeHeaders(middleware.HeaderRequestID, middleware.HeaderTraceID, "Content-Disposition")
	return c
}
