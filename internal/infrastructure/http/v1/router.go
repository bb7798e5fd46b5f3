// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"stockbook/internal/app"
	"stockbook/internal/infrastructure/http/v1/handlers"
	"stockbook/internal/infrastructure/http/v1/middleware"
	"stockbook/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Services are the domain entry points
	Services *app.Services

	// Storage answers the readiness probe
	Storage handlers.Pinger

	// Backend names the storage in the readiness body
	Backend string

	// Logger for request logging
	Logger *logger.Logger
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger.WithComponent("http")))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Storage, cfg.Backend)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	v1 := router.Group("/api/v1")
	base := handlers.NewBaseHandler()

	registerProductRoutes(v1, base, cfg.Services)
	registerLedgerRoutes(v1, base, cfg.Services)
	registerReportRoutes(v1, base, cfg.Services)

	return router
}

func registerProductRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, svc *app.Services) {
	h := handlers.NewProductHandler(base, svc.Products)
	products := rg.Group("/products")
	{
		products.POST("", h.Register)
		products.GET("", h.List)
		products.GET("/:code", h.Get)
		products.PUT("/:code", h.Update)
	}
}

func registerLedgerRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, svc *app.Services) {
	in := handlers.NewStockInHandler(base, svc.StockIn)
	stockIn := rg.Group("/stock-in")
	{
		stockIn.POST("", in.Record)
		stockIn.GET("", in.ListRecent)
		stockIn.GET("/:number", in.Get)
	}

	out := handlers.NewStockOutHandler(base, svc.StockOut)
	stockOut := rg.Group("/stock-out")
	{
		stockOut.POST("", out.Record)
		stockOut.GET("", out.ListRecent)
		stockOut.GET("/:number", out.Get)
	}
}

func registerReportRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, svc *app.Services) {
	h := handlers.NewReportsHandler(base, svc.Reports)
	rg.GET("/reports/stock-levels", h.GetStockLevels)
}
