package routes

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sangkips/flowpilot-api/internal/config"
	"github.com/sangkips/flowpilot-api/internal/presentation/http/dto/response"
	"github.com/sangkips/flowpilot-api/internal/presentation/http/handler"
	"github.com/sangkips/flowpilot-api/internal/presentation/http/middleware"
	"github.com/sangkips/flowpilot-api/pkg/metrics"
	"github.com/sangkips/flowpilot-api/pkg/utils"
	"go.uber.org/zap"
)

// PermissionManageInventory is required for every inventory write route
const PermissionManageInventory = "manage-inventory"

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Analytics *handler.AnalyticsHandler
	Inventory *handler.InventoryHandler
	Order     *handler.OrderHandler
}

// HealthCheck probes one dependency
type HealthCheck func(ctx context.Context) error

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager  *utils.JWTManager
	Cfg         *config.Config
	Log         *zap.Logger
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer
	RateLimiter *middleware.ClientRateLimiter
	Checks      map[string]HealthCheck
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(deps.Metrics.Middleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", healthHandler(deps))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(deps.RateLimiter.Middleware())

		registerAnalyticsRoutes(protected, h)
		registerInventoryRoutes(protected, h)
		registerOrderRoutes(protected, h)
	}

	router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found")
	})

	return router
}

func healthHandler(deps *Deps) gin.HandlerFunc {
	names := make([]string, 0, len(deps.Checks))
	for name := range deps.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := make(map[string]string, len(names))
		for _, name := range names {
			if err := deps.Checks[name](ctx); err != nil {
				status = http.StatusServiceUnavailable
				checks[name] = err.Error()
				continue
			}
			checks[name] = "ok"
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		c.JSON(status, gin.H{
			"status":       overall,
			"service":      deps.Cfg.App.Name,
			"store":        deps.Cfg.Store.Driver,
			"checks":       checks,
			"rate_limiter": deps.RateLimiter.Stats(),
		})
	}
}

func registerAnalyticsRoutes(protected *gin.RouterGroup, h *Handlers) {
	analytics := protected.Group("/analytics")
	{
		analytics.GET("/customers", h.Analytics.Customers)
		analytics.GET("/products", h.Analytics.Products)
		analytics.GET("/overview", h.Analytics.Overview)
		analytics.GET("/deadstock-report", h.Analytics.DeadstockReport)
		analytics.GET("/deadstock-report/export", h.Analytics.ExportDeadstockReport)
		analytics.GET("/forecasting", h.Analytics.Forecasting)
		analytics.GET("/pricing", h.Analytics.Pricing)
	}
}

func registerInventoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	inventory := protected.Group("/inventory")
	{
		inventory.GET("", h.Inventory.List)
		inventory.GET("/:id", h.Inventory.Get)

		writes := inventory.Group("")
		writes.Use(middleware.RequirePermission(PermissionManageInventory))
		writes.POST("", h.Inventory.Create)
		writes.PUT("/:id", h.Inventory.Update)
		writes.DELETE("/:id", h.Inventory.Delete)
		writes.PUT("/price", h.Inventory.UpdatePrice)
		writes.PUT("/prices", h.Inventory.BulkUpdatePrices)
		writes.POST("/deadstock-actions", h.Inventory.DeadstockAction)
	}
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/orders", h.Order.List)
	protected.GET("/orders/:id", h.Order.Get)
}
