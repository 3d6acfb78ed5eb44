package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marea-picante/pos-terminal/internal/config"
	domainRepo "github.com/marea-picante/pos-terminal/internal/domain/repository"
	"github.com/marea-picante/pos-terminal/internal/presentation/http/handler"
	"github.com/marea-picante/pos-terminal/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Catalog *handler.CatalogHandler
	Draft   *handler.DraftHandler
	Order   *handler.OrderHandler
	Printer *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.Terminal())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Per-terminal rate limiter
		rateLimiter := middleware.NewTerminalRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		registerCatalogRoutes(v1, h)
		registerDraftRoutes(v1, h, deps)
		registerOrderRoutes(v1, h)
		registerPrinterRoutes(v1, h, deps)
	}

	return router
}

func registerCatalogRoutes(v1 *gin.RouterGroup, h *Handlers) {
	catalog := v1.Group("/catalog")
	{
		catalog.GET("/categories", h.Catalog.ListCategories)
		catalog.GET("/tables", h.Catalog.ListTables)
		catalog.GET("/products", h.Catalog.ListProducts)
		catalog.GET("/products/:id", h.Catalog.GetProduct)
		catalog.POST("/refresh", h.Catalog.Refresh)
		catalog.DELETE("/cache", h.Catalog.Clear)
	}
}

func registerDraftRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	idemCfg := middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}
	// Replay protection for retried tablet taps; the key stays optional on
	// composition routes
	idem := middleware.Idempotency(idemCfg)

	drafts := v1.Group("/drafts")
	{
		drafts.POST("", idem, h.Draft.Create)
		drafts.GET("/:id", h.Draft.Get)
		drafts.DELETE("/:id", h.Draft.Delete)
		drafts.POST("/:id/reset", idem, h.Draft.Reset)
		drafts.POST("/:id/tables", idem, h.Draft.ToggleTable)
		drafts.POST("/:id/items", idem, h.Draft.AdjustQuantity)
		drafts.POST("/:id/items/comment", idem, h.Draft.SetComment)
		drafts.POST("/:id/delivery", idem, h.Draft.SetDelivery)
		drafts.GET("/:id/surcharge", h.Draft.Surcharge)
		drafts.GET("/:id/preview", h.Draft.Preview)
		// Submission must not run twice; the key is mandatory here
		drafts.POST("/:id/submit", middleware.IdempotencyRequired(idemCfg), h.Draft.Submit)
	}
}

func registerOrderRoutes(v1 *gin.RouterGroup, h *Handlers) {
	orders := v1.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/reprint", h.Order.Reprint)
	}

	v1.GET("/register/status", h.Order.RegisterStatus)
}

func registerPrinterRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	idem := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})

	printers := v1.Group("/printers")
	{
		printers.GET("", h.Printer.List)
		printers.POST("", idem, h.Printer.Register)
		printers.DELETE("/:id", h.Printer.Remove)
		printers.POST("/:id/activate", h.Printer.SetActive)
		printers.POST("/test", h.Printer.TestPrint)
	}
}
