package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/marea-picante/pos-terminal/internal/application/service"
	"github.com/marea-picante/pos-terminal/internal/config"
	"github.com/marea-picante/pos-terminal/internal/infrastructure/database"
	apigateway "github.com/marea-picante/pos-terminal/internal/infrastructure/gateway"
	"github.com/marea-picante/pos-terminal/internal/infrastructure/repository"
	"github.com/marea-picante/pos-terminal/internal/presentation/http/handler"
	"github.com/marea-picante/pos-terminal/internal/presentation/http/routes"
	"github.com/marea-picante/pos-terminal/pkg/logger"
	"github.com/marea-picante/pos-terminal/pkg/printer"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger.Init(cfg.App.Debug)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Open the terminal-local store
	db, err := database.New(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository(db)
	draftRepo := repository.NewDraftRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Purge idempotency keys left over from previous sessions
	if err := idempotencyRepo.DeleteExpired(context.Background()); err != nil {
		logger.Warn("failed to purge expired idempotency keys", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Backend gateway
	backendGateway := apigateway.New(&cfg.Backend)

	// Printer manager and ticket layout
	printerManager := printer.NewManager(cfg.Printer.MaxPrinters)
	tickets := service.NewTicketFormatter(cfg.Ticket)

	// Initialize services
	catalogService := service.NewCatalogService(catalogRepo, backendGateway)
	composerService := service.NewComposerService(draftRepo, catalogRepo, cfg.Surcharge)
	orderService := service.NewOrderService(composerService, draftRepo, backendGateway, printerManager, tickets)
	printerService := service.NewPrinterService(printerManager, tickets)

	// Register the configured printer, if any
	printerService.RegisterFromConfig(&cfg.Printer)

	// Warm the catalog cache; the terminal still starts with a stale or
	// empty cache when the backend is unreachable.
	if err := catalogService.Refresh(context.Background()); err != nil {
		logger.Warn("catalog refresh failed at startup", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize handlers
	handlers := &routes.Handlers{
		Catalog: handler.NewCatalogHandler(catalogService),
		Draft:   handler.NewDraftHandler(composerService, orderService),
		Order:   handler.NewOrderHandler(orderService),
		Printer: handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Info().
		Str("service", cfg.App.Name).
		Str("port", port).
		Str("env", cfg.App.Env).
		Msg("starting server")

	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
