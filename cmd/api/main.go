// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/your-org/foodorder-backend/internal/config"
	"github.com/your-org/foodorder-backend/internal/domain/cart"
	"github.com/your-org/foodorder-backend/internal/domain/catalog"
	"github.com/your-org/foodorder-backend/internal/domain/checkout"
	"github.com/your-org/foodorder-backend/internal/domain/order"
	"github.com/your-org/foodorder-backend/internal/domain/user"
	"github.com/your-org/foodorder-backend/internal/infrastructure/storage"
	"github.com/your-org/foodorder-backend/internal/interfaces/http"
	"github.com/your-org/foodorder-backend/internal/interfaces/http/routes"
	"github.com/your-org/foodorder-backend/internal/pkg/logger"
	"github.com/your-org/foodorder-backend/internal/pkg/pdf"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.New(cfg)
	appLogger.Infof("Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	// Open the key-value store
	store, err := storage.Open(cfg)
	if err != nil {
		appLogger.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := store.Health(ctx); err != nil {
		cancel()
		appLogger.Fatalf("Storage health check failed: %v", err)
	}
	cancel()

	// Load the menu
	catalogService, err := catalog.NewService(cfg)
	if err != nil {
		appLogger.Fatalf("Failed to load catalog: %v", err)
	}

	// Domain services; each starts its initial load from storage.
	cartService := cart.NewService(store, appLogger, cfg)
	orderService := order.NewService(store, appLogger, cfg)
	userService := user.NewService(store, appLogger, cfg, nil)
	checkoutService := checkout.NewService(cfg, cartService, orderService, userService)
	pdfService := pdf.NewService(cfg)

	appLogger.Info("All systems operational")

	server := http.NewServer(cfg, appLogger, store, &routes.Services{
		Catalog:  catalogService,
		Cart:     cartService,
		Orders:   orderService,
		Checkout: checkoutService,
		Users:    userService,
		PDF:      pdfService,
	})

	go func() {
		if err := server.Start(); err != nil {
			appLogger.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down gracefully")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		appLogger.Errorf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	appLogger.Info("Server shutdown completed")
}
