package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mocktailx/exchange/internal/catalog"
	"github.com/mocktailx/exchange/internal/config"
	"github.com/mocktailx/exchange/internal/orders"
	"github.com/mocktailx/exchange/internal/pricing"
	"github.com/mocktailx/exchange/internal/server"
	"github.com/mocktailx/exchange/internal/store"
	"github.com/mocktailx/exchange/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create logger
	zapLogger, err := logger.NewLogger(cfg.Log.Level, "mocktail-exchange")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	// Create drink store
	var drinks store.DrinkStore
	switch cfg.Store.Driver {
	case "memory":
		drinks = store.NewMemoryStore()
		zapLogger.Info("Using in-memory drink store")
	default:
		client, err := store.NewRedisClient(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer client.Close()
		drinks = store.NewRedisStore(client)
	}

	// Create services
	catalogSvc, err := catalog.NewService(zapLogger, drinks)
	if err != nil {
		zapLogger.Fatal("Failed to create catalog service", zap.Error(err))
	}

	orderSvc, err := orders.NewService(zapLogger, drinks)
	if err != nil {
		zapLogger.Fatal("Failed to create order service", zap.Error(err))
	}

	sweeper := pricing.NewSweeper(zapLogger, drinks, cfg.Pricing.Window)

	// Seed the catalog (idempotent)
	if err := catalogSvc.Seed(context.Background()); err != nil {
		zapLogger.Fatal("Failed to seed catalog", zap.Error(err))
	}

	// Start the decay sweeper
	if err := sweeper.Start(); err != nil {
		zapLogger.Fatal("Failed to start decay sweeper", zap.Error(err))
	}

	// Create HTTP server
	ticker := server.NewPriceTicker(zapLogger, catalogSvc, cfg.Ticker.Interval, cfg.Server.AllowedOrigins)
	srv := server.NewServer(zapLogger, catalogSvc, orderSvc, ticker, cfg.Server.AllowedOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv.Router(),
	}

	// Start server in a goroutine
	go func() {
		zapLogger.Info("Starting API server", zap.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start API server", zap.Error(err))
		}
	}()

	// Wait for interrupt to shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	// Stop the decay sweeper
	if err := sweeper.Stop(); err != nil {
		zapLogger.Error("Failed to stop decay sweeper", zap.Error(err))
	}

	zapLogger.Info("Server exited properly")
}
