package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/pageza/mealwise/backend/config"
	"github.com/pageza/mealwise/backend/internal/logger"
	"github.com/pageza/mealwise/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Development: cfg.Environment == config.Development,
	})
	defer zl.Sync()
	if !cfg.Environment.IsProduction() {
		zl.Info("running outside production", zap.String("environment", string(cfg.Environment)))
	}

	srv, err := server.New(context.Background(), cfg, zl)
	if err != nil {
		zl.Fatal("failed to initialize server", zap.Error(err))
	}

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			zl.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		zl.Info("received signal", zap.String("signal", sig.String()))
	}

	zl.Info("shutting down server")
	if err := srv.Shutdown(context.Background()); err != nil {
		zl.Fatal("server shutdown error", zap.Error(err))
	}
	zl.Info("server stopped")
}
