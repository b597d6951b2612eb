package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/pageza/mealwise/backend/config"
	"github.com/pageza/mealwise/backend/internal/database"
	"github.com/pageza/mealwise/backend/internal/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	zl := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer zl.Sync()

	db, err := database.New(cfg, zl)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.Migrate(db, zl); err != nil {
		zl.Fatal("migration failed", zap.Error(err))
	}
}
