package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/pageza/mealwise/backend/config"
	"github.com/pageza/mealwise/backend/internal/database"
	"github.com/pageza/mealwise/backend/internal/logger"
	"github.com/pageza/mealwise/backend/internal/seed"
)

func main() {
	migrate := flag.Bool("migrate", true, "Migrate the schema before seeding")
	flag.Parse()

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

	if *migrate {
		if err := database.Migrate(db, zl); err != nil {
			zl.Fatal("migration failed", zap.Error(err))
		}
	}

	res, err := seed.Run(context.Background(), db, zl)
	if err != nil {
		zl.Fatal("seeding failed", zap.Error(err))
	}
	zl.Info("done", zap.Int("recipes_added", res.Recipes), zap.Int("sides_added", res.Sides))
}
