package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/internal/models"
)

// Migrate creates or updates every table. Postgres also gets the vector
// extension and an HNSW index for similar-recipe search.
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	postgres := db.Dialector.Name() == "postgres"

	if postgres {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			return fmt.Errorf("failed to enable pgvector: %w", err)
		}
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	if postgres {
		if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_recipes_embedding
			ON recipes USING hnsw (embedding vector_l2_ops)`).Error; err != nil {
			return fmt.Errorf("failed to create embedding index: %w", err)
		}
	}

	logger.Info("database migrated", zap.String("dialect", db.Dialector.Name()), zap.Int("models", len(models.All())))
	return nil
}
