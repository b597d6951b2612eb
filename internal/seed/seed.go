package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/internal/models"
)

// Result counts what a run inserted
type Result struct {
	Recipes int
	Sides   int
}

// Run inserts every catalog entry that is not already present as a shared
// row with the same name. Running it twice is a no-op.
func Run(ctx context.Context, db *gorm.DB, logger *zap.Logger) (Result, error) {
	var res Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, recipe := range Recipes() {
			created, err := insertShared(tx, &models.Recipe{}, recipe.Name, &recipe)
			if err != nil {
				return fmt.Errorf("seed recipe %q: %w", recipe.Name, err)
			}
			if created {
				res.Recipes++
			}
		}
		for _, side := range Sides() {
			created, err := insertShared(tx, &models.Side{}, side.Name, &side)
			if err != nil {
				return fmt.Errorf("seed side %q: %w", side.Name, err)
			}
			if created {
				res.Sides++
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	logger.Info("catalog seeded", zap.Int("recipes", res.Recipes), zap.Int("sides", res.Sides))
	return res, nil
}

func insertShared(tx *gorm.DB, model interface{}, name string, row interface{}) (bool, error) {
	var count int64
	if err := tx.Model(model).Where("family_id IS NULL AND name = ?", name).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	return true, tx.Create(row).Error
}
