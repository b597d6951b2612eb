package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/internal/models"
	"github.com/pageza/mealwise/backend/internal/types"
)

// SideService manages the sides library
type SideService struct {
	db *gorm.DB
}

// NewSideService creates a new SideService instance
func NewSideService(db *gorm.DB) *SideService {
	return &SideService{db: db}
}

// ListSides returns the sides matching the filter
func (s *SideService) ListSides(ctx context.Context, f *types.SideFilter) ([]models.Side, error) {
	query := s.db.WithContext(ctx).Model(&models.Side{})
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.Cuisine != "" {
		query = query.Where("LOWER(cuisines) LIKE ? OR cuisines = '[]'", `%"`+strings.ToLower(strings.TrimSpace(f.Cuisine))+`"%`)
	}
	if f.FamilyID != "" {
		query = query.Where("family_id = ? OR family_id IS NULL", f.FamilyID)
	}
	var sides []models.Side
	if err := query.Order("name ASC").Find(&sides).Error; err != nil {
		return nil, translate(err, "list sides")
	}
	return sides, nil
}

// CreateSide stores a new side
func (s *SideService) CreateSide(ctx context.Context, req *types.SideRequest) (*models.Side, error) {
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return nil, invalid("name is required")
	}
	side := models.Side{Category: models.SideOther, Servings: defaultServings}
	applySide(&side, req)
	if side.FamilyID != nil {
		if err := rowExists(ctx, s.db, &models.Family{}, *side.FamilyID, "family"); err != nil {
			return nil, err
		}
	}
	if err := s.db.WithContext(ctx).Create(&side).Error; err != nil {
		return nil, translate(err, "create side")
	}
	return &side, nil
}

// UpdateSide changes only the supplied fields
func (s *SideService) UpdateSide(ctx context.Context, id uuid.UUID, req *types.SideRequest) (*models.Side, error) {
	var side models.Side
	if err := s.db.WithContext(ctx).First(&side, "id = ?", id).Error; err != nil {
		return nil, translate(err, "side")
	}
	applySide(&side, req)
	if err := s.db.WithContext(ctx).Save(&side).Error; err != nil {
		return nil, translate(err, "update side")
	}
	return &side, nil
}

// DeleteSide removes a side and the favorites pointing at it
func (s *SideService) DeleteSide(ctx context.Context, id uuid.UUID) error {
	if err := rowExists(ctx, s.db, &models.Side{}, id, "side"); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("side_id = ?", id).Delete(&models.FavoriteSide{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Side{}, "id = ?", id).Error
	})
	return translate(err, "delete side")
}

func applySide(side *models.Side, req *types.SideRequest) {
	if req.FamilyID != nil {
		side.FamilyID = req.FamilyID
	}
	if req.Name != nil {
		side.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		side.Category = *req.Category
	}
	if req.Cuisines != nil {
		side.Cuisines = models.StringArray(cleanList(*req.Cuisines))
	}
	if req.SeasonalTags != nil {
		side.SeasonalTags = models.StringArray(cleanList(*req.SeasonalTags))
	}
	if req.Allergens != nil {
		side.Allergens = models.StringArray(cleanList(*req.Allergens))
	}
	if req.PrepMinutes != nil {
		side.PrepMinutes = *req.PrepMinutes
	}
	if req.Servings != nil {
		side.Servings = *req.Servings
	}
	if req.Ingredients != nil {
		side.Ingredients = models.JSONArray[models.Ingredient](*req.Ingredients)
	}
}
