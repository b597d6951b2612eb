package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/internal/models"
	"github.com/pageza/mealwise/backend/internal/types"
)

// FavoriteService manages a family's favorite chefs, meals and sides
type FavoriteService struct {
	db *gorm.DB
}

// NewFavoriteService creates a new FavoriteService instance
func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// ListChefs returns a family's favorite chefs
func (s *FavoriteService) ListChefs(ctx context.Context, familyID uuid.UUID) ([]models.FavoriteChef, error) {
	if err := rowExists(ctx, s.db, &models.Family{}, familyID, "family"); err != nil {
		return nil, err
	}
	var chefs []models.FavoriteChef
	if err := s.db.WithContext(ctx).Where("family_id = ?", familyID).Order("name ASC").Find(&chefs).Error; err != nil {
		return nil, translate(err, "list favorite chefs")
	}
	return chefs, nil
}

// AddChef marks a chef as a favorite
func (s *FavoriteService) AddChef(ctx context.Context, familyID uuid.UUID, name string) (*models.FavoriteChef, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if err := rowExists(ctx, s.db, &models.Family{}, familyID, "family"); err != nil {
		return nil, err
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.FavoriteChef{}).
		Where("family_id = ? AND LOWER(name) = ?", familyID, strings.ToLower(name)).Count(&count).Error; err != nil {
		return nil, translate(err, "favorite chef")
	}
	if count > 0 {
		return nil, translate(gorm.ErrDuplicatedKey, "favorite chef")
	}
	chef := models.FavoriteChef{FamilyID: familyID, Name: name}
	if err := s.db.WithContext(ctx).Create(&chef).Error; err != nil {
		return nil, translate(err, "favorite chef")
	}
	return &chef, nil
}

// RemoveChef deletes a favorite chef
func (s *FavoriteService) RemoveChef(ctx context.Context, id uuid.UUID) error {
	return s.remove(ctx, &models.FavoriteChef{}, id, "favorite chef")
}

// ListMeals returns a family's favorite meals with their recipes
func (s *FavoriteService) ListMeals(ctx context.Context, familyID uuid.UUID) ([]models.FavoriteMeal, error) {
	if err := rowExists(ctx, s.db, &models.Family{}, familyID, "family"); err != nil {
		return nil, err
	}
	var meals []models.FavoriteMeal
	if err := s.db.WithContext(ctx).Preload("Recipe").Where("family_id = ?", familyID).Order("created_at ASC").Find(&meals).Error; err != nil {
		return nil, translate(err, "list favorite meals")
	}
	return meals, nil
}

// AddMeal marks a recipe as a favorite
func (s *FavoriteService) AddMeal(ctx context.Context, familyID uuid.UUID, req *types.FavoriteMealRequest) (*models.FavoriteMeal, error) {
	if err := rowExists(ctx, s.db, &models.Family{}, familyID, "family"); err != nil {
		return nil, err
	}
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", req.RecipeID).Error; err != nil {
		return nil, translate(err, "recipe")
	}
	meal := models.FavoriteMeal{FamilyID: familyID, RecipeID: req.RecipeID, Notes: req.Notes}
	if err := s.db.WithContext(ctx).Omit("Recipe").Create(&meal).Error; err != nil {
		return nil, translate(err, "favorite meal")
	}
	meal.Recipe = &recipe
	return &meal, nil
}

// RemoveMeal deletes a favorite meal
func (s *FavoriteService) RemoveMeal(ctx context.Context, id uuid.UUID) error {
	return s.remove(ctx, &models.FavoriteMeal{}, id, "favorite meal")
}

// ListSides returns a family's favorite sides
func (s *FavoriteService) ListSides(ctx context.Context, familyID uuid.UUID) ([]models.FavoriteSide, error) {
	if err := rowExists(ctx, s.db, &models.Family{}, familyID, "family"); err != nil {
		return nil, err
	}
	var sides []models.FavoriteSide
	if err := s.db.WithContext(ctx).Preload("Side").Where("family_id = ?", familyID).Order("created_at ASC").Find(&sides).Error; err != nil {
		return nil, translate(err, "list favorite sides")
	}
	return sides, nil
}

// AddSide marks a side as a favorite
func (s *FavoriteService) AddSide(ctx context.Context, familyID, sideID uuid.UUID) (*models.FavoriteSide, error) {
	if err := rowExists(ctx, s.db, &models.Family{}, familyID, "family"); err != nil {
		return nil, err
	}
	var side models.Side
	if err := s.db.WithContext(ctx).First(&side, "id = ?", sideID).Error; err != nil {
		return nil, translate(err, "side")
	}
	fav := models.FavoriteSide{FamilyID: familyID, SideID: sideID}
	if err := s.db.WithContext(ctx).Omit("Side").Create(&fav).Error; err != nil {
		return nil, translate(err, "favorite side")
	}
	fav.Side = &side
	return &fav, nil
}

// RemoveSide deletes a favorite side
func (s *FavoriteService) RemoveSide(ctx context.Context, id uuid.UUID) error {
	return s.remove(ctx, &models.FavoriteSide{}, id, "favorite side")
}

func (s *FavoriteService) remove(ctx context.Context, model interface{}, id uuid.UUID, what string) error {
	res := s.db.WithContext(ctx).Delete(model, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, what)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, what)
	}
	return nil
}
