package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/mealwise/backend/internal/embedding"
	"github.com/pageza/mealwise/backend/internal/models"
	"github.com/pageza/mealwise/backend/internal/types"
)

const defaultSimilarLimit = 5

// RecipeService handles recipe operations
type RecipeService struct {
	db     *gorm.DB
	images ImageStore
	logger *zap.Logger
}

// NewRecipeService creates a new RecipeService instance. images may be nil, in which case
// image uploads are refused.
func NewRecipeService(db *gorm.DB, images ImageStore, logger *zap.Logger) *RecipeService {
	return &RecipeService{db: db, images: images, logger: logger}
}

// ListRecipes returns the recipes matching the filter
func (s *RecipeService) ListRecipes(ctx context.Context, f *types.RecipeFilter) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{})

	if f.Query != "" {
		like := likePattern(f.Query)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(chef) LIKE ?", like, like, like)
		if s.db.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.OrderBy{
				Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{GenerateEmbedding(f.Query)}},
			})
		}
	}
	if f.Cuisine != "" {
		query = query.Where("LOWER(cuisine) = ?", strings.ToLower(f.Cuisine))
	}
	if f.MealType != "" {
		query = query.Where("meal_type = ?", f.MealType)
	}
	if f.Chef != "" {
		query = query.Where("LOWER(chef) = ?", strings.ToLower(f.Chef))
	}
	if f.Tag != "" {
		query = query.Where("LOWER(tags) LIKE ?", `%"`+strings.ToLower(strings.TrimSpace(f.Tag))+`"%`)
	}
	if f.MaxMinutes > 0 {
		query = query.Where("prep_minutes + cook_minutes <= ?", f.MaxMinutes)
	}
	if f.FamilyID != "" {
		query = query.Where("family_id = ? OR family_id IS NULL", f.FamilyID)
	}
	for _, a := range strings.Split(f.ExcludeAllergens, ",") {
		if strings.TrimSpace(a) == "" {
			continue
		}
		like := likePattern(a)
		query = query.Where("LOWER(allergens) NOT LIKE ? AND LOWER(ingredients) NOT LIKE ?", like, like)
	}
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}

	var recipes []models.Recipe
	if err := query.Order("name ASC").Find(&recipes).Error; err != nil {
		return nil, translate(err, "list recipes")
	}
	return recipes, nil
}

// CreateRecipe stores a new recipe
func (s *RecipeService) CreateRecipe(ctx context.Context, req *types.RecipeRequest) (*models.Recipe, error) {
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return nil, invalid("name is required")
	}
	recipe := models.Recipe{MealType: models.MealDinner, Servings: defaultServings}
	applyRecipe(&recipe, req)
	if recipe.FamilyID != nil {
		if err := rowExists(ctx, s.db, &models.Family{}, *recipe.FamilyID, "family"); err != nil {
			return nil, err
		}
	}
	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, translate(err, "create recipe")
	}
	return &recipe, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, translate(err, "recipe")
	}
	return &recipe, nil
}

// UpdateRecipe applies the supplied fields and refreshes the embedding
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, req *types.RecipeRequest) (*models.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	applyRecipe(recipe, req)
	if err := s.db.WithContext(ctx).Save(recipe).Error; err != nil {
		return nil, translate(err, "update recipe")
	}
	return recipe, nil
}

// DeleteRecipe deletes a recipe. Plan items that used it keep their name snapshot.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	if err := rowExists(ctx, s.db, &models.Recipe{}, id, "recipe"); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.MealPlanItem{}).Where("recipe_id = ?", id).Update("recipe_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.FavoriteMeal{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", id).Error
	})
	return translate(err, "delete recipe")
}

// SimilarRecipes returns the recipes closest to id in embedding space
func (s *RecipeService) SimilarRecipes(ctx context.Context, id uuid.UUID, limit int) ([]models.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultSimilarLimit
	}
	scope := s.db.WithContext(ctx).Where("id <> ?", id)
	if recipe.FamilyID != nil {
		scope = scope.Where("family_id = ? OR family_id IS NULL", *recipe.FamilyID)
	} else {
		scope = scope.Where("family_id IS NULL")
	}

	var out []models.Recipe
	if s.db.Dialector.Name() == "postgres" {
		err := scope.Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{recipe.Embedding}},
		}).Limit(limit).Find(&out).Error
		if err != nil {
			return nil, translate(err, "similar recipes")
		}
		return out, nil
	}

	var all []models.Recipe
	if err := scope.Find(&all).Error; err != nil {
		return nil, translate(err, "similar recipes")
	}
	target := recipe.Embedding.Slice()
	scores := make(map[uuid.UUID]float64, len(all))
	for _, r := range all {
		scores[r.ID] = embedding.Cosine(target, r.Embedding.Slice())
	}
	sort.SliceStable(all, func(i, j int) bool {
		if scores[all[i].ID] != scores[all[j].ID] {
			return scores[all[i].ID] > scores[all[j].ID]
		}
		return all[i].Name < all[j].Name
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// UploadImage stores an image for the recipe and records its URL
func (s *RecipeService) UploadImage(ctx context.Context, id uuid.UUID, filename, contentType string, body io.Reader) (*models.Recipe, error) {
	if s.images == nil {
		return nil, fmt.Errorf("image storage: %w", ErrUnavailable)
	}
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
	default:
		return nil, invalid("unsupported image type %q", ext)
	}

	key := fmt.Sprintf("recipes/%s/%s%s", id, uuid.NewString(), ext)
	url, err := s.images.Upload(ctx, key, contentType, body)
	if err != nil {
		s.logger.Error("image upload failed", zap.String("recipe_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("upload image: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(recipe).Update("image_url", url).Error; err != nil {
		return nil, translate(err, "update recipe image")
	}
	recipe.ImageURL = url
	return recipe, nil
}

func applyRecipe(r *models.Recipe, req *types.RecipeRequest) {
	if req.FamilyID != nil {
		r.FamilyID = req.FamilyID
	}
	if req.Name != nil {
		r.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		r.Description = *req.Description
	}
	if req.Chef != nil {
		r.Chef = strings.TrimSpace(*req.Chef)
	}
	if req.Cuisine != nil {
		r.Cuisine = strings.TrimSpace(*req.Cuisine)
	}
	if req.MealType != nil {
		r.MealType = *req.MealType
	}
	if req.PrepMinutes != nil {
		r.PrepMinutes = *req.PrepMinutes
	}
	if req.CookMinutes != nil {
		r.CookMinutes = *req.CookMinutes
	}
	if req.Servings != nil {
		r.Servings = *req.Servings
	}
	if req.Difficulty != nil {
		r.Difficulty = *req.Difficulty
	}
	if req.Ingredients != nil {
		r.Ingredients = models.JSONArray[models.Ingredient](*req.Ingredients)
	}
	if req.Instructions != nil {
		r.Instructions = models.StringArray(*req.Instructions)
	}
	if req.Tags != nil {
		r.Tags = models.StringArray(cleanList(*req.Tags))
	}
	if req.Allergens != nil {
		r.Allergens = models.StringArray(cleanList(*req.Allergens))
	}
	if req.SeasonalTags != nil {
		r.SeasonalTags = models.StringArray(cleanList(*req.SeasonalTags))
	}
	if req.ImageURL != nil {
		r.ImageURL = *req.ImageURL
	}
	if req.SourceURL != nil {
		r.SourceURL = *req.SourceURL
	}
}
