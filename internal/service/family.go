package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/internal/models"
	"github.com/pageza/mealwise/backend/internal/types"
)

const (
	defaultServings       = 4
	defaultWeeknightLimit = 45
)

// FamilyService manages families and their members
type FamilyService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewFamilyService creates a new FamilyService instance
func NewFamilyService(db *gorm.DB, logger *zap.Logger) *FamilyService {
	return &FamilyService{db: db, logger: logger}
}

// ListFamilies returns every family ordered by name
func (s *FamilyService) ListFamilies(ctx context.Context) ([]models.Family, error) {
	var families []models.Family
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&families).Error; err != nil {
		return nil, translate(err, "list families")
	}
	return families, nil
}

// CreateFamily stores a new family, filling in defaults for omitted settings
func (s *FamilyService) CreateFamily(ctx context.Context, req *types.CreateFamilyRequest) (*models.Family, error) {
	family := models.Family{
		Name:                req.Name,
		DefaultServings:     req.DefaultServings,
		MaxWeeknightMinutes: req.MaxWeeknightMinutes,
		CuisinePreferences:  models.StringArray(cleanList(req.CuisinePreferences)),
		Notes:               req.Notes,
	}
	if family.DefaultServings <= 0 {
		family.DefaultServings = defaultServings
	}
	if family.MaxWeeknightMinutes <= 0 {
		family.MaxWeeknightMinutes = defaultWeeknightLimit
	}
	if err := s.db.WithContext(ctx).Create(&family).Error; err != nil {
		return nil, translate(err, "create family")
	}
	s.logger.Info("family created", zap.String("family_id", family.ID.String()))
	return &family, nil
}

// GetFamily loads a family with its members
func (s *FamilyService) GetFamily(ctx context.Context, id uuid.UUID) (*models.Family, error) {
	var family models.Family
	err := s.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&family, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "family")
	}
	return &family, nil
}

// UpdateFamily changes only the supplied fields
func (s *FamilyService) UpdateFamily(ctx context.Context, id uuid.UUID, req *types.UpdateFamilyRequest) (*models.Family, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.DefaultServings != nil {
		updates["default_servings"] = *req.DefaultServings
	}
	if req.MaxWeeknightMinutes != nil {
		updates["max_weeknight_minutes"] = *req.MaxWeeknightMinutes
	}
	if req.CuisinePreferences != nil {
		updates["cuisine_preferences"] = models.StringArray(cleanList(*req.CuisinePreferences))
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if err := s.exists(ctx, &models.Family{}, id, "family"); err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.Family{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, translate(err, "update family")
		}
	}
	return s.GetFamily(ctx, id)
}

// DeleteFamily removes a family and every row that belongs to it
func (s *FamilyService) DeleteFamily(ctx context.Context, id uuid.UUID) error {
	if err := s.exists(ctx, &models.Family{}, id, "family"); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		planIDs := tx.Model(&models.MealPlan{}).Select("id").Where("family_id = ?", id)
		if err := tx.Where("meal_plan_id IN (?)", planIDs).Delete(&models.MealPlanItem{}).Error; err != nil {
			return err
		}
		listIDs := tx.Model(&models.GroceryList{}).Select("id").Where("family_id = ?", id)
		if err := tx.Where("grocery_list_id IN (?)", listIDs).Delete(&models.GroceryItem{}).Error; err != nil {
			return err
		}
		for _, m := range []interface{}{
			&models.GroceryList{},
			&models.MealPlan{},
			&models.FavoriteChef{},
			&models.FavoriteMeal{},
			&models.FavoriteSide{},
			&models.WeeklyCookingSchedule{},
			&models.WeeklyLunchNeed{},
			&models.FamilyMember{},
		} {
			if err := tx.Where("family_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		// family-owned catalog entries go too; other families' references fall back to snapshots
		ownRecipes := tx.Model(&models.Recipe{}).Select("id").Where("family_id = ?", id)
		if err := tx.Model(&models.MealPlanItem{}).Where("recipe_id IN (?)", ownRecipes).Update("recipe_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id IN (?)", ownRecipes).Delete(&models.FavoriteMeal{}).Error; err != nil {
			return err
		}
		ownSides := tx.Model(&models.Side{}).Select("id").Where("family_id = ?", id)
		if err := tx.Where("side_id IN (?)", ownSides).Delete(&models.FavoriteSide{}).Error; err != nil {
			return err
		}
		if err := tx.Where("family_id = ?", id).Delete(&models.Recipe{}).Error; err != nil {
			return err
		}
		if err := tx.Where("family_id = ?", id).Delete(&models.Side{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Family{}, "id = ?", id).Error
	})
	if err != nil {
		return translate(err, "delete family")
	}
	s.logger.Info("family deleted", zap.String("family_id", id.String()))
	return nil
}

// ListMembers returns a family's members in the order they were added
func (s *FamilyService) ListMembers(ctx context.Context, familyID uuid.UUID) ([]models.FamilyMember, error) {
	if err := s.exists(ctx, &models.Family{}, familyID, "family"); err != nil {
		return nil, err
	}
	var members []models.FamilyMember
	if err := s.db.WithContext(ctx).Where("family_id = ?", familyID).Order("created_at ASC").Find(&members).Error; err != nil {
		return nil, translate(err, "list members")
	}
	return members, nil
}

// CreateMember adds a member to a family
func (s *FamilyService) CreateMember(ctx context.Context, familyID uuid.UUID, req *types.CreateMemberRequest) (*models.FamilyMember, error) {
	if err := s.exists(ctx, &models.Family{}, familyID, "family"); err != nil {
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = models.RoleAdult
	}
	if role != models.RoleAdult && role != models.RoleChild {
		return nil, invalid("role must be adult or child")
	}
	member := models.FamilyMember{
		FamilyID:            familyID,
		Name:                req.Name,
		Role:                role,
		Age:                 req.Age,
		Allergens:           models.StringArray(cleanList(req.Allergens)),
		DietaryRestrictions: models.StringArray(cleanList(req.DietaryRestrictions)),
		Dislikes:            models.StringArray(cleanList(req.Dislikes)),
	}
	if err := s.db.WithContext(ctx).Create(&member).Error; err != nil {
		return nil, translate(err, "create member")
	}
	return &member, nil
}

// UpdateMember changes only the supplied fields
func (s *FamilyService) UpdateMember(ctx context.Context, id uuid.UUID, req *types.UpdateMemberRequest) (*models.FamilyMember, error) {
	if err := s.exists(ctx, &models.FamilyMember{}, id, "member"); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Role != nil {
		if *req.Role != models.RoleAdult && *req.Role != models.RoleChild {
			return nil, invalid("role must be adult or child")
		}
		updates["role"] = *req.Role
	}
	if req.Age != nil {
		updates["age"] = *req.Age
	}
	if req.Allergens != nil {
		updates["allergens"] = models.StringArray(cleanList(*req.Allergens))
	}
	if req.DietaryRestrictions != nil {
		updates["dietary_restrictions"] = models.StringArray(cleanList(*req.DietaryRestrictions))
	}
	if req.Dislikes != nil {
		updates["dislikes"] = models.StringArray(cleanList(*req.Dislikes))
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.FamilyMember{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, translate(err, "update member")
		}
	}
	var member models.FamilyMember
	if err := s.db.WithContext(ctx).First(&member, "id = ?", id).Error; err != nil {
		return nil, translate(err, "member")
	}
	return &member, nil
}

// DeleteMember removes a member; plan items and lunch needs that named it keep their other data
func (s *FamilyService) DeleteMember(ctx context.Context, id uuid.UUID) error {
	if err := s.exists(ctx, &models.FamilyMember{}, id, "member"); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.MealPlanItem{}).Where("member_id = ?", id).Update("member_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.WeeklyLunchNeed{}).Where("member_id = ?", id).Update("member_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.FamilyMember{}, "id = ?", id).Error
	})
	return translate(err, "delete member")
}

// exists returns ErrNotFound unless a row of model's table has the given id
func (s *FamilyService) exists(ctx context.Context, model interface{}, id uuid.UUID, what string) error {
	return rowExists(ctx, s.db, model, id, what)
}
