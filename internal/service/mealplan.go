package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/internal/metrics"
	"github.com/pageza/mealwise/backend/internal/models"
	"github.com/pageza/mealwise/backend/internal/planner"
	"github.com/pageza/mealwise/backend/internal/types"
)

const (
	defaultRecentWeeks     = 2
	defaultSuggestionLimit = 5
)

// SideSuggestion is a ranked side for a plan item
type SideSuggestion = planner.ScoredSide

// MealPlanService generates and edits weekly plans
type MealPlanService struct {
	db          *gorm.DB
	schedules   *ScheduleService
	logger      *zap.Logger
	recentWeeks int
}

// NewMealPlanService creates a new MealPlanService instance. recentWeeks is how many earlier
// weeks count as "recently eaten"; zero or less uses the default of two.
func NewMealPlanService(db *gorm.DB, schedules *ScheduleService, logger *zap.Logger, recentWeeks int) *MealPlanService {
	if recentWeeks <= 0 {
		recentWeeks = defaultRecentWeeks
	}
	return &MealPlanService{db: db, schedules: schedules, logger: logger, recentWeeks: recentWeeks}
}

// Generate builds and stores the plan for a family's week. An existing plan for the same week is
// a conflict unless req.Overwrite is set, in which case it is replaced atomically.
func (s *MealPlanService) Generate(ctx context.Context, req *types.GeneratePlanRequest) (*models.MealPlan, error) {
	weekStart, err := types.ParseWeekStart(req.WeekStart)
	if err != nil {
		return nil, invalid("%v", err)
	}

	var plan *models.MealPlan
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		plan, err = s.generate(ctx, tx, req, weekStart)
		return err
	})
	return s.finishGenerate(req, plan, err)
}

// generate replaces or creates the plan inside tx. Callers own the transaction.
func (s *MealPlanService) generate(ctx context.Context, tx *gorm.DB, req *types.GeneratePlanRequest, weekStart time.Time) (*models.MealPlan, error) {
	var existing models.MealPlan
	err := tx.Where("family_id = ? AND week_start = ?", req.FamilyID, req.WeekStart).First(&existing).Error
	switch {
	case err == nil:
		if !req.Overwrite {
			return nil, fmt.Errorf("meal plan for week %s: %w", req.WeekStart, ErrConflict)
		}
		if err := deletePlanRows(tx, existing.ID); err != nil {
			return nil, err
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	input, err := s.plannerInput(ctx, tx, req.FamilyID, weekStart, req.WeekStart)
	if err != nil {
		return nil, err
	}
	result := planner.Generate(*input)

	plan := &models.MealPlan{
		FamilyID:  req.FamilyID,
		WeekStart: req.WeekStart,
		Notes:     req.Notes,
		Warnings:  models.StringArray(result.Warnings),
		Items:     result.Items,
	}
	if plan.Warnings == nil {
		plan.Warnings = models.StringArray{}
	}
	if err := tx.Create(plan).Error; err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *MealPlanService) finishGenerate(req *types.GeneratePlanRequest, plan *models.MealPlan, err error) (*models.MealPlan, error) {
	if err != nil {
		metrics.PlanGenerations.WithLabelValues("error").Inc()
		return nil, translate(err, "generate meal plan")
	}

	metrics.PlanGenerations.WithLabelValues("ok").Inc()
	for _, w := range plan.Warnings {
		s.logger.Warn("meal plan warning",
			zap.String("family_id", req.FamilyID.String()),
			zap.String("week_start", req.WeekStart),
			zap.String("warning", w))
	}
	sortItems(plan.Items)
	return plan, nil
}

// plannerInput loads everything the generator needs for one family's week.
func (s *MealPlanService) plannerInput(ctx context.Context, tx *gorm.DB, familyID uuid.UUID, weekStart time.Time, week string) (*planner.Input, error) {
	var family models.Family
	if err := tx.Preload("Members").First(&family, "id = ?", familyID).Error; err != nil {
		return nil, translate(err, "family")
	}

	schedule, err := s.schedules.schedule(ctx, tx, familyID, week)
	if err != nil {
		return nil, err
	}
	days := make([]planner.Day, 0, len(schedule))
	for _, d := range schedule {
		days = append(days, planner.Day{
			Day:        d.Day,
			IsCooking:  d.IsCooking,
			MaxMinutes: d.MaxCookMinutes,
			MealType:   d.MealType,
			Note:       d.Notes,
		})
	}

	var lunch []models.WeeklyLunchNeed
	if err := tx.Where("family_id = ? AND week_start = ?", familyID, week).Find(&lunch).Error; err != nil {
		return nil, err
	}
	needs := make([]planner.LunchNeed, 0, len(lunch))
	for _, n := range lunch {
		needs = append(needs, planner.LunchNeed{Day: n.Day, MemberID: n.MemberID, MemberName: n.MemberName, Count: n.Count, Notes: n.Notes})
	}

	var recipes []models.Recipe
	if err := tx.Where("family_id = ? OR family_id IS NULL", familyID).Order("name ASC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	var sides []models.Side
	if err := tx.Where("family_id = ? OR family_id IS NULL", familyID).Order("name ASC").Find(&sides).Error; err != nil {
		return nil, err
	}

	var favMeals []uuid.UUID
	if err := tx.Model(&models.FavoriteMeal{}).Where("family_id = ?", familyID).Pluck("recipe_id", &favMeals).Error; err != nil {
		return nil, err
	}
	var favChefs []string
	if err := tx.Model(&models.FavoriteChef{}).Where("family_id = ?", familyID).Pluck("name", &favChefs).Error; err != nil {
		return nil, err
	}
	var favSides []uuid.UUID
	if err := tx.Model(&models.FavoriteSide{}).Where("family_id = ?", familyID).Pluck("side_id", &favSides).Error; err != nil {
		return nil, err
	}

	since := weekStart.AddDate(0, 0, -7*s.recentWeeks).Format(types.DateLayout)
	var recent []uuid.UUID
	err = tx.Model(&models.MealPlanItem{}).
		Joins("JOIN meal_plans ON meal_plans.id = meal_plan_items.meal_plan_id").
		Where("meal_plans.family_id = ? AND meal_plans.week_start >= ? AND meal_plans.week_start < ?", familyID, since, week).
		Where("meal_plan_items.recipe_id IS NOT NULL").
		Pluck("meal_plan_items.recipe_id", &recent).Error
	if err != nil {
		return nil, err
	}

	return &planner.Input{
		FamilyID:           familyID,
		WeekStart:          weekStart,
		DefaultServings:    family.DefaultServings,
		CuisinePreferences: family.CuisinePreferences,
		Days:               days,
		Members:            family.Members,
		Recipes:            recipes,
		Sides:              sides,
		FavoriteMealIDs:    favMeals,
		FavoriteChefs:      favChefs,
		FavoriteSideIDs:    favSides,
		RecentRecipeIDs:    recent,
		LunchNeeds:         needs,
	}, nil
}

// ListPlans returns plans, newest week first
func (s *MealPlanService) ListPlans(ctx context.Context, f *types.PlanFilter) ([]models.MealPlan, error) {
	query := s.db.WithContext(ctx).Preload("Items")
	if f.FamilyID != "" {
		query = query.Where("family_id = ?", f.FamilyID)
	}
	if f.WeekStart != "" {
		query = query.Where("week_start = ?", f.WeekStart)
	}
	var plans []models.MealPlan
	if err := query.Order("week_start DESC").Find(&plans).Error; err != nil {
		return nil, translate(err, "list meal plans")
	}
	for i := range plans {
		sortItems(plans[i].Items)
	}
	return plans, nil
}

// GetPlan loads a plan with its items
func (s *MealPlanService) GetPlan(ctx context.Context, id uuid.UUID) (*models.MealPlan, error) {
	var plan models.MealPlan
	if err := s.db.WithContext(ctx).Preload("Items").First(&plan, "id = ?", id).Error; err != nil {
		return nil, translate(err, "meal plan")
	}
	sortItems(plan.Items)
	return &plan, nil
}

// DeletePlan removes a plan and its items. Grocery lists built from it are kept.
func (s *MealPlanService) DeletePlan(ctx context.Context, id uuid.UUID) error {
	if err := rowExists(ctx, s.db, &models.MealPlan{}, id, "meal plan"); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deletePlanRows(tx, id)
	})
	return translate(err, "delete meal plan")
}

func deletePlanRows(tx *gorm.DB, planID uuid.UUID) error {
	if err := tx.Where("meal_plan_id = ?", planID).Delete(&models.MealPlanItem{}).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.GroceryList{}).Where("meal_plan_id = ?", planID).Update("meal_plan_id", nil).Error; err != nil {
		return err
	}
	return tx.Delete(&models.MealPlan{}, "id = ?", planID).Error
}

// UpdateItem swaps a plan item's recipe, custom meal, sides, servings or notes
func (s *MealPlanService) UpdateItem(ctx context.Context, planID, itemID uuid.UUID, req *types.UpdatePlanItemRequest) (*models.MealPlanItem, error) {
	item, err := s.item(ctx, planID, itemID)
	if err != nil {
		return nil, err
	}

	if req.RecipeID != nil {
		var recipe models.Recipe
		if err := s.db.WithContext(ctx).First(&recipe, "id = ?", *req.RecipeID).Error; err != nil {
			return nil, translate(err, "recipe")
		}
		item.RecipeID = &recipe.ID
		item.RecipeName = recipe.Name
		item.CustomMeal = ""
	}
	if req.CustomMeal != nil {
		if req.RecipeID != nil && *req.CustomMeal != "" {
			return nil, invalid("recipe_id and custom_meal are mutually exclusive")
		}
		if *req.CustomMeal != "" {
			item.RecipeID = nil
			item.RecipeName = ""
			item.SideIDs = models.JSONArray[uuid.UUID]{}
			item.SideNames = models.StringArray{}
		}
		item.CustomMeal = *req.CustomMeal
	}
	if req.SideIDs != nil {
		ids := *req.SideIDs
		var sides []models.Side
		if len(ids) > 0 {
			if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&sides).Error; err != nil {
				return nil, translate(err, "sides")
			}
		}
		byID := make(map[uuid.UUID]models.Side, len(sides))
		for _, side := range sides {
			byID[side.ID] = side
		}
		item.SideIDs = models.JSONArray[uuid.UUID]{}
		item.SideNames = models.StringArray{}
		for _, id := range ids {
			side, ok := byID[id]
			if !ok {
				return nil, fmt.Errorf("side %s: %w", id, ErrNotFound)
			}
			item.SideIDs = append(item.SideIDs, side.ID)
			item.SideNames = append(item.SideNames, side.Name)
		}
	}
	if req.Servings != nil {
		item.Servings = *req.Servings
	}
	if req.Notes != nil {
		item.Notes = *req.Notes
	}

	if err := s.db.WithContext(ctx).Omit("Recipe").Save(item).Error; err != nil {
		return nil, translate(err, "update meal plan item")
	}
	return item, nil
}

func (s *MealPlanService) item(ctx context.Context, planID, itemID uuid.UUID) (*models.MealPlanItem, error) {
	var item models.MealPlanItem
	err := s.db.WithContext(ctx).Where("id = ? AND meal_plan_id = ?", itemID, planID).First(&item).Error
	if err != nil {
		return nil, translate(err, "meal plan item")
	}
	return &item, nil
}

// SuggestSides ranks the sides library against a plan item's main
func (s *MealPlanService) SuggestSides(ctx context.Context, planID, itemID uuid.UUID, limit int) ([]SideSuggestion, error) {
	if limit <= 0 {
		limit = defaultSuggestionLimit
	}
	var plan models.MealPlan
	if err := s.db.WithContext(ctx).First(&plan, "id = ?", planID).Error; err != nil {
		return nil, translate(err, "meal plan")
	}
	item, err := s.item(ctx, planID, itemID)
	if err != nil {
		return nil, err
	}
	if item.RecipeID == nil {
		return nil, invalid("plan item has no recipe to pair sides with")
	}
	var main models.Recipe
	if err := s.db.WithContext(ctx).First(&main, "id = ?", *item.RecipeID).Error; err != nil {
		return nil, translate(err, "recipe")
	}
	weekStart, err := types.ParseWeekStart(plan.WeekStart)
	if err != nil {
		return nil, invalid("%v", err)
	}

	input, err := s.plannerInput(ctx, s.db.WithContext(ctx), plan.FamilyID, weekStart, plan.WeekStart)
	if err != nil {
		return nil, translate(err, "side suggestions")
	}
	maxMinutes := 0
	for _, d := range input.Days {
		if d.Day == item.Day {
			maxMinutes = d.MaxMinutes
		}
	}
	sideCtx := planner.NewSideContext(plan.FamilyID, weekStart, input.Members, input.FavoriteSideIDs)
	ranked := planner.RankSides(main, input.Sides, sideCtx, maxMinutes)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

var mealOrder = map[string]int{models.MealBreakfast: 0, models.MealLunch: 1, models.MealDinner: 2}

func sortItems(items []models.MealPlanItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Day != items[j].Day {
			return items[i].Day < items[j].Day
		}
		return mealOrder[items[i].MealType] < mealOrder[items[j].MealType]
	})
}
