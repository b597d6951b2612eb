package service_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/internal/mocks"
	"github.com/pageza/mealwise/backend/internal/models"
	"github.com/pageza/mealwise/backend/internal/planner"
	"github.com/pageza/mealwise/backend/internal/service"
	"github.com/pageza/mealwise/backend/internal/testhelpers"
	"github.com/pageza/mealwise/backend/internal/types"
)

const week = "2025-03-03"

type services struct {
	db        *gorm.DB
	families  *service.FamilyService
	recipes   *service.RecipeService
	favorites *service.FavoriteService
	schedules *service.ScheduleService
	plans     *service.MealPlanService
	grocery   *service.GroceryService
	setup     *service.SmartSetupService
}

func newServices(t *testing.T) *services {
	t.Helper()
	db := testhelpers.NewSQLiteDB(t)
	logger := zap.NewNop()
	schedules := service.NewScheduleService(db)
	plans := service.NewMealPlanService(db, schedules, logger, 2)
	return &services{
		db:        db,
		families:  service.NewFamilyService(db, logger),
		recipes:   service.NewRecipeService(db, nil, logger),
		favorites: service.NewFavoriteService(db),
		schedules: schedules,
		plans:     plans,
		grocery:   service.NewGroceryService(db, "test-secret", time.Hour, logger),
		setup:     service.NewSmartSetupService(db, service.NewMemorySessionStore(), schedules, plans, logger),
	}
}

func intp(v int) *int       { return &v }
func boolp(v bool) *bool    { return &v }
func strp(v string) *string { return &v }

// cookingOnly stores a schedule where only the given days cook
func cookingOnly(t *testing.T, s *services, familyID uuid.UUID, days ...int) {
	t.Helper()
	cooking := map[int]bool{}
	for _, d := range days {
		cooking[d] = true
	}
	req := &types.ScheduleRequest{WeekStart: week}
	for i := 0; i < 7; i++ {
		req.Days = append(req.Days, types.ScheduleDay{Day: intp(i), IsCooking: boolp(cooking[i]), MaxCookMinutes: 60})
	}
	_, err := s.schedules.ReplaceSchedule(context.Background(), familyID, req)
	require.NoError(t, err)
}

func TestFamilyDefaultsAndPartialUpdate(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	family, err := s.families.CreateFamily(ctx, &types.CreateFamilyRequest{Name: "Rivera"})
	require.NoError(t, err)
	assert.Equal(t, 4, family.DefaultServings)
	assert.Equal(t, 45, family.MaxWeeknightMinutes)

	updated, err := s.families.UpdateFamily(ctx, family.ID, &types.UpdateFamilyRequest{DefaultServings: intp(6)})
	require.NoError(t, err)
	assert.Equal(t, "Rivera", updated.Name)
	assert.Equal(t, 6, updated.DefaultServings)
	assert.Equal(t, 45, updated.MaxWeeknightMinutes)

	_, err = s.families.GetFamily(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDeleteFamilyRemovesMembers(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	family := testhelpers.CreateFamily(t, s.db, nil)
	member := testhelpers.CreateMember(t, s.db, family.ID, nil)

	require.NoError(t, s.families.DeleteFamily(ctx, family.ID))

	var count int64
	require.NoError(t, s.db.Model(&models.FamilyMember{}).Where("id = ?", member.ID).Count(&count).Error)
	assert.Zero(t, count)
	assert.ErrorIs(t, s.families.DeleteFamily(ctx, family.ID), service.ErrNotFound)
}

func TestScheduleDefaultsAndReplace(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	family := testhelpers.CreateFamily(t, s.db, nil)

	days, err := s.schedules.GetSchedule(ctx, family.ID, week)
	require.NoError(t, err)
	require.Len(t, days, 7)
	assert.True(t, days[0].IsCooking)
	assert.Equal(t, 45, days[0].MaxCookMinutes)
	assert.Equal(t, 90, days[6].MaxCookMinutes)

	days, err = s.schedules.ReplaceSchedule(ctx, family.ID, &types.ScheduleRequest{
		WeekStart: week,
		Days:      []types.ScheduleDay{{Day: intp(4), IsCooking: boolp(false), Notes: "Eating out"}},
	})
	require.NoError(t, err)
	require.Len(t, days, 7)
	assert.False(t, days[4].IsCooking)
	assert.Equal(t, "Eating out", days[4].Notes)
	assert.True(t, days[3].IsCooking)

	_, err = s.schedules.ReplaceSchedule(ctx, family.ID, &types.ScheduleRequest{
		WeekStart: week,
		Days:      []types.ScheduleDay{{Day: intp(1)}, {Day: intp(1)}},
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestGenerateConflictAndOverwrite(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	family := testhelpers.CreateFamily(t, s.db, nil)
	for i := 0; i < 7; i++ {
		testhelpers.CreateRecipe(t, s.db, nil)
	}

	req := &types.GeneratePlanRequest{FamilyID: family.ID, WeekStart: week}
	plan, err := s.plans.Generate(ctx, req)
	require.NoError(t, err)
	require.Len(t, plan.Items, 7)

	seen := map[uuid.UUID]bool{}
	for _, item := range plan.Items {
		require.NotNil(t, item.RecipeID, "day %d", item.Day)
		assert.False(t, seen[*item.RecipeID], "recipe repeated on day %d", item.Day)
		seen[*item.RecipeID] = true
	}

	_, err = s.plans.Generate(ctx, req)
	assert.ErrorIs(t, err, service.ErrConflict)

	req.Overwrite = true
	replaced, err := s.plans.Generate(ctx, req)
	require.NoError(t, err)
	assert.NotEqual(t, plan.ID, replaced.ID)

	plans, err := s.plans.ListPlans(ctx, &types.PlanFilter{FamilyID: family.ID.String()})
	require.NoError(t, err)
	assert.Len(t, plans, 1)
}

func TestGenerateRespectsScheduleAndAllergens(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	family := testhelpers.CreateFamily(t, s.db, nil)
	testhelpers.CreateMember(t, s.db, family.ID, func(m *models.FamilyMember) {
		m.Allergens = models.StringArray{"peanut"}
	})
	testhelpers.CreateRecipe(t, s.db, func(r *models.Recipe) {
		r.Name = "Satay Noodles"
		r.Allergens = models.StringArray{"peanut"}
	})
	safe := testhelpers.CreateRecipe(t, s.db, func(r *models.Recipe) { r.Name = "Lemon Chicken" })
	cookingOnly(t, s, family.ID, 0, 1)

	plan, err := s.plans.Generate(ctx, &types.GeneratePlanRequest{FamilyID: family.ID, WeekStart: week})
	require.NoError(t, err)
	require.Len(t, plan.Items, 7)

	assert.Equal(t, safe.ID, *plan.Items[0].RecipeID)
	assert.Equal(t, planner.NoMatch, plan.Items[1].CustomMeal)
	assert.Len(t, plan.Warnings, 1)
	for _, item := range plan.Items[2:] {
		assert.Nil(t, item.RecipeID)
		assert.Equal(t, planner.NoCooking, item.CustomMeal)
	}
}

func TestDeleteRecipeKeepsPlanSnapshot(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	family := testhelpers.CreateFamily(t, s.db, nil)
	recipe := testhelpers.CreateRecipe(t, s.db, nil)
	cookingOnly(t, s, family.ID, 0)

	plan, err := s.plans.Generate(ctx, &types.GeneratePlanRequest{FamilyID: family.ID, WeekStart: week})
	require.NoError(t, err)
	require.NoError(t, s.recipes.DeleteRecipe(ctx, recipe.ID))

	reloaded, err := s.plans.GetPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.Items[0].RecipeID)
	assert.Equal(t, recipe.Name, reloaded.Items[0].RecipeName)
}

func TestUpdatePlanItemSwapsRecipe(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	family := testhelpers.CreateFamily(t, s.db, nil)
	testhelpers.CreateRecipe(t, s.db, nil)
	swap := testhelpers.CreateRecipe(t, s.db, func(r *models.Recipe) { r.CookMinutes = 240 })
	cookingOnly(t, s, family.ID, 0)

	plan, err := s.plans.Generate(ctx, &types.GeneratePlanRequest{FamilyID: family.ID, WeekStart: week})
	require.NoError(t, err)
	item := plan.Items[0]

	updated, err := s.plans.UpdateItem(ctx, plan.ID, item.ID, &types.UpdatePlanItemRequest{RecipeID: &swap.ID, Servings: intp(6)})
	require.NoError(t, err)
	assert.Equal(t, swap.ID, *updated.RecipeID)
	assert.Equal(t, swap.Name, updated.RecipeName)
	assert.Equal(t, 6, updated.Servings)

	_, err = s.plans.UpdateItem(ctx, plan.ID, item.ID, &types.UpdatePlanItemRequest{RecipeID: &swap.ID, CustomMeal: strp("Pizza night")})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = s.plans.UpdateItem(ctx, uuid.New(), item.ID, &types.UpdatePlanItemRequest{Servings: intp(2)})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestGroceryListAggregatesAndRebuilds(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	family := testhelpers.CreateFamily(t, s.db, nil)
	testhelpers.CreateRecipe(t, s.db, func(r *models.Recipe) {
		r.Ingredients = models.JSONArray[models.Ingredient]{{Name: "milk", Quantity: 1, Unit: "cup"}}
	})
	testhelpers.CreateRecipe(t, s.db, func(r *models.Recipe) {
		r.Ingredients = models.JSONArray[models.Ingredient]{{Name: "Milk", Quantity: 8, Unit: "tbsp"}}
	})
	cookingOnly(t, s, family.ID, 0, 1)

	plan, err := s.plans.Generate(ctx, &types.GeneratePlanRequest{FamilyID: family.ID, WeekStart: week})
	require.NoError(t, err)

	list, err := s.grocery.BuildFromPlan(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	milk := list.Items[0]
	assert.Equal(t, "milk", milk.Name)
	assert.Equal(t, 1.5, milk.Quantity)
	assert.Equal(t, "cup", milk.Unit)
	assert.Len(t, milk.Sources, 2)

	_, err = s.grocery.UpdateItem(ctx, milk.ID, &types.UpdateGroceryItemRequest{Checked: boolp(true)})
	require.NoError(t, err)
	_, err = s.grocery.AddItem(ctx, list.ID, &types.GroceryItemRequest{Name: "paper towels", Quantity: 1})
	require.NoError(t, err)

	rebuilt, err := s.grocery.BuildFromPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, list.ID, rebuilt.ID)
	require.Len(t, rebuilt.Items, 2)
	for _, item := range rebuilt.Items {
		switch item.Name {
		case "milk":
			assert.True(t, item.Checked)
		case "paper towels":
			assert.True(t, item.Manual)
		default:
			t.Fatalf("unexpected item %q", item.Name)
		}
	}
}

func TestShareTokens(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	family := testhelpers.CreateFamily(t, s.db, nil)
	list := &models.GroceryList{FamilyID: family.ID, Name: "Extras", WeekStart: week}
	require.NoError(t, s.db.Create(list).Error)

	link, err := s.grocery.Share(ctx, list.ID)
	require.NoError(t, err)
	assert.True(t, link.ExpiresAt.After(time.Now()))

	shared, err := s.grocery.GetShared(ctx, link.Token)
	require.NoError(t, err)
	assert.Equal(t, list.ID, shared.ID)

	_, err = s.grocery.GetShared(ctx, "not-a-token")
	assert.ErrorIs(t, err, service.ErrInvalidShareToken)

	other := service.NewGroceryService(s.db, "another-secret", time.Hour, zap.NewNop())
	_, err = other.GetShared(ctx, link.Token)
	assert.ErrorIs(t, err, service.ErrInvalidShareToken)

	_, err = s.grocery.Share(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestFavoriteChefIsUniquePerFamily(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	family := testhelpers.CreateFamily(t, s.db, nil)

	_, err := s.favorites.AddChef(ctx, family.ID, "Samin Nosrat")
	require.NoError(t, err)
	_, err = s.favorites.AddChef(ctx, family.ID, "samin nosrat ")
	assert.ErrorIs(t, err, service.ErrConflict)
	_, err = s.favorites.AddChef(ctx, uuid.New(), "Samin Nosrat")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestSmartSetupParseAndConfirm(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	family := testhelpers.CreateFamily(t, s.db, nil)

	session, err := s.setup.Parse(ctx, &types.SmartSetupRequest{FamilyID: family.ID, WeekStart: week, Text: "Friday we're eating out"})
	require.NoError(t, err)
	require.Len(t, session.Days, 7)
	assert.False(t, session.Days[4].IsCooking)

	loaded, err := s.setup.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.Days, loaded.Days)

	result, err := s.setup.Confirm(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, result.Schedule, 7)
	assert.False(t, result.Schedule[4].IsCooking)

	_, err = s.setup.Get(ctx, session.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestGenerateFromConversation(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	family := testhelpers.CreateFamily(t, s.db, nil)
	for i := 0; i < 3; i++ {
		testhelpers.CreateRecipe(t, s.db, nil)
	}

	_, err := s.setup.GenerateFromConversation(ctx, &types.ConversationPlanRequest{
		FamilyID:  family.ID,
		WeekStart: week,
		Messages:  []types.ConversationMessage{{Role: "assistant", Content: "What does your week look like?"}},
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	result, err := s.setup.GenerateFromConversation(ctx, &types.ConversationPlanRequest{
		FamilyID:  family.ID,
		WeekStart: week,
		Messages: []types.ConversationMessage{
			{Role: "user", Content: "Friday we're eating out"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result.Plan)
	assert.Len(t, result.Plan.Items, 7)
	assert.Equal(t, "Eating out", result.Plan.Items[4].CustomMeal)
}

func TestGenerateFromConversationConflictKeepsSchedule(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	family := testhelpers.CreateFamily(t, s.db, nil)
	testhelpers.CreateRecipe(t, s.db, nil)

	_, err := s.plans.Generate(ctx, &types.GeneratePlanRequest{FamilyID: family.ID, WeekStart: week})
	require.NoError(t, err)

	req := &types.ConversationPlanRequest{
		FamilyID:  family.ID,
		WeekStart: week,
		Messages:  []types.ConversationMessage{{Role: "user", Content: "Friday we're eating out"}},
	}
	_, err = s.setup.GenerateFromConversation(ctx, req)
	assert.ErrorIs(t, err, service.ErrConflict)

	schedule, err := s.schedules.GetSchedule(ctx, family.ID, week)
	require.NoError(t, err)
	require.Len(t, schedule, 7)
	assert.True(t, schedule[4].IsCooking)
	assert.Empty(t, schedule[4].Notes)

	req.Overwrite = true
	result, err := s.setup.GenerateFromConversation(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Eating out", result.Plan.Items[4].CustomMeal)

	schedule, err = s.schedules.GetSchedule(ctx, family.ID, week)
	require.NoError(t, err)
	assert.False(t, schedule[4].IsCooking)
}

func TestMemorySessionStoreRoundTrip(t *testing.T) {
	store := service.NewMemorySessionStore()
	ctx := context.Background()
	session := &service.SetupSession{ID: "abc", WeekStart: week}

	require.NoError(t, store.Save(ctx, "abc", session, time.Minute))
	loaded, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, week, loaded.WeekStart)

	require.NoError(t, store.Delete(ctx, "abc"))
	_, err = store.Load(ctx, "abc")
	assert.ErrorIs(t, err, service.ErrNotFound)

	require.NoError(t, store.Save(ctx, "gone", session, -time.Second))
	_, err = store.Load(ctx, "gone")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestSimilarRecipesRanksByEmbedding(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	plain := func(name, cuisine string, tags []string, ingredients ...string) func(*models.Recipe) {
		return func(r *models.Recipe) {
			r.Name, r.Cuisine, r.Description, r.Chef = name, cuisine, "", ""
			r.Tags = models.StringArray(tags)
			r.Ingredients = models.JSONArray[models.Ingredient]{}
			for _, ing := range ingredients {
				r.Ingredients = append(r.Ingredients, models.Ingredient{Name: ing, Quantity: 1})
			}
		}
	}
	curry := testhelpers.CreateRecipe(t, s.db, plain("Chickpea Curry", "indian", []string{"curry", "vegetarian"}, "chickpeas", "coconut milk", "spinach"))
	testhelpers.CreateRecipe(t, s.db, plain("Spinach Curry", "indian", []string{"curry", "vegetarian"}, "coconut milk", "spinach", "onion"))
	testhelpers.CreateRecipe(t, s.db, plain("Cheeseburger", "american", nil, "beef", "bun", "cheddar"))

	similar, err := s.recipes.SimilarRecipes(ctx, curry.ID, 5)
	require.NoError(t, err)
	require.Len(t, similar, 2)
	assert.Equal(t, "Spinach Curry", similar[0].Name)
}

func TestUploadImage(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	recipe := testhelpers.CreateRecipe(t, s.db, nil)

	_, err := s.recipes.UploadImage(ctx, recipe.ID, "dish.png", "image/png", bytes.NewReader([]byte("png")))
	assert.ErrorIs(t, err, service.ErrUnavailable)

	store := new(mocks.MockImageStore)
	store.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "recipes/"+recipe.ID.String()+"/")
	}), "image/png", mock.Anything).Return("https://cdn.example.com/dish.png", nil)
	withImages := service.NewRecipeService(s.db, store, zap.NewNop())

	updated, err := withImages.UploadImage(ctx, recipe.ID, "dish.png", "image/png", bytes.NewReader([]byte("png")))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/dish.png", updated.ImageURL)

	_, err = withImages.UploadImage(ctx, recipe.ID, "dish.exe", "application/octet-stream", bytes.NewReader(nil))
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	store.AssertExpectations(t)
}
