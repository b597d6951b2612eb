package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/internal/middleware"
	"github.com/pageza/mealwise/backend/internal/mocks"
	"github.com/pageza/mealwise/backend/internal/models"
	"github.com/pageza/mealwise/backend/internal/service"
	"github.com/pageza/mealwise/backend/internal/testhelpers"
	"github.com/pageza/mealwise/backend/internal/types"
)

const week = "2025-03-03"

func init() {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := types.RegisterValidators(v); err != nil {
			panic(err)
		}
	}
}

type testAPI struct {
	router *gin.Engine
	db     *gorm.DB
}

func setupAPI(t *testing.T, guards ...gin.HandlerFunc) *testAPI {
	t.Helper()
	db := testhelpers.NewSQLiteDB(t)
	logger := zap.NewNop()

	schedules := service.NewScheduleService(db)
	plans := service.NewMealPlanService(db, schedules, logger, 2)
	grocery := service.NewGroceryService(db, "test-secret", time.Hour, logger)
	setup := service.NewSmartSetupService(db, service.NewMemorySessionStore(), schedules, plans, logger)

	router := gin.New()
	group := router.Group("/api")
	NewFamilyHandler(service.NewFamilyService(db, logger)).RegisterRoutes(group)
	NewRecipeHandler(service.NewRecipeService(db, nil, logger)).RegisterRoutes(group)
	NewSideHandler(service.NewSideService(db)).RegisterRoutes(group)
	NewFavoriteHandler(service.NewFavoriteService(db)).RegisterRoutes(group)
	NewScheduleHandler(schedules).RegisterRoutes(group)
	NewMealPlanHandler(plans, grocery, guards...).RegisterRoutes(group)
	NewGroceryHandler(grocery).RegisterRoutes(group)
	NewSmartSetupHandler(setup).RegisterRoutes(group)
	return &testAPI{router: router, db: db}
}

func (a *testAPI) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return serve(t, a.router, method, path, body)
}

func serve(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func weekOf(cooking ...int) gin.H {
	on := map[int]bool{}
	for _, d := range cooking {
		on[d] = true
	}
	days := make([]gin.H, 7)
	for i := range days {
		days[i] = gin.H{"day": i, "is_cooking": on[i], "max_cook_minutes": 60}
	}
	return gin.H{"week_start": week, "days": days}
}

func TestFamilyLifecycle(t *testing.T) {
	a := setupAPI(t)

	w := a.do(t, http.MethodPost, "/api/families", gin.H{"name": "Okafor", "cuisine_preferences": []string{"nigerian", "italian"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var family models.Family
	decode(t, w, &family)
	assert.Equal(t, 4, family.DefaultServings)
	assert.Equal(t, 45, family.MaxWeeknightMinutes)

	w = a.do(t, http.MethodPut, "/api/families/"+family.ID.String(), gin.H{"max_weeknight_minutes": 30})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Family
	decode(t, w, &updated)
	assert.Equal(t, "Okafor", updated.Name)
	assert.Equal(t, 30, updated.MaxWeeknightMinutes)
	assert.Equal(t, []string{"nigerian", "italian"}, []string(updated.CuisinePreferences))

	w = a.do(t, http.MethodPost, "/api/families/"+family.ID.String()+"/members", gin.H{"name": "Ada", "role": "child", "allergens": []string{"peanut"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var member models.FamilyMember
	decode(t, w, &member)

	w = a.do(t, http.MethodDelete, "/api/members/"+member.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(t, http.MethodGet, "/api/families/"+family.ID.String()+"/members", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var members struct {
		Members []models.FamilyMember `json:"members"`
	}
	decode(t, w, &members)
	assert.Empty(t, members.Members)
}

func TestFamilyValidation(t *testing.T) {
	a := setupAPI(t)
	family := testhelpers.CreateFamily(t, a.db, nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
	}{
		{"missing name", http.MethodPost, "/api/families", gin.H{"default_servings": 2}, http.StatusBadRequest},
		{"malformed id", http.MethodGet, "/api/families/not-a-uuid", nil, http.StatusBadRequest},
		{"unknown family", http.MethodGet, "/api/families/" + uuid.NewString(), nil, http.StatusNotFound},
		{"bad role", http.MethodPost, "/api/families/" + family.ID.String() + "/members", gin.H{"name": "Bo", "role": "pet"}, http.StatusBadRequest},
		{"member of unknown family", http.MethodPost, "/api/families/" + uuid.NewString() + "/members", gin.H{"name": "Bo"}, http.StatusNotFound},
		{"week not a monday", http.MethodGet, "/api/families/" + family.ID.String() + "/cooking-schedule?week_start=2025-03-04", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			var resp map[string]interface{}
			decode(t, w, &resp)
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestGeneratePlanConflictAndOverwrite(t *testing.T) {
	a := setupAPI(t)
	family := testhelpers.CreateFamily(t, a.db, nil)
	for i := 0; i < 7; i++ {
		testhelpers.CreateRecipe(t, a.db, nil)
	}
	body := gin.H{"family_id": family.ID, "week_start": week}

	w := a.do(t, http.MethodPost, "/api/meal-plans/generate", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var plan models.MealPlan
	decode(t, w, &plan)
	assert.Len(t, plan.Items, 7)

	w = a.do(t, http.MethodPost, "/api/meal-plans/generate", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	body["overwrite"] = true
	w = a.do(t, http.MethodPost, "/api/meal-plans/generate", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(t, http.MethodGet, "/api/meal-plans?family_id="+family.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		MealPlans []models.MealPlan `json:"meal_plans"`
	}
	decode(t, w, &list)
	assert.Len(t, list.MealPlans, 1)
}

func TestGroceryListFromPlanAndShare(t *testing.T) {
	a := setupAPI(t)
	family := testhelpers.CreateFamily(t, a.db, nil)
	testhelpers.CreateRecipe(t, a.db, func(r *models.Recipe) {
		r.Ingredients = models.JSONArray[models.Ingredient]{{Name: "milk", Quantity: 1, Unit: "cup"}}
	})
	testhelpers.CreateRecipe(t, a.db, func(r *models.Recipe) {
		r.Ingredients = models.JSONArray[models.Ingredient]{{Name: "milk", Quantity: 8, Unit: "tbsp"}}
	})

	w := a.do(t, http.MethodPut, "/api/families/"+family.ID.String()+"/cooking-schedule", weekOf(0, 1))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(t, http.MethodPost, "/api/meal-plans/generate", gin.H{"family_id": family.ID, "week_start": week})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var plan models.MealPlan
	decode(t, w, &plan)

	w = a.do(t, http.MethodPost, "/api/meal-plans/"+plan.ID.String()+"/grocery-list", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var list models.GroceryList
	decode(t, w, &list)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "milk", list.Items[0].Name)
	assert.Equal(t, 1.5, list.Items[0].Quantity)
	assert.Equal(t, "cup", list.Items[0].Unit)

	w = a.do(t, http.MethodPatch, "/api/grocery-items/"+list.Items[0].ID.String(), gin.H{"checked": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(t, http.MethodPost, "/api/grocery-lists/"+list.ID.String()+"/share", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var link service.ShareLink
	decode(t, w, &link)
	require.NotEmpty(t, link.Token)

	w = a.do(t, http.MethodGet, "/api/shared/grocery-lists/"+link.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var shared models.GroceryList
	decode(t, w, &shared)
	assert.Equal(t, list.ID, shared.ID)
	assert.True(t, shared.Items[0].Checked)

	w = a.do(t, http.MethodGet, "/api/shared/grocery-lists/forged", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSmartSetupFlow(t *testing.T) {
	a := setupAPI(t)
	family := testhelpers.CreateFamily(t, a.db, nil)

	w := a.do(t, http.MethodPost, "/api/smart-setup/parse", gin.H{
		"family_id":  family.ID,
		"week_start": week,
		"text":       "Friday we're eating out",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var session service.SetupSession
	decode(t, w, &session)
	require.Len(t, session.Days, 7)
	assert.False(t, session.Days[4].IsCooking)

	w = a.do(t, http.MethodGet, "/api/smart-setup/"+session.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodPost, "/api/smart-setup/"+session.ID+"/confirm", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(t, http.MethodGet, "/api/families/"+family.ID.String()+"/cooking-schedule?week_start="+week, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var schedule struct {
		WeekStart string                         `json:"week_start"`
		Days      []models.WeeklyCookingSchedule `json:"days"`
	}
	decode(t, w, &schedule)
	require.Len(t, schedule.Days, 7)
	assert.False(t, schedule.Days[4].IsCooking)
	assert.True(t, schedule.Days[0].IsCooking)

	w = a.do(t, http.MethodGet, "/api/smart-setup/"+session.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFavoriteChefConflict(t *testing.T) {
	a := setupAPI(t)
	family := testhelpers.CreateFamily(t, a.db, nil)
	path := fmt.Sprintf("/api/families/%s/favorites/chefs", family.ID)

	w := a.do(t, http.MethodPost, path, gin.H{"name": "Maangchi"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = a.do(t, http.MethodPost, path, gin.H{"name": "Maangchi"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var chefs struct {
		Chefs []models.FavoriteChef `json:"chefs"`
	}
	decode(t, w, &chefs)
	assert.Len(t, chefs.Chefs, 1)
}

func TestFavoriteMealsAndSides(t *testing.T) {
	a := setupAPI(t)
	family := testhelpers.CreateFamily(t, a.db, nil)
	recipe := testhelpers.CreateRecipe(t, a.db, nil)
	side := testhelpers.CreateSide(t, a.db, nil)
	base := fmt.Sprintf("/api/families/%s/favorites", family.ID)

	t.Run("meals", func(t *testing.T) {
		w := a.do(t, http.MethodPost, base+"/meals", gin.H{"recipe_id": recipe.ID, "notes": "Friday treat"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var meal models.FavoriteMeal
		decode(t, w, &meal)
		require.NotNil(t, meal.Recipe)
		assert.Equal(t, recipe.Name, meal.Recipe.Name)

		w = a.do(t, http.MethodPost, base+"/meals", gin.H{"recipe_id": recipe.ID})
		assert.Equal(t, http.StatusConflict, w.Code)
		w = a.do(t, http.MethodPost, base+"/meals", gin.H{"recipe_id": uuid.New()})
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = a.do(t, http.MethodGet, base+"/meals", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var list struct {
			Meals []models.FavoriteMeal `json:"meals"`
		}
		decode(t, w, &list)
		assert.Len(t, list.Meals, 1)

		w = a.do(t, http.MethodDelete, "/api/favorites/meals/"+meal.ID.String(), nil)
		assert.Equal(t, http.StatusOK, w.Code)
		w = a.do(t, http.MethodDelete, "/api/favorites/meals/"+meal.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("sides", func(t *testing.T) {
		w := a.do(t, http.MethodPost, base+"/sides", gin.H{"side_id": side.ID})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var fav models.FavoriteSide
		decode(t, w, &fav)

		w = a.do(t, http.MethodPost, base+"/sides", gin.H{"side_id": side.ID})
		assert.Equal(t, http.StatusConflict, w.Code)
		w = a.do(t, http.MethodPost, base+"/sides", gin.H{"side_id": uuid.New()})
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = a.do(t, http.MethodGet, base+"/sides", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var list struct {
			Sides []models.FavoriteSide `json:"sides"`
		}
		decode(t, w, &list)
		require.Len(t, list.Sides, 1)
		assert.Equal(t, side.ID, list.Sides[0].SideID)

		w = a.do(t, http.MethodDelete, "/api/favorites/sides/"+fav.ID.String(), nil)
		assert.Equal(t, http.StatusOK, w.Code)
		w = a.do(t, http.MethodGet, base+"/sides", nil)
		decode(t, w, &list)
		assert.Empty(t, list.Sides)
	})
}

func TestGenerateIsRateLimited(t *testing.T) {
	limiter := middleware.NewRateLimiter(nil, middleware.RateLimitConfig{
		Scope:  middleware.ScopeMealPlans,
		Window: time.Hour,
		Limit:  1,
	}, zap.NewNop())
	a := setupAPI(t, limiter.Middleware())
	family := testhelpers.CreateFamily(t, a.db, nil)
	body := gin.H{"family_id": family.ID, "week_start": week, "overwrite": true}

	w := a.do(t, http.MethodPost, "/api/meal-plans/generate", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(t, http.MethodPost, "/api/meal-plans/generate", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRecipeErrorsMapToStatus(t *testing.T) {
	recipes := new(mocks.MockRecipeService)
	router := gin.New()
	NewRecipeHandler(recipes).RegisterRoutes(router.Group("/api"))

	missing := uuid.New()
	recipes.On("GetRecipe", mock.Anything, missing).Return(nil, fmt.Errorf("recipe: %w", service.ErrNotFound))
	w := serve(t, router, http.MethodGet, "/api/recipes/"+missing.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "dish.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	id := uuid.New()
	recipes.On("UploadImage", mock.Anything, id, "dish.png", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("image storage: %w", service.ErrUnavailable))
	req := httptest.NewRequest(http.MethodPost, "/api/recipes/"+id.String()+"/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/recipes/"+id.String()+"/image", bytes.NewReader(nil))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	recipes.AssertExpectations(t)
}

func TestSharedListRejectsInvalidToken(t *testing.T) {
	grocery := new(mocks.MockGroceryService)
	router := gin.New()
	NewGroceryHandler(grocery).RegisterRoutes(router.Group("/api"))

	grocery.On("GetShared", mock.Anything, "expired").Return(nil, service.ErrInvalidShareToken)
	w := serve(t, router, http.MethodGet, "/api/shared/grocery-lists/expired", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp map[string]string
	decode(t, w, &resp)
	assert.Equal(t, service.ErrInvalidShareToken.Error(), resp["error"])
	grocery.AssertExpectations(t)
}

func TestCreateRecipeWithNonNumericAmount(t *testing.T) {
	a := setupAPI(t)

	w := a.do(t, http.MethodPost, "/api/recipes", gin.H{
		"name":        "Flatbread",
		"ingredients": []string{"nan/2 cups flour", "inf/1 egg", "1 1/2 cups water"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var recipe models.Recipe
	decode(t, w, &recipe)
	require.Len(t, recipe.Ingredients, 3)
	assert.Equal(t, "nan/2 cups flour", recipe.Ingredients[0].Name)
	assert.Zero(t, recipe.Ingredients[0].Quantity)
	assert.Zero(t, recipe.Ingredients[1].Quantity)
	assert.InDelta(t, 1.5, recipe.Ingredients[2].Quantity, 1e-9)
}

func TestRecipeAndSideCatalog(t *testing.T) {
	a := setupAPI(t)

	w := a.do(t, http.MethodPost, "/api/recipes", gin.H{
		"name":         "Miso Salmon",
		"cuisine":      "japanese",
		"prep_minutes": 10,
		"cook_minutes": 12,
		"allergens":    []string{"fish", "soy"},
		"ingredients":  []gin.H{{"name": "salmon fillet", "quantity": 4}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var recipe models.Recipe
	decode(t, w, &recipe)
	assert.Equal(t, models.MealDinner, recipe.MealType)

	w = a.do(t, http.MethodPost, "/api/recipes", gin.H{"name": "Toast", "meal_type": "brunch"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(t, http.MethodPut, "/api/recipes/"+recipe.ID.String(), gin.H{"cook_minutes": 20})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &recipe)
	assert.Equal(t, "Miso Salmon", recipe.Name)
	assert.Equal(t, 30, recipe.TotalMinutes())

	var found struct {
		Recipes []models.Recipe `json:"recipes"`
	}
	w = a.do(t, http.MethodGet, "/api/recipes?max_minutes=30&cuisine=Japanese", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &found)
	assert.Len(t, found.Recipes, 1)

	w = a.do(t, http.MethodGet, "/api/recipes?exclude_allergens=soy", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &found)
	assert.Empty(t, found.Recipes)

	w = a.do(t, http.MethodPost, "/api/sides", gin.H{"name": "Sesame Greens", "category": "vegetable", "cuisines": []string{"japanese"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var side models.Side
	decode(t, w, &side)

	w = a.do(t, http.MethodPost, "/api/sides", gin.H{"name": "Mystery", "category": "dessert"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var sides struct {
		Sides []models.Side `json:"sides"`
	}
	w = a.do(t, http.MethodGet, "/api/sides?category=vegetable", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &sides)
	require.Len(t, sides.Sides, 1)
	assert.Equal(t, side.ID, sides.Sides[0].ID)

	w = a.do(t, http.MethodDelete, "/api/sides/"+side.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = a.do(t, http.MethodDelete, "/api/recipes/"+recipe.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = a.do(t, http.MethodGet, "/api/recipes/"+recipe.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
