package planner

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealwise/backend/internal/models"
)

var monday = time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

func recipe(name, cuisine string, minutes int, ingredients ...string) models.Recipe {
	r := models.Recipe{
		Name:        name,
		Cuisine:     cuisine,
		MealType:    models.MealDinner,
		PrepMinutes: minutes / 2,
		CookMinutes: minutes - minutes/2,
		Servings:    4,
	}
	r.ID = uuid.New()
	for _, ing := range ingredients {
		r.Ingredients = append(r.Ingredients, models.Ingredient{Name: ing, Quantity: 1})
	}
	return r
}

func side(name, category string) models.Side {
	s := models.Side{Name: name, Category: category, PrepMinutes: 10}
	s.ID = uuid.New()
	return s
}

func onlyDays(cooking ...int) []Day {
	days := make([]Day, 7)
	for i := range days {
		days[i] = Day{Day: i}
	}
	for _, d := range cooking {
		days[d].IsCooking = true
	}
	return days
}

func catalog() []models.Recipe {
	return []models.Recipe{
		recipe("Chicken Tikka", "indian", 40, "chicken", "yogurt"),
		recipe("Peanut Noodles", "thai", 20, "noodles", "peanut butter"),
		recipe("Beef Stew", "french", 180, "beef", "carrot"),
		recipe("Tacos", "mexican", 25, "tortilla", "beef"),
		recipe("Pasta Primavera", "italian", 30, "pasta", "zucchini"),
		recipe("Fish Curry", "indian", 35, "cod", "coconut milk"),
		recipe("Veggie Stir Fry", "chinese", 20, "broccoli", "rice"),
		recipe("Shakshuka", "middle eastern", 30, "egg", "tomato"),
		recipe("Risotto", "italian", 45, "rice", "parmesan"),
	}
}

func baseInput() Input {
	return Input{
		FamilyID:        uuid.MustParse("7f9c24e5-2a4b-4a3d-9c51-0d2b6f1e8a10"),
		WeekStart:       monday,
		DefaultServings: 4,
		Days:            onlyDays(0, 1, 2, 3, 4, 5, 6),
		Recipes:         catalog(),
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	in := baseInput()
	a := Generate(in)
	b := Generate(in)
	assert.Equal(t, a, b)
	assert.Len(t, a.Items, 7)
}

func TestGenerateNeverRepeats(t *testing.T) {
	in := baseInput()
	in.Recipes = in.Recipes[:3]
	res := Generate(in)

	seen := map[uuid.UUID]bool{}
	matched := 0
	for _, it := range res.Items {
		if it.RecipeID == nil {
			assert.Equal(t, NoMatch, it.CustomMeal)
			continue
		}
		assert.False(t, seen[*it.RecipeID], "recipe %s repeated", it.RecipeName)
		seen[*it.RecipeID] = true
		matched++
	}
	assert.Equal(t, 3, matched)
	assert.Len(t, res.Warnings, 4)
}

func TestGenerateExcludesAllergens(t *testing.T) {
	in := baseInput()
	in.Members = []models.FamilyMember{{Name: "Sam", Allergens: models.StringArray{"Peanut"}}}
	res := Generate(in)
	for _, it := range res.Items {
		assert.NotEqual(t, "Peanut Noodles", it.RecipeName)
	}
}

func TestGenerateRespectsTimeLimit(t *testing.T) {
	in := baseInput()
	for i := range in.Days {
		in.Days[i].MaxMinutes = 30
	}
	res := Generate(in)

	byID := map[uuid.UUID]models.Recipe{}
	for _, r := range in.Recipes {
		byID[r.ID] = r
	}
	for _, it := range res.Items {
		if it.RecipeID != nil {
			assert.LessOrEqual(t, byID[*it.RecipeID].TotalMinutes(), 30, it.RecipeName)
		}
	}
}

func TestGenerateNonCookingDays(t *testing.T) {
	in := baseInput()
	in.Days = onlyDays(0)
	in.Days[4].Note = "Eating out"
	res := Generate(in)

	require.Len(t, res.Items, 7)
	assert.NotNil(t, res.Items[0].RecipeID)
	assert.Equal(t, "Eating out", res.Items[4].CustomMeal)
	assert.Equal(t, NoCooking, res.Items[5].CustomMeal)
	assert.Empty(t, res.Warnings)
}

func TestGeneratePrefersFavorites(t *testing.T) {
	in := baseInput()
	in.Days = onlyDays(2)
	in.FavoriteMealIDs = []uuid.UUID{in.Recipes[4].ID}
	res := Generate(in)
	assert.Equal(t, "Pasta Primavera", res.Items[2].RecipeName)
}

func TestGenerateServings(t *testing.T) {
	in := baseInput()
	in.Days = onlyDays(0)
	in.DefaultServings = 2
	in.Members = []models.FamilyMember{{Name: "A"}, {Name: "B"}, {Name: "C"}}
	res := Generate(in)
	assert.Equal(t, 3, res.Items[0].Servings)

	in.DefaultServings = 6
	res = Generate(in)
	assert.Equal(t, 6, res.Items[0].Servings)
}

func TestGenerateSides(t *testing.T) {
	in := baseInput()
	in.Days = onlyDays(0, 1)
	in.Recipes = []models.Recipe{recipe("Roast Chicken", "", 60, "chicken"), recipe("Chili", "", 50, "beans")}
	in.Recipes[1].Tags = models.StringArray{"one-pot"}
	in.Sides = []models.Side{
		side("Green Beans", models.SideVegetable),
		side("Broccoli", models.SideVegetable),
		side("Mashed Potatoes", models.SideStarch),
	}
	res := Generate(in)

	for _, it := range res.Items[:2] {
		switch it.RecipeName {
		case "Roast Chicken":
			require.Len(t, it.SideIDs, 2)
			cats := map[uuid.UUID]string{}
			for _, s := range in.Sides {
				cats[s.ID] = s.Category
			}
			assert.NotEqual(t, cats[it.SideIDs[0]], cats[it.SideIDs[1]])
		case "Chili":
			assert.Len(t, it.SideIDs, 1)
		}
		assert.Len(t, it.SideNames, len(it.SideIDs))
	}
}

func TestGenerateLunchNeeds(t *testing.T) {
	in := baseInput()
	in.Days = onlyDays()
	kid := models.FamilyMember{Name: "Mia", Role: models.RoleChild, Allergens: models.StringArray{"egg"}}
	kid.ID = uuid.New()
	in.Members = []models.FamilyMember{kid, {Name: "Dad"}}

	eggSalad := recipe("Egg Salad Sandwich", "", 10, "egg", "bread")
	eggSalad.MealType = models.MealLunch
	wrap := recipe("Hummus Wrap", "", 10, "hummus", "tortilla")
	wrap.MealType = models.MealLunch
	in.Recipes = append(in.Recipes, eggSalad, wrap)
	in.LunchNeeds = []LunchNeed{{Day: 1, MemberID: &kid.ID, MemberName: "Mia", Count: 2}}

	res := Generate(in)
	var lunch *models.MealPlanItem
	for i := range res.Items {
		if res.Items[i].MealType == models.MealLunch {
			lunch = &res.Items[i]
		}
	}
	require.NotNil(t, lunch)
	assert.Equal(t, 1, lunch.Day)
	assert.Equal(t, 2, lunch.Servings)
	assert.Equal(t, "Hummus Wrap", lunch.RecipeName)
	assert.Equal(t, kid.ID, *lunch.MemberID)
}

func TestGenerateLunchForGroup(t *testing.T) {
	in := baseInput()
	in.Days = onlyDays()
	in.Members = []models.FamilyMember{
		{Name: "Sam", Role: models.RoleAdult, DietaryRestrictions: models.StringArray{"vegetarian"}},
		{Name: "Leo", Role: models.RoleChild},
	}
	ham := recipe("Ham Sandwich", "", 10, "ham", "bread")
	ham.MealType = models.MealLunch
	in.Recipes = append(in.Recipes, ham)

	for _, tc := range []struct {
		audience string
		want     string
	}{
		{LunchGroupKids, "Ham Sandwich"},
		{LunchGroupAdults, NoMatch},
		{"", NoMatch},
	} {
		t.Run("audience="+tc.audience, func(t *testing.T) {
			in.LunchNeeds = []LunchNeed{{Day: 0, MemberName: tc.audience, Count: 1}}
			res := Generate(in)
			require.Len(t, res.Items, 8)
			lunch := res.Items[0]
			require.Equal(t, models.MealLunch, lunch.MealType)
			if tc.want == NoMatch {
				assert.Equal(t, NoMatch, lunch.CustomMeal)
				assert.Nil(t, lunch.RecipeID)
				return
			}
			assert.Equal(t, tc.want, lunch.RecipeName)
			assert.Empty(t, res.Warnings)
		})
	}
}

func TestSatisfiesDiet(t *testing.T) {
	r := recipe("Lentil Soup", "", 30, "lentils", "carrot")
	r.Tags = models.StringArray{"vegetarian"}
	assert.True(t, SatisfiesDiet(r, []string{"Vegetarian"}))
	assert.True(t, SatisfiesDiet(r, []string{"gluten-free"}))
	assert.False(t, SatisfiesDiet(r, []string{"vegan"}))

	r.Allergens = models.StringArray{"gluten"}
	assert.False(t, SatisfiesDiet(r, []string{"gluten-free"}))
}

func TestSeason(t *testing.T) {
	assert.Equal(t, "winter", Season(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "spring", Season(monday))
	assert.Equal(t, "summer", Season(time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "autumn", Season(time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC)))
}

func TestJitterRange(t *testing.T) {
	id := uuid.New()
	for i := 0; i < 50; i++ {
		v := jitter(uint64(i), "slot", id)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 0.5)
	}
}
