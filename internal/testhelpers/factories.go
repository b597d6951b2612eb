package testhelpers

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/internal/models"
)

// Faker is seeded so fixtures are reproducible across runs
var Faker = gofakeit.New(42)

// CreateFamily inserts a family. mutate may adjust it before insert.
func CreateFamily(t *testing.T, db *gorm.DB, mutate func(*models.Family)) *models.Family {
	t.Helper()
	family := &models.Family{
		Name:                Faker.LastName() + " Household",
		DefaultServings:     4,
		MaxWeeknightMinutes: 45,
		CuisinePreferences:  models.StringArray{},
	}
	if mutate != nil {
		mutate(family)
	}
	mustCreate(t, db, family)
	return family
}

// CreateMember inserts a member of familyID
func CreateMember(t *testing.T, db *gorm.DB, familyID uuid.UUID, mutate func(*models.FamilyMember)) *models.FamilyMember {
	t.Helper()
	member := &models.FamilyMember{
		FamilyID:            familyID,
		Name:                Faker.FirstName(),
		Role:                models.RoleAdult,
		Allergens:           models.StringArray{},
		DietaryRestrictions: models.StringArray{},
		Dislikes:            models.StringArray{},
	}
	if mutate != nil {
		mutate(member)
	}
	mustCreate(t, db, member)
	return member
}

// NewRecipe builds an unsaved shared dinner recipe with plausible content
func NewRecipe(mutate func(*models.Recipe)) *models.Recipe {
	recipe := &models.Recipe{
		Name:        Faker.Dinner(),
		Description: Faker.Sentence(10),
		Chef:        Faker.Name(),
		Cuisine:     Faker.RandomString([]string{"italian", "mexican", "indian", "american", "thai"}),
		MealType:    models.MealDinner,
		PrepMinutes: Faker.Number(5, 15),
		CookMinutes: Faker.Number(10, 25),
		Servings:    4,
		Difficulty:  "easy",
		Ingredients: models.JSONArray[models.Ingredient]{
			{Name: Faker.Vegetable(), Quantity: float64(Faker.Number(1, 3)), Unit: "cup"},
			{Name: "olive oil", Quantity: 2, Unit: "tbsp"},
		},
		Instructions: models.StringArray{Faker.Sentence(6), Faker.Sentence(6)},
		Tags:         models.StringArray{},
		Allergens:    models.StringArray{},
		SeasonalTags: models.StringArray{},
	}
	if mutate != nil {
		mutate(recipe)
	}
	return recipe
}

// CreateRecipe inserts a recipe built by NewRecipe
func CreateRecipe(t *testing.T, db *gorm.DB, mutate func(*models.Recipe)) *models.Recipe {
	t.Helper()
	recipe := NewRecipe(mutate)
	mustCreate(t, db, recipe)
	return recipe
}

// CreateSide inserts a shared vegetable side
func CreateSide(t *testing.T, db *gorm.DB, mutate func(*models.Side)) *models.Side {
	t.Helper()
	side := &models.Side{
		Name:         "Roasted " + Faker.Vegetable(),
		Category:     models.SideVegetable,
		Cuisines:     models.StringArray{},
		SeasonalTags: models.StringArray{},
		Allergens:    models.StringArray{},
		PrepMinutes:  15,
		Servings:     4,
		Ingredients:  models.JSONArray[models.Ingredient]{},
	}
	if mutate != nil {
		mutate(side)
	}
	mustCreate(t, db, side)
	return side
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("failed to create fixture %T: %v", value, err)
	}
}
