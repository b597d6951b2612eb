package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/internal/embedding"
	"github.com/pageza/mealwise/backend/internal/grocery"
)

// Meal types
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
)

// Ingredient is one structured line of a recipe.
type Ingredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Category string  `json:"category,omitempty"`
}

// UnmarshalJSON accepts either the object form or a free-text line such as "1 1/2 cups flour".
func (i *Ingredient) UnmarshalJSON(data []byte) error {
	var line string
	if err := json.Unmarshal(data, &line); err == nil {
		parsed := grocery.ParseLine(line)
		*i = Ingredient{Name: parsed.Name, Quantity: parsed.Quantity, Unit: parsed.Unit}
		return nil
	}

	type plain Ingredient
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("invalid ingredient: %w", err)
	}
	*i = Ingredient(obj)
	i.Name = strings.TrimSpace(i.Name)
	return nil
}

// Recipe is a catalog entry. A nil FamilyID means the recipe is shared by every family.
type Recipe struct {
	Base
	FamilyID     *uuid.UUID            `gorm:"type:varchar(36);index" json:"family_id,omitempty"`
	Name         string                `gorm:"size:255;not null" json:"name"`
	Description  string                `gorm:"type:text" json:"description"`
	Chef         string                `gorm:"size:255;index" json:"chef"`
	Cuisine      string                `gorm:"size:100" json:"cuisine"`
	MealType     string                `gorm:"size:20;not null;default:'dinner';check:meal_type IN ('breakfast','lunch','dinner')" json:"meal_type"`
	PrepMinutes  int                   `json:"prep_minutes"`
	CookMinutes  int                   `json:"cook_minutes"`
	Servings     int                   `gorm:"not null;default:4" json:"servings"`
	Difficulty   string                `gorm:"size:20" json:"difficulty"`
	Ingredients  JSONArray[Ingredient] `gorm:"type:text;not null;default:'[]'" json:"ingredients"`
	Instructions StringArray           `gorm:"type:text;not null;default:'[]'" json:"instructions"`
	Tags         StringArray           `gorm:"type:text;not null;default:'[]'" json:"tags"`
	Allergens    StringArray           `gorm:"type:text;not null;default:'[]'" json:"allergens"`
	SeasonalTags StringArray           `gorm:"type:text;not null;default:'[]'" json:"seasonal_tags"`
	ImageURL     string                `gorm:"size:512" json:"image_url"`
	SourceURL    string                `gorm:"size:512" json:"source_url"`
	Embedding    pgvector.Vector       `gorm:"type:vector(64)" json:"-"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// TotalMinutes is prep plus cook time.
func (r Recipe) TotalMinutes() int {
	return r.PrepMinutes + r.CookMinutes
}

// EmbeddingText is the text the recipe embedding is derived from.
func (r Recipe) EmbeddingText() string {
	parts := []string{r.Name, r.Description, r.Cuisine, r.Chef}
	parts = append(parts, r.Tags...)
	for _, ing := range r.Ingredients {
		parts = append(parts, ing.Name)
	}
	return strings.Join(parts, " ")
}

// BeforeSave keeps the embedding in sync with the recipe content.
func (r *Recipe) BeforeSave(tx *gorm.DB) error {
	r.Embedding = pgvector.NewVector(embedding.Embed(r.EmbeddingText()))
	return nil
}
