package types

import (
	"github.com/google/uuid"

	"github.com/pageza/mealwise/backend/internal/models"
)

// CreateFamilyRequest is the body of POST /families
type CreateFamilyRequest struct {
	Name                string   `json:"name" binding:"required,max=255"`
	DefaultServings     int      `json:"default_servings" binding:"omitempty,min=1,max=50"`
	MaxWeeknightMinutes int      `json:"max_weeknight_minutes" binding:"omitempty,min=1,max=600"`
	CuisinePreferences  []string `json:"cuisine_preferences"`
	Notes               string   `json:"notes"`
}

// UpdateFamilyRequest only changes the fields that are present
type UpdateFamilyRequest struct {
	Name                *string   `json:"name" binding:"omitempty,min=1,max=255"`
	DefaultServings     *int      `json:"default_servings" binding:"omitempty,min=1,max=50"`
	MaxWeeknightMinutes *int      `json:"max_weeknight_minutes" binding:"omitempty,min=1,max=600"`
	CuisinePreferences  *[]string `json:"cuisine_preferences"`
	Notes               *string   `json:"notes"`
}

// CreateMemberRequest is the body of POST /families/:id/members
type CreateMemberRequest struct {
	Name                string   `json:"name" binding:"required,max=255"`
	Role                string   `json:"role" binding:"omitempty,oneof=adult child"`
	Age                 *int     `json:"age" binding:"omitempty,min=0,max=130"`
	Allergens           []string `json:"allergens"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	Dislikes            []string `json:"dislikes"`
}

// UpdateMemberRequest only changes the fields that are present
type UpdateMemberRequest struct {
	Name                *string   `json:"name" binding:"omitempty,min=1,max=255"`
	Role                *string   `json:"role" binding:"omitempty,oneof=adult child"`
	Age                 *int      `json:"age" binding:"omitempty,min=0,max=130"`
	Allergens           *[]string `json:"allergens"`
	DietaryRestrictions *[]string `json:"dietary_restrictions"`
	Dislikes            *[]string `json:"dislikes"`
}

// RecipeRequest is the body of POST /recipes and PUT /recipes/:id. On update, absent fields keep
// their stored value.
type RecipeRequest struct {
	FamilyID     *uuid.UUID           `json:"family_id"`
	Name         *string              `json:"name" binding:"omitempty,min=1,max=255"`
	Description  *string              `json:"description"`
	Chef         *string              `json:"chef"`
	Cuisine      *string              `json:"cuisine"`
	MealType     *string              `json:"meal_type" binding:"omitempty,mealtype"`
	PrepMinutes  *int                 `json:"prep_minutes" binding:"omitempty,min=0"`
	CookMinutes  *int                 `json:"cook_minutes" binding:"omitempty,min=0"`
	Servings     *int                 `json:"servings" binding:"omitempty,min=1"`
	Difficulty   *string              `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Ingredients  *[]models.Ingredient `json:"ingredients"`
	Instructions *[]string            `json:"instructions"`
	Tags         *[]string            `json:"tags"`
	Allergens    *[]string            `json:"allergens"`
	SeasonalTags *[]string            `json:"seasonal_tags"`
	ImageURL     *string              `json:"image_url"`
	SourceURL    *string              `json:"source_url"`
}

// RecipeFilter holds the query parameters of GET /recipes
type RecipeFilter struct {
	Query            string `form:"q"`
	Cuisine          string `form:"cuisine"`
	MealType         string `form:"meal_type" binding:"omitempty,mealtype"`
	Tag              string `form:"tag"`
	Chef             string `form:"chef"`
	MaxMinutes       int    `form:"max_minutes" binding:"omitempty,min=1"`
	FamilyID         string `form:"family_id" binding:"omitempty,uuid"`
	ExcludeAllergens string `form:"exclude_allergens"`
	Limit            int    `form:"limit" binding:"omitempty,min=1,max=500"`
}

// SideRequest is the body of POST /sides and PUT /sides/:id
type SideRequest struct {
	FamilyID     *uuid.UUID           `json:"family_id"`
	Name         *string              `json:"name" binding:"omitempty,min=1,max=255"`
	Category     *string              `json:"category" binding:"omitempty,oneof=vegetable starch salad bread other"`
	Cuisines     *[]string            `json:"cuisines"`
	SeasonalTags *[]string            `json:"seasonal_tags"`
	Allergens    *[]string            `json:"allergens"`
	PrepMinutes  *int                 `json:"prep_minutes" binding:"omitempty,min=0"`
	Servings     *int                 `json:"servings" binding:"omitempty,min=1"`
	Ingredients  *[]models.Ingredient `json:"ingredients"`
}

// SideFilter holds the query parameters of GET /sides
type SideFilter struct {
	Category string `form:"category" binding:"omitempty,oneof=vegetable starch salad bread other"`
	Cuisine  string `form:"cuisine"`
	FamilyID string `form:"family_id" binding:"omitempty,uuid"`
}

// FavoriteChefRequest is the body of POST /families/:id/favorites/chefs
type FavoriteChefRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// FavoriteMealRequest is the body of POST /families/:id/favorites/meals
type FavoriteMealRequest struct {
	RecipeID uuid.UUID `json:"recipe_id" binding:"required"`
	Notes    string    `json:"notes"`
}

// FavoriteSideRequest is the body of POST /families/:id/favorites/sides
type FavoriteSideRequest struct {
	SideID uuid.UUID `json:"side_id" binding:"required"`
}

// ScheduleDay is one day of a cooking schedule update
type ScheduleDay struct {
	Day            *int   `json:"day" binding:"required,weekday"`
	IsCooking      *bool  `json:"is_cooking"`
	MaxCookMinutes int    `json:"max_cook_minutes" binding:"omitempty,min=0,max=600"`
	MealType       string `json:"meal_type" binding:"omitempty,mealtype"`
	Notes          string `json:"notes"`
}

// ScheduleRequest replaces a week's cooking schedule
type ScheduleRequest struct {
	WeekStart string        `json:"week_start" binding:"required,weekstart"`
	Days      []ScheduleDay `json:"days" binding:"required,max=7,dive"`
}

// LunchNeedInput is one lunch need of a lunch-needs update
type LunchNeedInput struct {
	Day        *int       `json:"day" binding:"required,weekday"`
	MemberID   *uuid.UUID `json:"member_id"`
	MemberName string     `json:"member_name"`
	Count      int        `json:"count" binding:"omitempty,min=1,max=50"`
	Notes      string     `json:"notes"`
}

// LunchNeedsRequest replaces a week's lunch needs
type LunchNeedsRequest struct {
	WeekStart  string           `json:"week_start" binding:"required,weekstart"`
	LunchNeeds []LunchNeedInput `json:"lunch_needs" binding:"dive"`
}

// PlanFilter holds the query parameters of GET /meal-plans
type PlanFilter struct {
	FamilyID  string `form:"family_id" binding:"omitempty,uuid"`
	WeekStart string `form:"week_start" binding:"omitempty,weekstart"`
}

// WeekQuery is the week_start query parameter shared by the schedule endpoints
type WeekQuery struct {
	WeekStart string `form:"week_start" binding:"required,weekstart"`
}

// GeneratePlanRequest is the body of POST /meal-plans/generate
type GeneratePlanRequest struct {
	FamilyID  uuid.UUID `json:"family_id" binding:"required"`
	WeekStart string    `json:"week_start" binding:"required,weekstart"`
	Overwrite bool      `json:"overwrite"`
	Notes     string    `json:"notes"`
}

// UpdatePlanItemRequest swaps a plan item by hand
type UpdatePlanItemRequest struct {
	RecipeID   *uuid.UUID   `json:"recipe_id"`
	CustomMeal *string      `json:"custom_meal"`
	SideIDs    *[]uuid.UUID `json:"side_ids"`
	Servings   *int         `json:"servings" binding:"omitempty,min=1,max=50"`
	Notes      *string      `json:"notes"`
}

// GroceryItemRequest adds a manual item to a grocery list
type GroceryItemRequest struct {
	Name     string  `json:"name" binding:"required,max=255"`
	Quantity float64 `json:"quantity" binding:"omitempty,min=0"`
	Unit     string  `json:"unit"`
	Category string  `json:"category"`
}

// UpdateGroceryItemRequest patches a grocery item
type UpdateGroceryItemRequest struct {
	Checked  *bool    `json:"checked"`
	Quantity *float64 `json:"quantity" binding:"omitempty,min=0"`
	Name     *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Unit     *string  `json:"unit"`
	Category *string  `json:"category"`
}

// SmartSetupRequest is the body of POST /smart-setup/parse
type SmartSetupRequest struct {
	FamilyID  uuid.UUID `json:"family_id" binding:"required"`
	WeekStart string    `json:"week_start" binding:"required,weekstart"`
	Text      string    `json:"text" binding:"required,max=5000"`
}

// ConversationMessage is one turn of a planning conversation
type ConversationMessage struct {
	Role    string `json:"role" binding:"required,oneof=user assistant system"`
	Content string `json:"content" binding:"max=5000"`
}

// ConversationPlanRequest is the body of POST /plan/generate-from-conversation
type ConversationPlanRequest struct {
	FamilyID  uuid.UUID             `json:"family_id" binding:"required"`
	WeekStart string                `json:"week_start" binding:"required,weekstart"`
	Messages  []ConversationMessage `json:"messages" binding:"required,min=1,dive"`
	Overwrite bool                  `json:"overwrite"`
}
