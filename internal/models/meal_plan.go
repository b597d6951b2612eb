package models

import "github.com/google/uuid"

// MealPlan is one family's generated week. Only one plan may exist per family and week.
type MealPlan struct {
	Base
	FamilyID  uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex:idx_meal_plans_family_week" json:"family_id"`
	WeekStart string         `gorm:"size:10;not null;uniqueIndex:idx_meal_plans_family_week" json:"week_start"`
	Notes     string         `gorm:"type:text" json:"notes"`
	Warnings  StringArray    `gorm:"type:text;not null;default:'[]'" json:"warnings"`
	Items     []MealPlanItem `gorm:"foreignKey:MealPlanID" json:"items"`
}

func (MealPlan) TableName() string {
	return "meal_plans"
}

// MealPlanItem assigns a recipe (or a custom note) to one meal of one day.
type MealPlanItem struct {
	Base
	MealPlanID uuid.UUID            `gorm:"type:varchar(36);not null;index" json:"meal_plan_id"`
	Day        int                  `gorm:"not null;check:day >= 0 AND day <= 6" json:"day"`
	MealType   string               `gorm:"size:20;not null;default:'dinner'" json:"meal_type"`
	RecipeID   *uuid.UUID           `gorm:"type:varchar(36);index" json:"recipe_id,omitempty"`
	RecipeName string               `gorm:"size:255" json:"recipe_name"`
	CustomMeal string               `gorm:"size:255" json:"custom_meal,omitempty"`
	Servings   int                  `gorm:"not null;default:1" json:"servings"`
	SideIDs    JSONArray[uuid.UUID] `gorm:"type:text;not null;default:'[]'" json:"side_ids"`
	SideNames  StringArray          `gorm:"type:text;not null;default:'[]'" json:"side_names"`
	MemberID   *uuid.UUID           `gorm:"type:varchar(36)" json:"member_id,omitempty"`
	Notes      string               `gorm:"type:text" json:"notes"`
	Recipe     *Recipe              `gorm:"foreignKey:RecipeID;constraint:OnDelete:SET NULL" json:"recipe,omitempty"`
}

func (MealPlanItem) TableName() string {
	return "meal_plan_items"
}
