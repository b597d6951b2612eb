package models

import "github.com/google/uuid"

// Side categories
const (
	SideVegetable = "vegetable"
	SideStarch    = "starch"
	SideSalad     = "salad"
	SideBread     = "bread"
	SideOther     = "other"
)

// Side is an entry of the sides library. A nil FamilyID means it is shared.
type Side struct {
	Base
	FamilyID     *uuid.UUID            `gorm:"type:varchar(36);index" json:"family_id,omitempty"`
	Name         string                `gorm:"size:255;not null" json:"name"`
	Category     string                `gorm:"size:20;not null;default:'other';check:category IN ('vegetable','starch','salad','bread','other')" json:"category"`
	Cuisines     StringArray           `gorm:"type:text;not null;default:'[]'" json:"cuisines"`
	SeasonalTags StringArray           `gorm:"type:text;not null;default:'[]'" json:"seasonal_tags"`
	Allergens    StringArray           `gorm:"type:text;not null;default:'[]'" json:"allergens"`
	PrepMinutes  int                   `json:"prep_minutes"`
	Servings     int                   `gorm:"not null;default:4" json:"servings"`
	Ingredients  JSONArray[Ingredient] `gorm:"type:text;not null;default:'[]'" json:"ingredients"`
}

func (Side) TableName() string {
	return "sides_library"
}
