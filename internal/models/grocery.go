package models

import "github.com/google/uuid"

// GroceryList is the shopping list derived from a meal plan, plus any manual additions.
type GroceryList struct {
	Base
	FamilyID   uuid.UUID     `gorm:"type:varchar(36);not null;index" json:"family_id"`
	MealPlanID *uuid.UUID    `gorm:"type:varchar(36);index" json:"meal_plan_id,omitempty"`
	Name       string        `gorm:"size:255;not null" json:"name"`
	WeekStart  string        `gorm:"size:10" json:"week_start"`
	Items      []GroceryItem `gorm:"foreignKey:GroceryListID" json:"items"`
}

func (GroceryList) TableName() string {
	return "grocery_lists"
}

type GroceryItem struct {
	Base
	GroceryListID uuid.UUID   `gorm:"type:varchar(36);not null;index" json:"grocery_list_id"`
	Name          string      `gorm:"size:255;not null" json:"name"`
	Quantity      float64     `json:"quantity"`
	Unit          string      `gorm:"size:20" json:"unit"`
	Category      string      `gorm:"size:50" json:"category"`
	Checked       bool        `gorm:"not null;default:false" json:"checked"`
	Manual        bool        `gorm:"not null;default:false" json:"manual"`
	Sources       StringArray `gorm:"type:text;not null;default:'[]'" json:"sources"`
}

func (GroceryItem) TableName() string {
	return "grocery_items"
}
