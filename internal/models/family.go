package models

import "github.com/google/uuid"

// Member roles
const (
	RoleAdult = "adult"
	RoleChild = "child"
)

// Family is the household that owns members, recipes and plans.
type Family struct {
	Base
	Name                string         `gorm:"size:255;not null" json:"name"`
	DefaultServings     int            `gorm:"not null;default:4" json:"default_servings"`
	MaxWeeknightMinutes int            `gorm:"not null;default:45" json:"max_weeknight_minutes"`
	CuisinePreferences  StringArray    `gorm:"type:text;not null;default:'[]'" json:"cuisine_preferences"`
	Notes               string         `gorm:"type:text" json:"notes"`
	Members             []FamilyMember `gorm:"foreignKey:FamilyID" json:"members,omitempty"`
}

func (Family) TableName() string {
	return "families"
}

// FamilyMember is a person eating from the family's plan.
type FamilyMember struct {
	Base
	FamilyID            uuid.UUID   `gorm:"type:varchar(36);not null;index" json:"family_id"`
	Name                string      `gorm:"size:255;not null" json:"name"`
	Role                string      `gorm:"size:20;not null;default:'adult';check:role IN ('adult','child')" json:"role"`
	Age                 *int        `json:"age,omitempty"`
	Allergens           StringArray `gorm:"type:text;not null;default:'[]'" json:"allergens"`
	DietaryRestrictions StringArray `gorm:"type:text;not null;default:'[]'" json:"dietary_restrictions"`
	Dislikes            StringArray `gorm:"type:text;not null;default:'[]'" json:"dislikes"`
}

func (FamilyMember) TableName() string {
	return "family_members"
}
