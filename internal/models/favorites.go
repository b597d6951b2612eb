package models

import "github.com/google/uuid"

type FavoriteChef struct {
	Base
	FamilyID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorite_chefs_family_name" json:"family_id"`
	Name     string    `gorm:"size:255;not null;uniqueIndex:idx_favorite_chefs_family_name" json:"name"`
}

func (FavoriteChef) TableName() string {
	return "favorite_chefs"
}

type FavoriteMeal struct {
	Base
	FamilyID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorite_meals_family_recipe" json:"family_id"`
	RecipeID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorite_meals_family_recipe" json:"recipe_id"`
	Notes    string    `gorm:"type:text" json:"notes"`
	Recipe   *Recipe   `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"recipe,omitempty"`
}

func (FavoriteMeal) TableName() string {
	return "favorite_meals"
}

type FavoriteSide struct {
	Base
	FamilyID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorite_sides_family_side" json:"family_id"`
	SideID   uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorite_sides_family_side" json:"side_id"`
	Side     *Side     `gorm:"foreignKey:SideID;constraint:OnDelete:CASCADE" json:"side,omitempty"`
}

func (FavoriteSide) TableName() string {
	return "favorite_sides"
}
