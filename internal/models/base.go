package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the primary key and timestamps shared by every table.
type Base struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns an id when the caller did not supply one.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// All returns every model in migration order.
func All() []interface{} {
	return []interface{}{
		&Family{},
		&FamilyMember{},
		&Recipe{},
		&Side{},
		&MealPlan{},
		&MealPlanItem{},
		&GroceryList{},
		&GroceryItem{},
		&FavoriteChef{},
		&FavoriteMeal{},
		&FavoriteSide{},
		&WeeklyCookingSchedule{},
		&WeeklyLunchNeed{},
	}
}
