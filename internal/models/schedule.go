package models

import "github.com/google/uuid"

// WeeklyCookingSchedule says whether, and for how long, the family cooks on one day of a week.
type WeeklyCookingSchedule struct {
	Base
	FamilyID       uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_cooking_schedule_family_week_day" json:"family_id"`
	WeekStart      string    `gorm:"size:10;not null;uniqueIndex:idx_cooking_schedule_family_week_day" json:"week_start"`
	Day            int       `gorm:"not null;uniqueIndex:idx_cooking_schedule_family_week_day;check:day >= 0 AND day <= 6" json:"day"`
	IsCooking      bool      `gorm:"not null" json:"is_cooking"`
	MaxCookMinutes int       `json:"max_cook_minutes"`
	MealType       string    `gorm:"size:20;not null;default:'dinner'" json:"meal_type"`
	Notes          string    `gorm:"type:text" json:"notes"`
}

func (WeeklyCookingSchedule) TableName() string {
	return "weekly_cooking_schedules"
}

// WeeklyLunchNeed records packed lunches needed on one day. A nil MemberID means the whole family.
type WeeklyLunchNeed struct {
	Base
	FamilyID   uuid.UUID  `gorm:"type:varchar(36);not null;index:idx_lunch_needs_family_week" json:"family_id"`
	WeekStart  string     `gorm:"size:10;not null;index:idx_lunch_needs_family_week" json:"week_start"`
	Day        int        `gorm:"not null;check:day >= 0 AND day <= 6" json:"day"`
	MemberID   *uuid.UUID `gorm:"type:varchar(36)" json:"member_id,omitempty"`
	MemberName string     `gorm:"size:255" json:"member_name"`
	Count      int        `gorm:"not null;default:1" json:"count"`
	Notes      string     `gorm:"type:text" json:"notes"`
}

func (WeeklyLunchNeed) TableName() string {
	return "weekly_lunch_needs"
}
