package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/internal/models"
	"github.com/pageza/mealwise/backend/internal/types"
)

// ScheduleService manages weekly cooking schedules and lunch needs
type ScheduleService struct {
	db *gorm.DB
}

// NewScheduleService creates a new ScheduleService instance
func NewScheduleService(db *gorm.DB) *ScheduleService {
	return &ScheduleService{db: db}
}

// DefaultSchedule is the week used when nothing was stored: cooking every day, the family's
// weeknight limit Monday to Friday and twice that at the weekend.
func DefaultSchedule(family *models.Family, weekStart string) []models.WeeklyCookingSchedule {
	limit := family.MaxWeeknightMinutes
	if limit <= 0 {
		limit = defaultWeeknightLimit
	}
	days := make([]models.WeeklyCookingSchedule, 7)
	for i := range days {
		max := limit
		if i >= 5 {
			max = limit * 2
		}
		days[i] = models.WeeklyCookingSchedule{
			FamilyID:       family.ID,
			WeekStart:      weekStart,
			Day:            i,
			IsCooking:      true,
			MaxCookMinutes: max,
			MealType:       models.MealDinner,
		}
	}
	return days
}

// GetSchedule returns all seven days of a week, stored rows overriding the defaults
func (s *ScheduleService) GetSchedule(ctx context.Context, familyID uuid.UUID, weekStart string) ([]models.WeeklyCookingSchedule, error) {
	return s.schedule(ctx, s.db.WithContext(ctx), familyID, weekStart)
}

func (s *ScheduleService) schedule(ctx context.Context, db *gorm.DB, familyID uuid.UUID, weekStart string) ([]models.WeeklyCookingSchedule, error) {
	var family models.Family
	if err := db.First(&family, "id = ?", familyID).Error; err != nil {
		return nil, translate(err, "family")
	}
	days := DefaultSchedule(&family, weekStart)

	var stored []models.WeeklyCookingSchedule
	if err := db.Where("family_id = ? AND week_start = ?", familyID, weekStart).Find(&stored).Error; err != nil {
		return nil, translate(err, "cooking schedule")
	}
	for _, row := range stored {
		if row.Day >= 0 && row.Day <= 6 {
			days[row.Day] = row
		}
	}
	return days, nil
}

// ReplaceSchedule overwrites every stored day of the week with the request's days
func (s *ScheduleService) ReplaceSchedule(ctx context.Context, familyID uuid.UUID, req *types.ScheduleRequest) ([]models.WeeklyCookingSchedule, error) {
	rows := make([]models.WeeklyCookingSchedule, 0, len(req.Days))
	seen := map[int]bool{}
	for _, d := range req.Days {
		if seen[*d.Day] {
			return nil, invalid("day %d listed twice", *d.Day)
		}
		seen[*d.Day] = true
		cooking := true
		if d.IsCooking != nil {
			cooking = *d.IsCooking
		}
		mealType := d.MealType
		if mealType == "" {
			mealType = models.MealDinner
		}
		rows = append(rows, models.WeeklyCookingSchedule{
			FamilyID:       familyID,
			WeekStart:      req.WeekStart,
			Day:            *d.Day,
			IsCooking:      cooking,
			MaxCookMinutes: d.MaxCookMinutes,
			MealType:       mealType,
			Notes:          d.Notes,
		})
	}

	var days []models.WeeklyCookingSchedule
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := replaceScheduleRows(tx, familyID, req.WeekStart, rows); err != nil {
			return err
		}
		var err error
		days, err = s.schedule(ctx, tx, familyID, req.WeekStart)
		return err
	})
	if err != nil {
		return nil, translate(err, "replace cooking schedule")
	}
	return days, nil
}

func replaceScheduleRows(tx *gorm.DB, familyID uuid.UUID, weekStart string, rows []models.WeeklyCookingSchedule) error {
	if err := rowExists(tx.Statement.Context, tx, &models.Family{}, familyID, "family"); err != nil {
		return err
	}
	if err := tx.Where("family_id = ? AND week_start = ?", familyID, weekStart).Delete(&models.WeeklyCookingSchedule{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

// GetLunchNeeds returns the stored lunch needs of a week
func (s *ScheduleService) GetLunchNeeds(ctx context.Context, familyID uuid.UUID, weekStart string) ([]models.WeeklyLunchNeed, error) {
	if err := rowExists(ctx, s.db, &models.Family{}, familyID, "family"); err != nil {
		return nil, err
	}
	var needs []models.WeeklyLunchNeed
	err := s.db.WithContext(ctx).
		Where("family_id = ? AND week_start = ?", familyID, weekStart).
		Order("day ASC").Order("member_name ASC").
		Find(&needs).Error
	if err != nil {
		return nil, translate(err, "lunch needs")
	}
	return needs, nil
}

// ReplaceLunchNeeds overwrites the week's lunch needs
func (s *ScheduleService) ReplaceLunchNeeds(ctx context.Context, familyID uuid.UUID, req *types.LunchNeedsRequest) ([]models.WeeklyLunchNeed, error) {
	var members []models.FamilyMember
	if err := s.db.WithContext(ctx).Where("family_id = ?", familyID).Find(&members).Error; err != nil {
		return nil, translate(err, "members")
	}
	byID := make(map[uuid.UUID]models.FamilyMember, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	rows := make([]models.WeeklyLunchNeed, 0, len(req.LunchNeeds))
	for _, n := range req.LunchNeeds {
		row := models.WeeklyLunchNeed{
			FamilyID:   familyID,
			WeekStart:  req.WeekStart,
			Day:        *n.Day,
			MemberID:   n.MemberID,
			MemberName: n.MemberName,
			Count:      n.Count,
			Notes:      n.Notes,
		}
		if n.MemberID != nil {
			m, ok := byID[*n.MemberID]
			if !ok {
				return nil, invalid("member %s does not belong to this family", *n.MemberID)
			}
			if row.MemberName == "" {
				row.MemberName = m.Name
			}
		}
		if row.Count <= 0 {
			row.Count = 1
		}
		rows = append(rows, row)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replaceLunchRows(tx, familyID, req.WeekStart, rows)
	})
	if err != nil {
		return nil, translate(err, "replace lunch needs")
	}
	return s.GetLunchNeeds(ctx, familyID, req.WeekStart)
}

func replaceLunchRows(tx *gorm.DB, familyID uuid.UUID, weekStart string, rows []models.WeeklyLunchNeed) error {
	if err := rowExists(tx.Statement.Context, tx, &models.Family{}, familyID, "family"); err != nil {
		return err
	}
	if err := tx.Where("family_id = ? AND week_start = ?", familyID, weekStart).Delete(&models.WeeklyLunchNeed{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Day < rows[j].Day })
	return tx.Create(&rows).Error
}
