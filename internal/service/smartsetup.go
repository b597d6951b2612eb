package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/internal/models"
	"github.com/pageza/mealwise/backend/internal/smartsetup"
	"github.com/pageza/mealwise/backend/internal/types"
)

// DefaultSessionTTL is how long a parsed draft waits for confirmation
const DefaultSessionTTL = 24 * time.Hour

// SetupSession is a parsed, unconfirmed week
type SetupSession struct {
	ID           string                 `json:"session_id"`
	FamilyID     uuid.UUID              `json:"family_id"`
	WeekStart    string                 `json:"week_start"`
	Text         string                 `json:"text"`
	Days         []smartsetup.DayPlan   `json:"days"`
	LunchNeeds   []smartsetup.LunchNeed `json:"lunch_needs"`
	Unrecognized []string               `json:"unrecognized"`
	ExpiresAt    time.Time              `json:"expires_at"`
}

// ConfirmResult is what a confirmed session wrote
type ConfirmResult struct {
	Schedule   []models.WeeklyCookingSchedule `json:"schedule"`
	LunchNeeds []models.WeeklyLunchNeed       `json:"lunch_needs"`
}

// ConversationResult is the outcome of planning a week from a conversation
type ConversationResult struct {
	Plan         *models.MealPlan               `json:"plan"`
	Schedule     []models.WeeklyCookingSchedule `json:"schedule"`
	LunchNeeds   []models.WeeklyLunchNeed       `json:"lunch_needs"`
	Unrecognized []string                       `json:"unrecognized"`
}

// SmartSetupService turns free-text week descriptions into schedules
type SmartSetupService struct {
	db        *gorm.DB
	store     SessionStore
	schedules *ScheduleService
	plans     *MealPlanService
	logger    *zap.Logger
	ttl       time.Duration
}

// NewSmartSetupService creates a new SmartSetupService instance
func NewSmartSetupService(db *gorm.DB, store SessionStore, schedules *ScheduleService, plans *MealPlanService, logger *zap.Logger) *SmartSetupService {
	return &SmartSetupService{
		db:        db,
		store:     store,
		schedules: schedules,
		plans:     plans,
		logger:    logger,
		ttl:       DefaultSessionTTL,
	}
}

// Parse interprets the text and stores the draft for later confirmation
func (s *SmartSetupService) Parse(ctx context.Context, req *types.SmartSetupRequest) (*SetupSession, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, invalid("text is required")
	}
	draft, err := s.newDraft(ctx, req.FamilyID)
	if err != nil {
		return nil, err
	}
	draft.Apply(req.Text)

	session := &SetupSession{
		ID:           uuid.NewString(),
		FamilyID:     req.FamilyID,
		WeekStart:    req.WeekStart,
		Text:         req.Text,
		Days:         draft.Days,
		LunchNeeds:   draft.LunchNeeds,
		Unrecognized: draft.Unrecognized,
		ExpiresAt:    time.Now().Add(s.ttl).UTC().Truncate(time.Second),
	}
	if err := s.store.Save(ctx, session.ID, session, s.ttl); err != nil {
		return nil, err
	}
	s.logger.Info("smart setup parsed",
		zap.String("session_id", session.ID),
		zap.String("family_id", req.FamilyID.String()),
		zap.Int("unrecognized", len(session.Unrecognized)))
	return session, nil
}

// Get returns a stored draft
func (s *SmartSetupService) Get(ctx context.Context, id string) (*SetupSession, error) {
	return s.store.Load(ctx, id)
}

// Confirm writes the draft's schedule and lunch needs and discards the draft
func (s *SmartSetupService) Confirm(ctx context.Context, id string) (*ConfirmResult, error) {
	session, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	result, err := s.persist(ctx, session.FamilyID, session.WeekStart, session.Days, session.LunchNeeds)
	if err != nil {
		return nil, err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		s.logger.Warn("failed to delete confirmed session", zap.String("session_id", id), zap.Error(err))
	}
	return result, nil
}

// GenerateFromConversation applies every user message in order, stores the resulting week and
// generates its plan.
func (s *SmartSetupService) GenerateFromConversation(ctx context.Context, req *types.ConversationPlanRequest) (*ConversationResult, error) {
	draft, err := s.newDraft(ctx, req.FamilyID)
	if err != nil {
		return nil, err
	}
	applied := 0
	for _, m := range req.Messages {
		if m.Role != "user" || strings.TrimSpace(m.Content) == "" {
			continue
		}
		draft.Apply(m.Content)
		applied++
	}
	if applied == 0 {
		return nil, invalid("conversation has no user messages")
	}

	weekStart, err := types.ParseWeekStart(req.WeekStart)
	if err != nil {
		return nil, invalid("%v", err)
	}
	genReq := &types.GeneratePlanRequest{
		FamilyID:  req.FamilyID,
		WeekStart: req.WeekStart,
		Overwrite: req.Overwrite,
	}

	// The week is only rewritten when its plan is generated too.
	var (
		written *ConfirmResult
		plan    *models.MealPlan
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if written, err = s.writeWeek(ctx, tx, req.FamilyID, req.WeekStart, draft.Days, draft.LunchNeeds); err != nil {
			return err
		}
		plan, err = s.plans.generate(ctx, tx, genReq, weekStart)
		return err
	})
	plan, err = s.plans.finishGenerate(genReq, plan, err)
	if err != nil {
		return nil, err
	}
	return &ConversationResult{
		Plan:         plan,
		Schedule:     written.Schedule,
		LunchNeeds:   written.LunchNeeds,
		Unrecognized: draft.Unrecognized,
	}, nil
}

func (s *SmartSetupService) newDraft(ctx context.Context, familyID uuid.UUID) (*smartsetup.Draft, error) {
	var family models.Family
	if err := s.db.WithContext(ctx).Preload("Members").First(&family, "id = ?", familyID).Error; err != nil {
		return nil, translate(err, "family")
	}
	opts := smartsetup.Options{WeeknightMinutes: family.MaxWeeknightMinutes}
	for _, m := range family.Members {
		opts.Members = append(opts.Members, smartsetup.Member{Name: m.Name, Child: m.Role == models.RoleChild})
	}
	return smartsetup.NewDraft(opts), nil
}

func (s *SmartSetupService) persist(ctx context.Context, familyID uuid.UUID, weekStart string, days []smartsetup.DayPlan, needs []smartsetup.LunchNeed) (*ConfirmResult, error) {
	var result *ConfirmResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = s.writeWeek(ctx, tx, familyID, weekStart, days, needs)
		return err
	})
	if err != nil {
		return nil, translate(err, "save week")
	}
	return result, nil
}

// writeWeek replaces the week's schedule and lunch needs inside tx and reads them back.
func (s *SmartSetupService) writeWeek(ctx context.Context, tx *gorm.DB, familyID uuid.UUID, weekStart string, days []smartsetup.DayPlan, needs []smartsetup.LunchNeed) (*ConfirmResult, error) {
	var members []models.FamilyMember
	if err := tx.Where("family_id = ?", familyID).Find(&members).Error; err != nil {
		return nil, err
	}

	rows := make([]models.WeeklyCookingSchedule, 0, len(days))
	for _, d := range days {
		rows = append(rows, models.WeeklyCookingSchedule{
			FamilyID:       familyID,
			WeekStart:      weekStart,
			Day:            d.Day,
			IsCooking:      d.IsCooking,
			MaxCookMinutes: d.MaxCookMinutes,
			MealType:       models.MealDinner,
			Notes:          d.Notes,
		})
	}
	lunch := make([]models.WeeklyLunchNeed, 0, len(needs))
	for _, n := range needs {
		row := models.WeeklyLunchNeed{
			FamilyID:   familyID,
			WeekStart:  weekStart,
			Day:        n.Day,
			MemberName: n.MemberName,
			Count:      n.Count,
			Notes:      n.Notes,
		}
		for i := range members {
			if n.MemberName != "" && strings.EqualFold(members[i].Name, n.MemberName) {
				row.MemberID = &members[i].ID
			}
		}
		if row.Count <= 0 {
			row.Count = 1
		}
		lunch = append(lunch, row)
	}

	if err := replaceScheduleRows(tx, familyID, weekStart, rows); err != nil {
		return nil, err
	}
	if err := replaceLunchRows(tx, familyID, weekStart, lunch); err != nil {
		return nil, err
	}
	result := &ConfirmResult{}
	var err error
	if result.Schedule, err = s.schedules.schedule(ctx, tx, familyID, weekStart); err != nil {
		return nil, err
	}
	err = tx.Where("family_id = ? AND week_start = ?", familyID, weekStart).
		Order("day ASC").Order("member_name ASC").Find(&result.LunchNeeds).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}
