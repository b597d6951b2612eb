package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/internal/grocery"
	"github.com/pageza/mealwise/backend/internal/models"
	"github.com/pageza/mealwise/backend/internal/types"
)

const defaultShareTTL = 7 * 24 * time.Hour

// ErrInvalidShareToken is returned for share tokens that are malformed, expired or forged
var ErrInvalidShareToken = errors.New("invalid share token")

// ShareLink is a signed, expiring token granting read access to one grocery list
type ShareLink struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// GroceryService builds and edits grocery lists
type GroceryService struct {
	db       *gorm.DB
	secret   []byte
	shareTTL time.Duration
	logger   *zap.Logger
}

// NewGroceryService creates a new GroceryService instance
func NewGroceryService(db *gorm.DB, secret string, shareTTL time.Duration, logger *zap.Logger) *GroceryService {
	if shareTTL <= 0 {
		shareTTL = defaultShareTTL
	}
	return &GroceryService{db: db, secret: []byte(secret), shareTTL: shareTTL, logger: logger}
}

// BuildFromPlan aggregates the ingredients of every meal in the plan into its grocery list.
// Rebuilding keeps manual items and the checked state of items that are still needed.
func (s *GroceryService) BuildFromPlan(ctx context.Context, planID uuid.UUID) (*models.GroceryList, error) {
	var plan models.MealPlan
	if err := s.db.WithContext(ctx).Preload("Items").First(&plan, "id = ?", planID).Error; err != nil {
		return nil, translate(err, "meal plan")
	}
	sources, err := s.collect(ctx, plan.Items)
	if err != nil {
		return nil, err
	}
	aggregated := grocery.Aggregate(sources)

	var listID uuid.UUID
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var list models.GroceryList
		err := tx.Where("meal_plan_id = ?", planID).First(&list).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			list = models.GroceryList{
				FamilyID:   plan.FamilyID,
				MealPlanID: &plan.ID,
				Name:       "Groceries for week of " + plan.WeekStart,
				WeekStart:  plan.WeekStart,
			}
			if err := tx.Create(&list).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		}
		listID = list.ID

		var previous []models.GroceryItem
		if err := tx.Where("grocery_list_id = ? AND manual = ?", list.ID, false).Find(&previous).Error; err != nil {
			return err
		}
		checked := make(map[string]bool, len(previous))
		for _, it := range previous {
			if it.Checked {
				checked[itemKey(it.Name, it.Unit)] = true
			}
		}
		if err := tx.Where("grocery_list_id = ? AND manual = ?", list.ID, false).Delete(&models.GroceryItem{}).Error; err != nil {
			return err
		}

		items := make([]models.GroceryItem, 0, len(aggregated))
		for _, a := range aggregated {
			items = append(items, models.GroceryItem{
				GroceryListID: list.ID,
				Name:          a.Name,
				Quantity:      a.Quantity,
				Unit:          a.Unit,
				Category:      a.Category,
				Checked:       checked[itemKey(a.Name, a.Unit)],
				Sources:       models.StringArray(a.Sources),
			})
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, translate(err, "build grocery list")
	}
	s.logger.Info("grocery list built",
		zap.String("meal_plan_id", planID.String()),
		zap.Int("items", len(aggregated)))
	return s.GetList(ctx, listID)
}

// collect turns plan items into scaled ingredient sources.
func (s *GroceryService) collect(ctx context.Context, items []models.MealPlanItem) ([]grocery.Source, error) {
	var recipeIDs, sideIDs []uuid.UUID
	for _, it := range items {
		if it.RecipeID != nil {
			recipeIDs = append(recipeIDs, *it.RecipeID)
		}
		sideIDs = append(sideIDs, it.SideIDs...)
	}

	recipes := map[uuid.UUID]models.Recipe{}
	if len(recipeIDs) > 0 {
		var rows []models.Recipe
		if err := s.db.WithContext(ctx).Where("id IN ?", recipeIDs).Find(&rows).Error; err != nil {
			return nil, translate(err, "recipes")
		}
		for _, r := range rows {
			recipes[r.ID] = r
		}
	}
	sides := map[uuid.UUID]models.Side{}
	if len(sideIDs) > 0 {
		var rows []models.Side
		if err := s.db.WithContext(ctx).Where("id IN ?", sideIDs).Find(&rows).Error; err != nil {
			return nil, translate(err, "sides")
		}
		for _, side := range rows {
			sides[side.ID] = side
		}
	}

	var out []grocery.Source
	for _, it := range items {
		if it.RecipeID != nil {
			if r, ok := recipes[*it.RecipeID]; ok {
				out = append(out, sourcesOf(r.Ingredients, r.Name, scaleFor(it.Servings, r.Servings))...)
			}
		}
		for _, id := range it.SideIDs {
			if side, ok := sides[id]; ok {
				out = append(out, sourcesOf(side.Ingredients, side.Name, scaleFor(it.Servings, side.Servings))...)
			}
		}
	}
	return out, nil
}

func sourcesOf(ingredients []models.Ingredient, from string, scale float64) []grocery.Source {
	out := make([]grocery.Source, 0, len(ingredients))
	for _, ing := range ingredients {
		out = append(out, grocery.Source{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
			Category: ing.Category,
			Scale:    scale,
			From:     from,
		})
	}
	return out
}

func scaleFor(planned, yields int) float64 {
	if planned <= 0 || yields <= 0 {
		return 1
	}
	return float64(planned) / float64(yields)
}

func itemKey(name, unit string) string {
	return grocery.NormalizeName(name) + "|" + strings.ToLower(unit)
}

// GetList loads a grocery list with its items in aisle order
func (s *GroceryService) GetList(ctx context.Context, id uuid.UUID) (*models.GroceryList, error) {
	var list models.GroceryList
	if err := s.db.WithContext(ctx).Preload("Items").First(&list, "id = ?", id).Error; err != nil {
		return nil, translate(err, "grocery list")
	}
	sortGroceryItems(list.Items)
	return &list, nil
}

// ListForFamily returns a family's grocery lists, newest first
func (s *GroceryService) ListForFamily(ctx context.Context, familyID uuid.UUID) ([]models.GroceryList, error) {
	if err := rowExists(ctx, s.db, &models.Family{}, familyID, "family"); err != nil {
		return nil, err
	}
	var lists []models.GroceryList
	err := s.db.WithContext(ctx).Preload("Items").
		Where("family_id = ?", familyID).
		Order("week_start DESC").Order("created_at DESC").
		Find(&lists).Error
	if err != nil {
		return nil, translate(err, "list grocery lists")
	}
	for i := range lists {
		sortGroceryItems(lists[i].Items)
	}
	return lists, nil
}

// DeleteList removes a grocery list and its items
func (s *GroceryService) DeleteList(ctx context.Context, id uuid.UUID) error {
	if err := rowExists(ctx, s.db, &models.GroceryList{}, id, "grocery list"); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("grocery_list_id = ?", id).Delete(&models.GroceryItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.GroceryList{}, "id = ?", id).Error
	})
	return translate(err, "delete grocery list")
}

// AddItem adds a manual item; rebuilding the list never removes it
func (s *GroceryService) AddItem(ctx context.Context, listID uuid.UUID, req *types.GroceryItemRequest) (*models.GroceryItem, error) {
	if err := rowExists(ctx, s.db, &models.GroceryList{}, listID, "grocery list"); err != nil {
		return nil, err
	}
	unit := strings.TrimSpace(req.Unit)
	if canon, ok := grocery.CanonicalUnit(unit); ok {
		unit = canon
	}
	category := strings.ToLower(strings.TrimSpace(req.Category))
	if category == "" {
		category = grocery.InferCategory(req.Name)
	}
	item := models.GroceryItem{
		GroceryListID: listID,
		Name:          strings.TrimSpace(req.Name),
		Quantity:      req.Quantity,
		Unit:          unit,
		Category:      category,
		Manual:        true,
		Sources:       models.StringArray{},
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, translate(err, "add grocery item")
	}
	return &item, nil
}

// UpdateItem patches a grocery item
func (s *GroceryService) UpdateItem(ctx context.Context, itemID uuid.UUID, req *types.UpdateGroceryItemRequest) (*models.GroceryItem, error) {
	if err := rowExists(ctx, s.db, &models.GroceryItem{}, itemID, "grocery item"); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Checked != nil {
		updates["checked"] = *req.Checked
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Unit != nil {
		updates["unit"] = strings.TrimSpace(*req.Unit)
	}
	if req.Category != nil {
		updates["category"] = strings.ToLower(strings.TrimSpace(*req.Category))
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.GroceryItem{}).Where("id = ?", itemID).Updates(updates).Error; err != nil {
			return nil, translate(err, "update grocery item")
		}
	}
	var item models.GroceryItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", itemID).Error; err != nil {
		return nil, translate(err, "grocery item")
	}
	return &item, nil
}

// DeleteItem removes a grocery item
func (s *GroceryService) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.GroceryItem{}, "id = ?", itemID)
	if res.Error != nil {
		return translate(res.Error, "delete grocery item")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("grocery item: %w", ErrNotFound)
	}
	return nil
}

// Share issues a signed read-only link to a grocery list
func (s *GroceryService) Share(ctx context.Context, listID uuid.UUID) (*ShareLink, error) {
	list, err := s.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	expires := now.Add(s.shareTTL)
	claims := &types.ShareClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   list.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
			ID:        uuid.NewString(),
		},
		GroceryListID: list.ID,
		FamilyID:      list.FamilyID,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign share token: %w", err)
	}
	return &ShareLink{Token: token, ExpiresAt: expires.UTC().Truncate(time.Second)}, nil
}

// GetShared resolves a share token to the list it grants access to
func (s *GroceryService) GetShared(ctx context.Context, token string) (*models.GroceryList, error) {
	claims := &types.ShareClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidShareToken
	}
	return s.GetList(ctx, claims.GroceryListID)
}

var categoryRank = func() map[string]int {
	m := make(map[string]int, len(grocery.CategoryOrder))
	for i, c := range grocery.CategoryOrder {
		m[c] = i
	}
	return m
}()

func sortGroceryItems(items []models.GroceryItem) {
	rank := func(c string) int {
		if r, ok := categoryRank[c]; ok {
			return r
		}
		return len(categoryRank)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if rank(items[i].Category) != rank(items[j].Category) {
			return rank(items[i].Category) < rank(items[j].Category)
		}
		return items[i].Name < items[j].Name
	})
}
