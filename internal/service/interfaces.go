package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/mealwise/backend/internal/models"
	"github.com/pageza/mealwise/backend/internal/types"
)

// ImageStore persists uploaded recipe images and returns a URL clients can load them from
type ImageStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// SessionStore keeps smart-setup drafts between parse and confirm
type SessionStore interface {
	Save(ctx context.Context, id string, session *SetupSession, ttl time.Duration) error
	Load(ctx context.Context, id string) (*SetupSession, error)
	Delete(ctx context.Context, id string) error
}

// IFamilyService defines the interface for family and member operations
type IFamilyService interface {
	ListFamilies(ctx context.Context) ([]models.Family, error)
	CreateFamily(ctx context.Context, req *types.CreateFamilyRequest) (*models.Family, error)
	GetFamily(ctx context.Context, id uuid.UUID) (*models.Family, error)
	UpdateFamily(ctx context.Context, id uuid.UUID, req *types.UpdateFamilyRequest) (*models.Family, error)
	DeleteFamily(ctx context.Context, id uuid.UUID) error
	ListMembers(ctx context.Context, familyID uuid.UUID) ([]models.FamilyMember, error)
	CreateMember(ctx context.Context, familyID uuid.UUID, req *types.CreateMemberRequest) (*models.FamilyMember, error)
	UpdateMember(ctx context.Context, id uuid.UUID, req *types.UpdateMemberRequest) (*models.FamilyMember, error)
	DeleteMember(ctx context.Context, id uuid.UUID) error
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	ListRecipes(ctx context.Context, f *types.RecipeFilter) ([]models.Recipe, error)
	CreateRecipe(ctx context.Context, req *types.RecipeRequest) (*models.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, id uuid.UUID, req *types.RecipeRequest) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id uuid.UUID) error
	SimilarRecipes(ctx context.Context, id uuid.UUID, limit int) ([]models.Recipe, error)
	UploadImage(ctx context.Context, id uuid.UUID, filename, contentType string, body io.Reader) (*models.Recipe, error)
}

// ISideService defines the interface for the sides library
type ISideService interface {
	ListSides(ctx context.Context, f *types.SideFilter) ([]models.Side, error)
	CreateSide(ctx context.Context, req *types.SideRequest) (*models.Side, error)
	UpdateSide(ctx context.Context, id uuid.UUID, req *types.SideRequest) (*models.Side, error)
	DeleteSide(ctx context.Context, id uuid.UUID) error
}

// IFavoriteService defines the interface for favorite chefs, meals and sides
type IFavoriteService interface {
	ListChefs(ctx context.Context, familyID uuid.UUID) ([]models.FavoriteChef, error)
	AddChef(ctx context.Context, familyID uuid.UUID, name string) (*models.FavoriteChef, error)
	RemoveChef(ctx context.Context, id uuid.UUID) error
	ListMeals(ctx context.Context, familyID uuid.UUID) ([]models.FavoriteMeal, error)
	AddMeal(ctx context.Context, familyID uuid.UUID, req *types.FavoriteMealRequest) (*models.FavoriteMeal, error)
	RemoveMeal(ctx context.Context, id uuid.UUID) error
	ListSides(ctx context.Context, familyID uuid.UUID) ([]models.FavoriteSide, error)
	AddSide(ctx context.Context, familyID, sideID uuid.UUID) (*models.FavoriteSide, error)
	RemoveSide(ctx context.Context, id uuid.UUID) error
}

// IScheduleService defines the interface for weekly schedules and lunch needs
type IScheduleService interface {
	GetSchedule(ctx context.Context, familyID uuid.UUID, weekStart string) ([]models.WeeklyCookingSchedule, error)
	ReplaceSchedule(ctx context.Context, familyID uuid.UUID, req *types.ScheduleRequest) ([]models.WeeklyCookingSchedule, error)
	GetLunchNeeds(ctx context.Context, familyID uuid.UUID, weekStart string) ([]models.WeeklyLunchNeed, error)
	ReplaceLunchNeeds(ctx context.Context, familyID uuid.UUID, req *types.LunchNeedsRequest) ([]models.WeeklyLunchNeed, error)
}

// IMealPlanService defines the interface for plan generation and editing
type IMealPlanService interface {
	Generate(ctx context.Context, req *types.GeneratePlanRequest) (*models.MealPlan, error)
	ListPlans(ctx context.Context, f *types.PlanFilter) ([]models.MealPlan, error)
	GetPlan(ctx context.Context, id uuid.UUID) (*models.MealPlan, error)
	DeletePlan(ctx context.Context, id uuid.UUID) error
	UpdateItem(ctx context.Context, planID, itemID uuid.UUID, req *types.UpdatePlanItemRequest) (*models.MealPlanItem, error)
	SuggestSides(ctx context.Context, planID, itemID uuid.UUID, limit int) ([]SideSuggestion, error)
}

// IGroceryService defines the interface for grocery lists
type IGroceryService interface {
	BuildFromPlan(ctx context.Context, planID uuid.UUID) (*models.GroceryList, error)
	GetList(ctx context.Context, id uuid.UUID) (*models.GroceryList, error)
	ListForFamily(ctx context.Context, familyID uuid.UUID) ([]models.GroceryList, error)
	DeleteList(ctx context.Context, id uuid.UUID) error
	AddItem(ctx context.Context, listID uuid.UUID, req *types.GroceryItemRequest) (*models.GroceryItem, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, req *types.UpdateGroceryItemRequest) (*models.GroceryItem, error)
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	Share(ctx context.Context, listID uuid.UUID) (*ShareLink, error)
	GetShared(ctx context.Context, token string) (*models.GroceryList, error)
}

// ISmartSetupService defines the interface for the natural-language setup flow
type ISmartSetupService interface {
	Parse(ctx context.Context, req *types.SmartSetupRequest) (*SetupSession, error)
	Get(ctx context.Context, id string) (*SetupSession, error)
	Confirm(ctx context.Context, id string) (*ConfirmResult, error)
	GenerateFromConversation(ctx context.Context, req *types.ConversationPlanRequest) (*ConversationResult, error)
}
