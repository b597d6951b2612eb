package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealwise/backend/internal/service"
	"github.com/pageza/mealwise/backend/internal/types"
)

// MealPlanHandler serves plan generation, editing and the grocery list build
type MealPlanHandler struct {
	plans    service.IMealPlanService
	grocery  service.IGroceryService
	generate []gin.HandlerFunc
}

// NewMealPlanHandler creates the handler. guards run before generation (rate limiting).
func NewMealPlanHandler(plans service.IMealPlanService, grocery service.IGroceryService, guards ...gin.HandlerFunc) *MealPlanHandler {
	return &MealPlanHandler{plans: plans, grocery: grocery, generate: guards}
}

func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/meal-plans")
	{
		plans.POST("/generate", append(h.generate, h.Generate)...)
		plans.GET("", h.ListPlans)
		plans.GET("/:id", h.GetPlan)
		plans.DELETE("/:id", h.DeletePlan)
		plans.PUT("/:id/items/:itemId", h.UpdateItem)
		plans.GET("/:id/items/:itemId/side-suggestions", h.SuggestSides)
		plans.POST("/:id/grocery-list", h.BuildGroceryList)
	}
}

func (h *MealPlanHandler) Generate(c *gin.Context) {
	var req types.GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	plan, err := h.plans.Generate(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func (h *MealPlanHandler) ListPlans(c *gin.Context) {
	var filter types.PlanFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err)
		return
	}
	plans, err := h.plans.ListPlans(c.Request.Context(), &filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal_plans": plans})
}

func (h *MealPlanHandler) GetPlan(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	plan, err := h.plans.GetPlan(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *MealPlanHandler) DeletePlan(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.plans.DeletePlan(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	deleted(c, "meal plan", id)
}

func (h *MealPlanHandler) UpdateItem(c *gin.Context) {
	planID, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	var req types.UpdatePlanItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	item, err := h.plans.UpdateItem(c.Request.Context(), planID, itemID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *MealPlanHandler) SuggestSides(c *gin.Context) {
	planID, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	limit, ok := limitQuery(c, 5)
	if !ok {
		return
	}
	suggestions, err := h.plans.SuggestSides(c.Request.Context(), planID, itemID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (h *MealPlanHandler) BuildGroceryList(c *gin.Context) {
	planID, ok := pathID(c, "id")
	if !ok {
		return
	}
	list, err := h.grocery.BuildFromPlan(c.Request.Context(), planID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}
