package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealwise/backend/internal/service"
	"github.com/pageza/mealwise/backend/internal/types"
)

// FavoriteHandler serves a family's favorite chefs, meals and sides
type FavoriteHandler struct {
	favorites service.IFavoriteService
}

func NewFavoriteHandler(favorites service.IFavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

func (h *FavoriteHandler) RegisterRoutes(router *gin.RouterGroup) {
	family := router.Group("/families/:id/favorites")
	{
		family.GET("/chefs", h.ListChefs)
		family.POST("/chefs", h.AddChef)
		family.GET("/meals", h.ListMeals)
		family.POST("/meals", h.AddMeal)
		family.GET("/sides", h.ListSides)
		family.POST("/sides", h.AddSide)
	}
	favorites := router.Group("/favorites")
	{
		favorites.DELETE("/chefs/:favId", h.RemoveChef)
		favorites.DELETE("/meals/:favId", h.RemoveMeal)
		favorites.DELETE("/sides/:favId", h.RemoveSide)
	}
}

func (h *FavoriteHandler) ListChefs(c *gin.Context) {
	familyID, ok := pathID(c, "id")
	if !ok {
		return
	}
	chefs, err := h.favorites.ListChefs(c.Request.Context(), familyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chefs": chefs})
}

func (h *FavoriteHandler) AddChef(c *gin.Context) {
	familyID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req types.FavoriteChefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	chef, err := h.favorites.AddChef(c.Request.Context(), familyID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, chef)
}

func (h *FavoriteHandler) RemoveChef(c *gin.Context) {
	id, ok := pathID(c, "favId")
	if !ok {
		return
	}
	if err := h.favorites.RemoveChef(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	deleted(c, "favorite chef", id)
}

func (h *FavoriteHandler) ListMeals(c *gin.Context) {
	familyID, ok := pathID(c, "id")
	if !ok {
		return
	}
	meals, err := h.favorites.ListMeals(c.Request.Context(), familyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

func (h *FavoriteHandler) AddMeal(c *gin.Context) {
	familyID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req types.FavoriteMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	meal, err := h.favorites.AddMeal(c.Request.Context(), familyID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (h *FavoriteHandler) RemoveMeal(c *gin.Context) {
	id, ok := pathID(c, "favId")
	if !ok {
		return
	}
	if err := h.favorites.RemoveMeal(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	deleted(c, "favorite meal", id)
}

func (h *FavoriteHandler) ListSides(c *gin.Context) {
	familyID, ok := pathID(c, "id")
	if !ok {
		return
	}
	sides, err := h.favorites.ListSides(c.Request.Context(), familyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sides": sides})
}

func (h *FavoriteHandler) AddSide(c *gin.Context) {
	familyID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req types.FavoriteSideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	side, err := h.favorites.AddSide(c.Request.Context(), familyID, req.SideID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, side)
}

func (h *FavoriteHandler) RemoveSide(c *gin.Context) {
	id, ok := pathID(c, "favId")
	if !ok {
		return
	}
	if err := h.favorites.RemoveSide(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	deleted(c, "favorite side", id)
}
