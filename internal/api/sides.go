package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealwise/backend/internal/service"
	"github.com/pageza/mealwise/backend/internal/types"
)

type SideHandler struct {
	sides service.ISideService
}

func NewSideHandler(sides service.ISideService) *SideHandler {
	return &SideHandler{sides: sides}
}

func (h *SideHandler) RegisterRoutes(router *gin.RouterGroup) {
	sides := router.Group("/sides")
	{
		sides.GET("", h.ListSides)
		sides.POST("", h.CreateSide)
		sides.PUT("/:id", h.UpdateSide)
		sides.DELETE("/:id", h.DeleteSide)
	}
}

func (h *SideHandler) ListSides(c *gin.Context) {
	var filter types.SideFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err)
		return
	}
	sides, err := h.sides.ListSides(c.Request.Context(), &filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sides": sides})
}

func (h *SideHandler) CreateSide(c *gin.Context) {
	var req types.SideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	side, err := h.sides.CreateSide(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, side)
}

func (h *SideHandler) UpdateSide(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req types.SideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	side, err := h.sides.UpdateSide(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, side)
}

func (h *SideHandler) DeleteSide(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.sides.DeleteSide(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	deleted(c, "side", id)
}
