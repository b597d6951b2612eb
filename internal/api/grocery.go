package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealwise/backend/internal/service"
	"github.com/pageza/mealwise/backend/internal/types"
)

type GroceryHandler struct {
	grocery service.IGroceryService
}

func NewGroceryHandler(grocery service.IGroceryService) *GroceryHandler {
	return &GroceryHandler{grocery: grocery}
}

func (h *GroceryHandler) RegisterRoutes(router *gin.RouterGroup) {
	lists := router.Group("/grocery-lists")
	{
		lists.GET("/:id", h.GetList)
		lists.DELETE("/:id", h.DeleteList)
		lists.POST("/:id/items", h.AddItem)
		lists.POST("/:id/share", h.Share)
	}
	items := router.Group("/grocery-items")
	{
		items.PATCH("/:itemId", h.UpdateItem)
		items.DELETE("/:itemId", h.DeleteItem)
	}
	router.GET("/families/:id/grocery-lists", h.ListForFamily)
	router.GET("/shared/grocery-lists/:token", h.GetShared)
}

func (h *GroceryHandler) GetList(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	list, err := h.grocery.GetList(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *GroceryHandler) ListForFamily(c *gin.Context) {
	familyID, ok := pathID(c, "id")
	if !ok {
		return
	}
	lists, err := h.grocery.ListForFamily(c.Request.Context(), familyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"grocery_lists": lists})
}

func (h *GroceryHandler) DeleteList(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.grocery.DeleteList(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	deleted(c, "grocery list", id)
}

func (h *GroceryHandler) AddItem(c *gin.Context) {
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req types.GroceryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	item, err := h.grocery.AddItem(c.Request.Context(), listID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *GroceryHandler) UpdateItem(c *gin.Context) {
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	var req types.UpdateGroceryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	item, err := h.grocery.UpdateItem(c.Request.Context(), itemID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *GroceryHandler) DeleteItem(c *gin.Context) {
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	if err := h.grocery.DeleteItem(c.Request.Context(), itemID); err != nil {
		respondError(c, err)
		return
	}
	deleted(c, "grocery item", itemID)
}

func (h *GroceryHandler) Share(c *gin.Context) {
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}
	link, err := h.grocery.Share(c.Request.Context(), listID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

// GetShared is the read-only view behind a share link
func (h *GroceryHandler) GetShared(c *gin.Context) {
	list, err := h.grocery.GetShared(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
