package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealwise/backend/internal/service"
	"github.com/pageza/mealwise/backend/internal/types"
)

// FamilyHandler serves families and their members
type FamilyHandler struct {
	families service.IFamilyService
}

func NewFamilyHandler(families service.IFamilyService) *FamilyHandler {
	return &FamilyHandler{families: families}
}

func (h *FamilyHandler) RegisterRoutes(router *gin.RouterGroup) {
	families := router.Group("/families")
	{
		families.GET("", h.ListFamilies)
		families.POST("", h.CreateFamily)
		families.GET("/:id", h.GetFamily)
		families.PUT("/:id", h.UpdateFamily)
		families.DELETE("/:id", h.DeleteFamily)
		families.GET("/:id/members", h.ListMembers)
		families.POST("/:id/members", h.CreateMember)
	}
	members := router.Group("/members")
	{
		members.PUT("/:memberId", h.UpdateMember)
		members.DELETE("/:memberId", h.DeleteMember)
	}
}

func (h *FamilyHandler) ListFamilies(c *gin.Context) {
	families, err := h.families.ListFamilies(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"families": families})
}

func (h *FamilyHandler) CreateFamily(c *gin.Context) {
	var req types.CreateFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	family, err := h.families.CreateFamily(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, family)
}

func (h *FamilyHandler) GetFamily(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	family, err := h.families.GetFamily(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, family)
}

func (h *FamilyHandler) UpdateFamily(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req types.UpdateFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	family, err := h.families.UpdateFamily(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, family)
}

func (h *FamilyHandler) DeleteFamily(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.families.DeleteFamily(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	deleted(c, "family", id)
}

func (h *FamilyHandler) ListMembers(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	members, err := h.families.ListMembers(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (h *FamilyHandler) CreateMember(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req types.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	member, err := h.families.CreateMember(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (h *FamilyHandler) UpdateMember(c *gin.Context) {
	id, ok := pathID(c, "memberId")
	if !ok {
		return
	}
	var req types.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	member, err := h.families.UpdateMember(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *FamilyHandler) DeleteMember(c *gin.Context) {
	id, ok := pathID(c, "memberId")
	if !ok {
		return
	}
	if err := h.families.DeleteMember(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	deleted(c, "member", id)
}
