package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealwise/backend/internal/service"
	"github.com/pageza/mealwise/backend/internal/types"
)

// ScheduleHandler serves weekly cooking schedules and lunch needs
type ScheduleHandler struct {
	schedules service.IScheduleService
}

func NewScheduleHandler(schedules service.IScheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules}
}

func (h *ScheduleHandler) RegisterRoutes(router *gin.RouterGroup) {
	family := router.Group("/families/:id")
	{
		family.GET("/cooking-schedule", h.GetSchedule)
		family.PUT("/cooking-schedule", h.ReplaceSchedule)
		family.GET("/lunch-needs", h.GetLunchNeeds)
		family.PUT("/lunch-needs", h.ReplaceLunchNeeds)
	}
}

func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	familyID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var q types.WeekQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	days, err := h.schedules.GetSchedule(c.Request.Context(), familyID, q.WeekStart)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"week_start": q.WeekStart, "days": days})
}

func (h *ScheduleHandler) ReplaceSchedule(c *gin.Context) {
	familyID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req types.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	days, err := h.schedules.ReplaceSchedule(c.Request.Context(), familyID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"week_start": req.WeekStart, "days": days})
}

func (h *ScheduleHandler) GetLunchNeeds(c *gin.Context) {
	familyID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var q types.WeekQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	needs, err := h.schedules.GetLunchNeeds(c.Request.Context(), familyID, q.WeekStart)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"week_start": q.WeekStart, "lunch_needs": needs})
}

func (h *ScheduleHandler) ReplaceLunchNeeds(c *gin.Context) {
	familyID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req types.LunchNeedsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	needs, err := h.schedules.ReplaceLunchNeeds(c.Request.Context(), familyID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"week_start": req.WeekStart, "lunch_needs": needs})
}
