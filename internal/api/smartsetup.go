package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealwise/backend/internal/service"
	"github.com/pageza/mealwise/backend/internal/types"
)

// SmartSetupHandler serves the natural-language week setup and conversation planning
type SmartSetupHandler struct {
	setup       service.ISmartSetupService
	parseGuards []gin.HandlerFunc
	convoGuards []gin.HandlerFunc
}

func NewSmartSetupHandler(setup service.ISmartSetupService) *SmartSetupHandler {
	return &SmartSetupHandler{setup: setup}
}

// WithGuards installs middleware in front of parse and generate-from-conversation
func (h *SmartSetupHandler) WithGuards(parse, conversation gin.HandlerFunc) *SmartSetupHandler {
	if parse != nil {
		h.parseGuards = append(h.parseGuards, parse)
	}
	if conversation != nil {
		h.convoGuards = append(h.convoGuards, conversation)
	}
	return h
}

func (h *SmartSetupHandler) RegisterRoutes(router *gin.RouterGroup) {
	setup := router.Group("/smart-setup")
	{
		setup.POST("/parse", append(h.parseGuards, h.Parse)...)
		setup.GET("/:sessionId", h.GetSession)
		setup.POST("/:sessionId/confirm", h.Confirm)
	}
	router.POST("/plan/generate-from-conversation", append(h.convoGuards, h.GenerateFromConversation)...)
}

func (h *SmartSetupHandler) Parse(c *gin.Context) {
	var req types.SmartSetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	session, err := h.setup.Parse(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *SmartSetupHandler) GetSession(c *gin.Context) {
	session, err := h.setup.Get(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *SmartSetupHandler) Confirm(c *gin.Context) {
	result, err := h.setup.Confirm(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *SmartSetupHandler) GenerateFromConversation(c *gin.Context) {
	var req types.ConversationPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := h.setup.GenerateFromConversation(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
