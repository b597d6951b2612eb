package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealwise/backend/internal/middleware"
)

// Version is reported by the health endpoints
const Version = "v1.0.0"

// Pinger is anything whose reachability the health check reports (the database)
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	ping Pinger
}

func NewHealthHandler(ping Pinger) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status, code, database := "healthy", http.StatusOK, "ok"
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			status, code, database = "degraded", http.StatusServiceUnavailable, err.Error()
		}
	}
	c.JSON(code, gin.H{
		"status":   status,
		"message":  "Mealwise API is running",
		"version":  Version,
		"database": database,
	})
}

// RateLimitHandler reports remaining quota per scope
type RateLimitHandler struct {
	limiters map[string]*middleware.RateLimiter
}

func NewRateLimitHandler(limiters ...*middleware.RateLimiter) *RateLimitHandler {
	h := &RateLimitHandler{limiters: make(map[string]*middleware.RateLimiter, len(limiters))}
	for _, l := range limiters {
		h.limiters[l.Scope()] = l
	}
	return h
}

func (h *RateLimitHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/rate-limits/:scope", h.Status)
}

// Status answers GET /rate-limits/:scope?family_id=
func (h *RateLimitHandler) Status(c *gin.Context) {
	scope := c.Param("scope")
	limiter, ok := h.limiters[scope]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown rate limit scope " + scope})
		return
	}
	remaining, reset := limiter.Remaining(c.Request.Context(), middleware.RequestKey(c))
	c.JSON(http.StatusOK, gin.H{
		"scope":      scope,
		"limit":      limiter.Limit(),
		"remaining":  remaining,
		"reset_time": reset.Unix(),
	})
}
