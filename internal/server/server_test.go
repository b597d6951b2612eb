package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/config"
	"github.com/pageza/mealwise/backend/internal/database"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db, zap.NewNop()))

	cfg := &config.Config{
		Environment:      config.Test,
		ServerHost:       "localhost",
		ServerPort:       "0",
		CORSOrigins:      []string{"*"},
		JWTSecret:        "test-secret",
		ShareTTL:         time.Hour,
		RateLimitPerHour: 5,
	}
	srv, err := NewWithDB(cfg, db, zap.NewNop())
	require.NoError(t, err)
	return srv
}

func TestNewWithDB(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRoutesAreWired(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/families", bytes.NewBufferString(`{"name":"Okafor"}`))
	req.Header.Set("Content-Type", "application/json")
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/metrics", nil)
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/nope", nil)
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestShutdownWithoutStart(t *testing.T) {
	srv := newTestServer(t)
	assert.NoError(t, srv.Shutdown(context.Background()))
}

func TestRateLimitStatus(t *testing.T) {
	srv := newTestServer(t)
	family := "0b8f5d0e-2f71-4a43-9a57-2b8a8d1d6c11"

	status := func() map[string]interface{} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/rate-limits/meal-plans?family_id="+family, nil)
		srv.Handler().ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return body
	}
	body := status()
	assert.Equal(t, float64(5), body["limit"])
	assert.Equal(t, float64(5), body["remaining"])

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/meal-plans/generate",
		bytes.NewBufferString(`{"family_id":"`+family+`","week_start":"2025-03-03"}`))
	req.Header.Set("Content-Type", "application/json")
	srv.Handler().ServeHTTP(w, req)
	assert.NotEqual(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, float64(4), status()["remaining"])

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/rate-limits/unknown", nil)
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
