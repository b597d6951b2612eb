package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pageza/mealwise/backend/internal/metrics"
)

// Scopes guarded by a limiter
const (
	ScopeSmartSetup   = "smart-setup"
	ScopeMealPlans    = "meal-plans"
	ScopeConversation = "conversation"
)

// maxPeekBytes bounds how much of a request body is read to find the family id
const maxPeekBytes = 1 << 20

// maxLocalKeys forces an idle sweep of the local buckets once exceeded
const maxLocalKeys = 10000

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Scope names the guarded endpoint group and prefixes the Redis keys
	Scope string
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
}

// RateLimiter enforces a fixed window in Redis. Without Redis, or when Redis
// fails, it falls back to an in-process token bucket per key.
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
	logger *zap.Logger
	now    func() time.Time

	mu        sync.Mutex
	local     map[string]*localBucket
	maxKeys   int
	overflow  *rate.Limiter
	lastSweep time.Time
}

type localBucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// NewRateLimiter creates a new rate limiter instance. redisClient may be nil.
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig, logger *zap.Logger) *RateLimiter {
	if config.Window <= 0 {
		config.Window = time.Hour
	}
	if config.Limit <= 0 {
		config.Limit = 20
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RateLimiter{
		redis:   redisClient,
		config:  config,
		logger:  logger,
		now:     time.Now,
		local:   make(map[string]*localBucket),
		maxKeys: maxLocalKeys,
	}
}

// Scope returns the limiter's scope name
func (rl *RateLimiter) Scope() string { return rl.config.Scope }

// Limit returns the number of requests allowed per window
func (rl *RateLimiter) Limit() int { return rl.config.Limit }

// Middleware rejects requests over the limit with 429
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := RequestKey(c)
		allowed, remaining, resetTime := rl.Allow(c.Request.Context(), key)

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			metrics.RateLimited.WithLabelValues(rl.config.Scope).Inc()
			retry := int(resetTime.Sub(rl.now()).Seconds())
			if retry < 1 {
				retry = 1
			}
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"message":     fmt.Sprintf("limit of %d requests per %v reached for %s", rl.config.Limit, rl.config.Window, rl.config.Scope),
				"retry_after": retry,
			})
			return
		}
		c.Next()
	}
}

// Allow consumes one request for key.
// Returns: allowed, remaining requests, reset time
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, int, time.Time) {
	if rl.redis != nil {
		allowed, remaining, reset, err := rl.allowRedis(ctx, key)
		if err == nil {
			return allowed, remaining, reset
		}
		rl.logger.Warn("rate limit store unavailable, using local limiter",
			zap.String("scope", rl.config.Scope), zap.Error(err))
	}
	now := rl.now()
	lim := rl.limiter(key, now)
	allowed := lim.AllowN(now, 1)
	remaining := int(lim.TokensAt(now))
	return allowed, clamp(remaining, rl.config.Limit), rl.localReset(now, remaining)
}

// Remaining reports the quota left for key without consuming any
func (rl *RateLimiter) Remaining(ctx context.Context, key string) (int, time.Time) {
	now := rl.now()
	if rl.redis != nil {
		windowStart := now.Truncate(rl.config.Window)
		count, err := rl.redis.Get(ctx, rl.redisKey(key, windowStart)).Int()
		switch {
		case err == redis.Nil:
			return rl.config.Limit, windowStart.Add(rl.config.Window)
		case err == nil:
			return clamp(rl.config.Limit-count, rl.config.Limit), windowStart.Add(rl.config.Window)
		}
		rl.logger.Warn("rate limit store unavailable, using local limiter",
			zap.String("scope", rl.config.Scope), zap.Error(err))
	}
	remaining := int(rl.limiter(key, now).TokensAt(now))
	return clamp(remaining, rl.config.Limit), rl.localReset(now, remaining)
}

func (rl *RateLimiter) allowRedis(ctx context.Context, key string) (bool, int, time.Time, error) {
	windowStart := rl.now().Truncate(rl.config.Window)
	redisKey := rl.redisKey(key, windowStart)

	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incrCmd.Val())
	return count <= rl.config.Limit, clamp(rl.config.Limit-count, rl.config.Limit), windowStart.Add(rl.config.Window), nil
}

func (rl *RateLimiter) redisKey(key string, windowStart time.Time) string {
	return fmt.Sprintf("rate_limit:%s:%s:%d", rl.config.Scope, key, windowStart.Unix())
}

func (rl *RateLimiter) limiter(key string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if len(rl.local) >= rl.maxKeys || now.Sub(rl.lastSweep) >= rl.config.Window {
		rl.sweep(now)
	}
	b, ok := rl.local[key]
	if !ok {
		// New keys share one bucket while the table is full
		if len(rl.local) >= rl.maxKeys {
			if rl.overflow == nil {
				rl.overflow = rl.newBucket()
			}
			return rl.overflow
		}
		b = &localBucket{lim: rl.newBucket()}
		rl.local[key] = b
	}
	b.seen = now
	return b.lim
}

func (rl *RateLimiter) newBucket() *rate.Limiter {
	every := rl.config.Window / time.Duration(rl.config.Limit)
	return rate.NewLimiter(rate.Every(every), rl.config.Limit)
}

// sweep drops buckets idle for a whole window. Those have refilled completely,
// so a fresh bucket behaves the same. Callers hold rl.mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for key, b := range rl.local {
		if now.Sub(b.seen) >= rl.config.Window {
			delete(rl.local, key)
		}
	}
	rl.lastSweep = now
}

// localReset is when the bucket is full again
func (rl *RateLimiter) localReset(now time.Time, remaining int) time.Time {
	missing := rl.config.Limit - clamp(remaining, rl.config.Limit)
	return now.Add(time.Duration(missing) * (rl.config.Window / time.Duration(rl.config.Limit)))
}

func clamp(n, max int) int {
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}

// RequestKey identifies the caller: the family id from the path, query or
// JSON body, otherwise the client IP. Ids that are not UUIDs are ignored.
// The body is restored after peeking.
func RequestKey(c *gin.Context) string {
	if key, ok := familyKey(c.Param("family_id")); ok {
		return key
	}
	if key, ok := familyKey(c.Query("family_id")); ok {
		return key
	}
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxPeekBytes))
		rest := c.Request.Body
		c.Request.Body = struct {
			io.Reader
			io.Closer
		}{io.MultiReader(bytes.NewReader(raw), rest), rest}
		if err == nil {
			var peek struct {
				FamilyID string `json:"family_id"`
			}
			if json.Unmarshal(raw, &peek) == nil {
				if key, ok := familyKey(peek.FamilyID); ok {
					return key
				}
			}
		}
	}
	return "ip:" + c.ClientIP()
}

func familyKey(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return "family:" + id.String(), true
}
