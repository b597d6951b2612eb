package router

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/config"
	"github.com/pageza/mealwise/backend/internal/api"
	"github.com/pageza/mealwise/backend/internal/database"
	"github.com/pageza/mealwise/backend/internal/metrics"
	"github.com/pageza/mealwise/backend/internal/middleware"
	"github.com/pageza/mealwise/backend/internal/service"
	"github.com/pageza/mealwise/backend/internal/types"
)

// Dependencies are the collaborators the routes are built from. Redis and
// Images are optional.
type Dependencies struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Images service.ImageStore
	Logger *zap.Logger
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) (*gin.Engine, error) {
	cfg, logger := deps.Config, deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
	}
	if err := types.RegisterValidators(v); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.Metrics(),
		middleware.CORS(cfg.CORSOrigins),
	)
	router.NoRoute(middleware.NotFound)

	// Services
	var sessions service.SessionStore = service.NewMemorySessionStore()
	if deps.Redis != nil {
		sessions = service.NewRedisSessionStore(deps.Redis)
	}
	families := service.NewFamilyService(deps.DB, logger)
	recipes := service.NewRecipeService(deps.DB, deps.Images, logger)
	sides := service.NewSideService(deps.DB)
	favorites := service.NewFavoriteService(deps.DB)
	schedules := service.NewScheduleService(deps.DB)
	plans := service.NewMealPlanService(deps.DB, schedules, logger, cfg.PlannerRecentWeeks)
	grocery := service.NewGroceryService(deps.DB, cfg.JWTSecret, cfg.ShareTTL, logger)
	setup := service.NewSmartSetupService(deps.DB, sessions, schedules, plans, logger)

	// Rate limiters for the expensive endpoints
	limit := func(scope string) *middleware.RateLimiter {
		return middleware.NewRateLimiter(deps.Redis, middleware.RateLimitConfig{
			Scope:  scope,
			Window: time.Hour,
			Limit:  cfg.RateLimitPerHour,
		}, logger)
	}
	setupLimiter := limit(middleware.ScopeSmartSetup)
	planLimiter := limit(middleware.ScopeMealPlans)
	convoLimiter := limit(middleware.ScopeConversation)

	health := api.NewHealthHandler(func(ctx context.Context) error {
		return database.HealthCheck(ctx, deps.DB)
	})
	router.GET("/health", health.HealthCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	apiGroup := router.Group("/api")
	apiGroup.GET("/health", health.HealthCheck)

	api.NewFamilyHandler(families).RegisterRoutes(apiGroup)
	api.NewRecipeHandler(recipes).RegisterRoutes(apiGroup)
	api.NewSideHandler(sides).RegisterRoutes(apiGroup)
	api.NewFavoriteHandler(favorites).RegisterRoutes(apiGroup)
	api.NewScheduleHandler(schedules).RegisterRoutes(apiGroup)
	api.NewMealPlanHandler(plans, grocery, planLimiter.Middleware()).RegisterRoutes(apiGroup)
	api.NewGroceryHandler(grocery).RegisterRoutes(apiGroup)
	api.NewSmartSetupHandler(setup).
		WithGuards(setupLimiter.Middleware(), convoLimiter.Middleware()).
		RegisterRoutes(apiGroup)
	api.NewRateLimitHandler(setupLimiter, planLimiter, convoLimiter).RegisterRoutes(apiGroup)

	return router, nil
}
