package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/config"
	"github.com/pageza/mealwise/backend/internal/database"
	"github.com/pageza/mealwise/backend/internal/router"
	"github.com/pageza/mealwise/backend/internal/service"
)

// ShutdownTimeout bounds graceful shutdown
const ShutdownTimeout = 5 * time.Second

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	redis  *redis.Client
	logger *zap.Logger
}

// New connects the database, Redis and S3 from cfg and builds the server
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	db, err := database.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db, logger); err != nil {
		return nil, err
	}

	// Redis is optional; the stores fall back to memory
	redisClient, err := database.NewRedisClient(cfg, logger)
	if err != nil {
		logger.Warn("failed to connect to Redis, continuing without it", zap.Error(err))
		redisClient = nil
	}

	var images service.ImageStore
	s3cfg, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		logger.Warn("failed to configure S3, image uploads disabled", zap.Error(err))
	} else if s3cfg != nil {
		images = s3cfg
		if s3cfg.PublicRead {
			if err := s3cfg.SetupBucketPolicy(ctx); err != nil {
				logger.Warn("failed to apply public-read bucket policy", zap.String("bucket", s3cfg.BucketName), zap.Error(err))
			}
		}
	}

	return build(cfg, db, redisClient, images, logger)
}

// NewWithDB builds a server around an existing, migrated database
func NewWithDB(cfg *config.Config, db *gorm.DB, logger *zap.Logger) (*Server, error) {
	return build(cfg, db, nil, nil, logger)
}

func build(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, images service.ImageStore, logger *zap.Logger) (*Server, error) {
	gin.SetMode(cfg.Environment.GinMode())

	engine, err := router.SetupRouter(router.Dependencies{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Images: images,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg:    cfg,
		router: engine,
		db:     db,
		redis:  redisClient,
		logger: logger,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Handler exposes the routes, for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and closes the stores
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, ShutdownTimeout)
	defer cancel()

	err := s.http.Shutdown(ctx)
	if s.redis != nil {
		if cerr := s.redis.Close(); cerr != nil {
			s.logger.Warn("failed to close redis", zap.Error(cerr))
		}
	}
	if cerr := database.Close(s.db); cerr != nil {
		s.logger.Warn("failed to close database", zap.Error(cerr))
	}
	return err
}
