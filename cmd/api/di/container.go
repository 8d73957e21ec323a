package di

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"article-api/cmd/api/infrastructure"
	"article-api/internal/adapter/db/postgres"
	ginhandler "article-api/internal/adapter/gin/handler"
	"article-api/internal/adapter/gin/middleware"
	ginrouter "article-api/internal/adapter/gin/router"
	"article-api/internal/config"
	"article-api/internal/usecase/article"
	"article-api/internal/usecase/auth"
	redisclient "article-api/pkg/redis"
	"article-api/pkg/security"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	DB             *gorm.DB
	RedisClient    *redisclient.Client
	AuthUC         *auth.Usecase
	ArticleUC      *article.Usecase
	RateLimiter    *middleware.RateLimiter
	AuthHandler    *ginhandler.AuthHandler
	ArticleHandler *ginhandler.ArticleHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Initialize database
	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return NewContainerWithDB(ctx, cfg, db, l)
}

// NewContainerWithDB wires everything on top of an already opened database
func NewContainerWithDB(ctx context.Context, cfg *config.Config, db *gorm.DB, l *zap.Logger) (*Container, error) {
	// Initialize Redis client; nil when disabled
	rdb, err := infrastructure.NewRedisClient(ctx, cfg, l)
	if err != nil {
		_ = infrastructure.CloseDatabase(db)
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepoPG(db, l)
	articleRepo := postgres.NewArticleRepoPG(db, l)

	// Initialize use cases
	authUC := auth.New(
		userRepo,
		security.NewBcryptHasher(cfg.Auth.BcryptCost),
		auth.Policy{
			TokenLength:       cfg.Auth.TokenLength,
			PasswordMinLength: cfg.Auth.PasswordMinLength,
		},
		l,
	)
	articleUC := article.New(articleRepo, l)

	// Initialize rate limiter; throttling needs Redis
	var rateLimiter *middleware.RateLimiter
	if rdb != nil {
		rateLimiter = middleware.NewRateLimiter(
			rdb.Client,
			middleware.RateLimiterConfig{
				RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
				BurstCapacity:     cfg.RateLimit.BurstCapacity,
				Enabled:           cfg.RateLimit.Enabled,
			},
			l,
		)
	}

	return &Container{
		Config:         cfg,
		Logger:         l,
		DB:             db,
		RedisClient:    rdb,
		AuthUC:         authUC,
		ArticleUC:      articleUC,
		RateLimiter:    rateLimiter,
		AuthHandler:    ginhandler.NewAuthHandler(authUC),
		ArticleHandler: ginhandler.NewArticleHandler(articleUC),
	}, nil
}

// HealthChecks returns a probe per backing store, keyed by name
func (c *Container) HealthChecks() map[string]ginrouter.HealthCheck {
	checks := map[string]ginrouter.HealthCheck{
		"database": infrastructure.DatabaseCheck(c.DB),
	}
	if c.RedisClient != nil {
		checks["redis"] = c.RedisClient.Check
	}
	return checks
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	// Close database connection
	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	return errors.Join(errs...)
}
