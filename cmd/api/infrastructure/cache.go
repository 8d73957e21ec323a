package infrastructure

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"article-api/internal/config"
	redisclient "article-api/pkg/redis"
)

// NewRedisClient connects the throttling store. With Redis disabled it
// returns nil, nil and the API runs unthrottled.
func NewRedisClient(ctx context.Context, cfg *config.Config, l *zap.Logger) (*redisclient.Client, error) {
	if !cfg.Redis.Enabled {
		l.Info("redis disabled, request throttling is off")
		return nil, nil
	}

	rdb, err := redisclient.NewClient(ctx, redisclient.Config{
		Host:        cfg.Redis.Host,
		Port:        cfg.Redis.Port,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		MaxRetries:  cfg.Redis.MaxRetries,
		PoolSize:    cfg.Redis.PoolSize,
		MinIdleConn: cfg.Redis.MinIdleConn,
	}, l.Named("redis"))
	if err != nil {
		return nil, fmt.Errorf("throttling store: %w", err)
	}

	return rdb, nil
}
