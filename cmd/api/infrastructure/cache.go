package infrastructure

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"user-api/internal/config"
	redisclient "user-api/pkg/redis"
)

// NewRedisClient connects to Redis when REDIS_ENABLED is set. It returns a nil
// client otherwise, which callers treat as "no cache, no rate limiting".
func NewRedisClient(ctx context.Context, cfg *config.Config, l *zap.Logger) (*redisclient.Client, error) {
	if !cfg.Redis.Enabled {
		l.Info("redis disabled, running without cache")
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
	}, l)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return rdb, nil
}
