package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-api/cmd/api/infrastructure"
	"user-api/internal/adapter/cache"
	"user-api/internal/adapter/db/postgres"
	ginhandler "user-api/internal/adapter/gin/handler"
	"user-api/internal/adapter/gin/middleware"
	"user-api/internal/adapter/repository/cached"
	"user-api/internal/config"
	"user-api/internal/usecase/user"
	redisclient "user-api/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	RedisClient *redisclient.Client // nil when Redis is disabled
	UserRepo    user.Repository
	UserUC      user.UserUsecase
	RateLimiter *middleware.RateLimiter // nil when rate limiting is disabled
	GinHandler  *ginhandler.UserHandler
}

// NewContainer validates cfg and builds every dependency. Anything opened
// before a failure is closed again.
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	c := &Container{Config: cfg, Logger: l}

	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	c.DB = db

	rdb, err := infrastructure.NewRedisClient(ctx, cfg, l)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}
	c.RedisClient = rdb

	var repo user.Repository = postgres.NewUserRepoPG(db, l)
	if rdb != nil {
		userCache := cache.NewRedisUserCache(rdb.Client, time.Duration(cfg.Redis.CacheTTL)*time.Second, l)
		repo = cached.NewUserRepository(repo, userCache, l)

		if cfg.RateLimit.Enabled {
			c.RateLimiter = middleware.NewRateLimiter(rdb.Client, middleware.RateLimiterConfig{
				RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
				BurstCapacity:     cfg.RateLimit.BurstCapacity,
				Enabled:           true,
			}, l)
		}
	}
	c.UserRepo = repo

	c.UserUC = user.New(repo, l)
	c.GinHandler = ginhandler.NewUserHandler(c.UserUC, l)

	return c, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	return errors.Join(errs...)
}
