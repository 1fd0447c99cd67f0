package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	domain "user-api/internal/domain/user"
)

// UserCache defines the interface for user caching operations.
type UserCache interface {
	// Get returns nil, nil on a cache miss.
	Get(ctx context.Context, id int64) (*domain.User, error)
	Set(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}

// cachedUser is the stored representation; keeps the wire format independent
// of the domain struct.
type cachedUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RedisUserCache implements UserCache using Redis as the backing store.
type RedisUserCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisUserCache creates a new Redis-backed user cache.
func NewRedisUserCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisUserCache {
	return &RedisUserCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

// Key returns the Redis key holding the user with the given id.
func Key(id int64) string {
	return fmt.Sprintf("user:%d", id)
}

// Get retrieves a user from Redis.
func (c *RedisUserCache) Get(ctx context.Context, id int64) (*domain.User, error) {
	data, err := c.client.Get(ctx, Key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.log.Debug("cache miss", zap.Int64("user_id", id))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get user %d: %w", id, err)
	}

	var cu cachedUser
	if err := json.Unmarshal(data, &cu); err != nil {
		return nil, fmt.Errorf("decode cached user %d: %w", id, err)
	}

	c.log.Debug("cache hit", zap.Int64("user_id", id))
	return &domain.User{ID: cu.ID, Name: cu.Name, Email: cu.Email}, nil
}

// Set stores a user in Redis with the configured TTL.
func (c *RedisUserCache) Set(ctx context.Context, user *domain.User) error {
	if user == nil {
		return errors.New("cannot cache nil user")
	}

	data, err := json.Marshal(cachedUser{ID: user.ID, Name: user.Name, Email: user.Email})
	if err != nil {
		return fmt.Errorf("encode user %d: %w", user.ID, err)
	}

	if err := c.client.Set(ctx, Key(user.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set user %d: %w", user.ID, err)
	}

	c.log.Debug("cached user", zap.Int64("user_id", user.ID), zap.Duration("ttl", c.ttl))
	return nil
}

// Delete removes a user from Redis. Deleting an absent key is not an error.
func (c *RedisUserCache) Delete(ctx context.Context, id int64) error {
	if err := c.client.Del(ctx, Key(id)).Err(); err != nil {
		return fmt.Errorf("cache delete user %d: %w", id, err)
	}
	c.log.Debug("deleted from cache", zap.Int64("user_id", id))
	return nil
}
