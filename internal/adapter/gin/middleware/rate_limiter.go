package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"user-api/internal/schema"
	"user-api/pkg/logger"
)

// RateLimiterConfig holds configuration for the rate limiter.
type RateLimiterConfig struct {
	RequestsPerSecond float64
	BurstCapacity     int
	Enabled           bool
}

// tokenBucket refills at ARGV[1] tokens/s up to ARGV[2] and takes one token.
// State per key: {last_refill, tokens}. Returns 1 when allowed.
var tokenBucket = redis.NewScript(`
local key = KEYS[1]
local rate = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

local bucket = redis.call('HMGET', key, 'last_refill', 'tokens')
local last_refill = tonumber(bucket[1]) or now
local tokens = tonumber(bucket[2]) or capacity

local elapsed = math.max(0, now - last_refill)
tokens = math.min(capacity, tokens + elapsed * rate)

local allowed = 0
if tokens >= 1 then
	tokens = tokens - 1
	allowed = 1
end

redis.call('HSET', key, 'last_refill', tostring(now), 'tokens', tostring(tokens))
redis.call('EXPIRE', key, 60)
return allowed
`)

// RateLimiter is a per client, per route token bucket stored in Redis.
type RateLimiter struct {
	client *redis.Client
	config RateLimiterConfig
	log    *zap.Logger
	now    func() time.Time
}

// NewRateLimiter creates a new rate limiter.
func NewRateLimiter(client *redis.Client, config RateLimiterConfig, log *zap.Logger) *RateLimiter {
	return &RateLimiter{
		client: client,
		config: config,
		log:    log,
		now:    time.Now,
	}
}

// Middleware returns the gin handler. A nil or disabled limiter lets every
// request through; Redis failures also let requests through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.client == nil || !rl.config.Enabled {
			c.Next()
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		key := fmt.Sprintf("ratelimit:tb:%s:%s:%s", c.Request.Method, path, c.ClientIP())
		now := float64(rl.now().UnixNano()) / float64(time.Second)

		allowed, err := tokenBucket.Run(c.Request.Context(), rl.client, []string{key},
			rl.config.RequestsPerSecond,
			rl.config.BurstCapacity,
			now,
		).Int64()
		if err != nil {
			logger.WithContext(c.Request.Context(), rl.log).Warn("rate limiter redis error, allowing request",
				zap.String("key", key),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if allowed == 0 {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, schema.ErrorOutput{
				Error: fmt.Sprintf("rate limit exceeded: %.2f requests/second (burst capacity: %d)",
					rl.config.RequestsPerSecond, rl.config.BurstCapacity),
			})
			return
		}

		c.Next()
	}
}
