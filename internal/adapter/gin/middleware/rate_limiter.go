package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"article-api/pkg/logger"
)

// RateLimiterConfig holds configuration for the rate limiter.
type RateLimiterConfig struct {
	RequestsPerSecond float64
	BurstCapacity     int
	Enabled           bool
}

// tokenBucket refills at rate tokens per second up to capacity and consumes one token per call.
// Returns {allowed, remaining, retry_after_seconds}.
var tokenBucket = redis.NewScript(`
local key = KEYS[1]
local rate = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local bucket = redis.call('HMGET', key, 'last_refill', 'tokens')
local last_refill = tonumber(bucket[1]) or now
local tokens = tonumber(bucket[2]) or capacity

local elapsed = math.max(0, now - last_refill)
tokens = math.min(capacity, tokens + elapsed * rate)

local allowed = 0
local retry_after = 0
if tokens >= 1 then
	tokens = tokens - 1
	allowed = 1
else
	retry_after = math.ceil((1 - tokens) / rate)
end

redis.call('HSET', key, 'last_refill', now, 'tokens', tokens)
redis.call('EXPIRE', key, ttl)

return {allowed, math.floor(tokens), retry_after}
`)

// Decision is the outcome of one rate limit check.
type Decision struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// RateLimiter throttles requests with a Redis-backed token bucket.
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

// ttlSeconds is how long an idle bucket lives: long enough to refill completely.
func (rl *RateLimiter) ttlSeconds() int64 {
	ttl := int64(math.Ceil(float64(rl.config.BurstCapacity) / rl.config.RequestsPerSecond))
	if ttl < 1 {
		ttl = 1
	}
	return ttl
}

// Allow consumes one token from the bucket stored under key.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	now := float64(rl.now().UnixMilli()) / 1000

	res, err := tokenBucket.Run(ctx, rl.client, []string{key},
		rl.config.RequestsPerSecond,
		rl.config.BurstCapacity,
		now,
		rl.ttlSeconds(),
	).Int64Slice()
	if err != nil {
		return Decision{Allowed: true}, fmt.Errorf("rate limit script: %w", err)
	}
	if len(res) != 3 {
		return Decision{Allowed: true}, fmt.Errorf("rate limit script: unexpected reply %v", res)
	}

	return Decision{
		Allowed:    res[0] == 1,
		Remaining:  res[1],
		RetryAfter: time.Duration(res[2]) * time.Second,
	}, nil
}

// Middleware returns a Gin middleware keyed by method, route and client IP.
// Redis failures let the request through.
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
		clientIP := c.ClientIP()
		key := fmt.Sprintf("ratelimit:tb:%s:%s:%s", c.Request.Method, path, clientIP)

		decision, err := rl.Allow(c.Request.Context(), key)
		if err != nil {
			logger.WithContext(c.Request.Context(), rl.log).Warn("rate limiter redis error, allowing request",
				zap.String("client_ip", clientIP),
				zap.String("path", path),
				zap.Error(err),
			)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.BurstCapacity))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(decision.Remaining, 10))

		if !decision.Allowed {
			logger.WithContext(c.Request.Context(), rl.log).Warn("rate limit exceeded",
				zap.String("client_ip", clientIP),
				zap.String("path", path),
			)
			c.Header("Retry-After", strconv.FormatInt(int64(decision.RetryAfter/time.Second), 10))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{Error: MessageTooManyAttempts})
			return
		}

		c.Next()
	}
}
