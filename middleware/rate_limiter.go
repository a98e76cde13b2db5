// middleware/rate_limiter.go
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RateLimiterConfig defines a fixed window for one endpoint.
type RateLimiterConfig struct {
	RequestsPerWindow int
	WindowDuration    time.Duration
	KeyPrefix         string
}

// RateLimiter counts requests per client in Redis. Auth endpoints are the
// brute-force surface, so they get the tight windows.
type RateLimiter struct {
	rdb *redis.Client
}

func NewRateLimiter(rdb *redis.Client) *RateLimiter {
	return &RateLimiter{rdb: rdb}
}

// Allow increments the counter for key and reports whether the request fits
// inside the window.
func (l *RateLimiter) Allow(ctx context.Context, key string, cfg RateLimiterConfig) (bool, error) {
	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, key, cfg.WindowDuration).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(cfg.RequestsPerWindow), nil
}

// EndpointRateLimitMiddleware applies cfg per client IP. With a nil limiter
// (no Redis configured) it is a no-op; on Redis errors it fails open.
func EndpointRateLimitMiddleware(limiter *RateLimiter, cfg RateLimiterConfig, endpoint string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:%s:%s", cfg.KeyPrefix, endpoint, c.ClientIP())
		allowed, err := limiter.Allow(c.Request.Context(), key, cfg)
		if err != nil {
			log.Warn().Err(err).Str("endpoint", endpoint).Msg("rate limiter unavailable, failing open")
			c.Next()
			return
		}

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many requests. Please try again later.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
