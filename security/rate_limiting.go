package security

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	redis *redis.Client
}

func NewRateLimiter(redisClient *redis.Client) *RateLimiter {
	return &RateLimiter{redis: redisClient}
}

// LoginRateLimit caps login attempts per client address inside a sliding
// window. A Redis failure fails open: throttling is protection, not a
// dependency.
func (r *RateLimiter) LoginRateLimit(maxAttempts int64, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := fmt.Sprintf("login_attempts:%s", c.RealIP())

			count, err := r.redis.Incr(context.Background(), key).Result()
			if err == nil {
				if count == 1 {
					r.redis.Expire(context.Background(), key, window)
				}
				if count > maxAttempts {
					return c.JSON(429, map[string]string{
						"error": "Too many login attempts. Please try again later.",
					})
				}
			}

			return next(c)
		}
	}
}
