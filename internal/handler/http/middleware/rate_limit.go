// File: internal/handler/http/middleware/rate_limit.go
package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/apurv-1/RC4Community/internal/config"
)

// RateLimiter is the contract the middleware needs from the redis-backed
// limiter.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimitMiddleware applies a per-client-IP rate limit rule. Limiter
// failures let the request through rather than blocking logins on an
// unavailable redis.
func RateLimitMiddleware(limiter RateLimiter, rule config.RateLimitRule, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rule.Enabled || limiter == nil {
			c.Next()
			return
		}

		key := c.ClientIP()
		allowed, err := limiter.Allow(c.Request.Context(), key, rule.Limit, rule.Window)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			logger.Warn("Rate limit exceeded",
				zap.String("key", key),
				zap.Int("limit", rule.Limit),
				zap.Duration("window", rule.Window),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests"})
			return
		}

		c.Next()
	}
}
