// File: internal/utils/rate/rate.go
package rate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Limiter is a redis-backed fixed-window rate limiter.
type Limiter struct {
	client *redis.Client
	logger *zap.Logger
}

// NewLimiter creates a rate limiter on top of the given redis client.
func NewLimiter(client *redis.Client, logger *zap.Logger) *Limiter {
	return &Limiter{
		client: client,
		logger: logger.Named("rate_limiter"),
	}
}

// Allow reports whether another request under key is permitted within the
// window. Redis failures allow the request so an unavailable limiter never
// locks users out.
func (l *Limiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	redisKey := fmt.Sprintf("rate:%s", key)

	count, err := l.client.Get(ctx, redisKey).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		l.logger.Error("Failed to get rate limit count", zap.Error(err), zap.String("key", key))
		return true, err
	}

	if errors.Is(err, redis.Nil) {
		if err := l.client.Set(ctx, redisKey, 1, window).Err(); err != nil {
			l.logger.Error("Failed to set rate limit count", zap.Error(err), zap.String("key", key))
			return true, err
		}
		return true, nil
	}

	if count >= limit {
		return false, nil
	}

	if _, err := l.client.Incr(ctx, redisKey).Result(); err != nil {
		l.logger.Error("Failed to increment rate limit count", zap.Error(err), zap.String("key", key))
		return true, err
	}

	ttl, err := l.client.TTL(ctx, redisKey).Result()
	if err != nil {
		l.logger.Error("Failed to get TTL", zap.Error(err), zap.String("key", key))
	}
	if ttl < 0 {
		if err := l.client.Expire(ctx, redisKey, window).Err(); err != nil {
			l.logger.Error("Failed to set expiration", zap.Error(err), zap.String("key", key))
		}
	}

	return true, nil
}
