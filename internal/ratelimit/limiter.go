// Package ratelimit throttles per-user query volume with a fixed Redis
// window. The limiter fails open: if Redis is unreachable the query goes
// through rather than blocking every user on an infrastructure hiccup.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/ibanezbetes/trinity-sub010/internal/common/config"
	"github.com/ibanezbetes/trinity-sub010/internal/common/logger"
	"github.com/ibanezbetes/trinity-sub010/internal/common/metrics"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:user:"

// Limiter enforces a per-user query budget over a fixed window.
type Limiter struct {
	client *redis.Client
	cfg    config.RateLimitConfig
	logger logger.Logger
}

func NewLimiter(client *redis.Client, cfg config.RateLimitConfig, log logger.Logger) *Limiter {
	return &Limiter{
		client: client,
		cfg:    cfg,
		logger: log.With(map[string]interface{}{
			"component": "rate-limiter",
		}),
	}
}

// Allow reports whether the user may issue another query in the current
// window. The first query of a window creates the counter and arms its
// expiry.
func (l *Limiter) Allow(ctx context.Context, userID string) bool {
	key := keyPrefix + userID

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("rate limit check failed, allowing request", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
		return true
	}

	if count == 1 {
		window := time.Duration(l.cfg.WindowSeconds) * time.Second
		if err := l.client.Expire(ctx, key, window).Err(); err != nil {
			l.logger.Warn("failed to arm rate limit window", map[string]interface{}{
				"userId": userID,
				"error":  err.Error(),
			})
		}
	}

	if count > int64(l.cfg.MaxQueriesPerMinute) {
		metrics.RateLimitHits.Inc()
		l.logger.Info("rate limit exceeded", map[string]interface{}{
			"userId": userID,
			"count":  count,
			"limit":  l.cfg.MaxQueriesPerMinute,
		})
		return false
	}

	return true
}

// Remaining returns how many queries the user has left in the current
// window. Redis errors report the full budget.
func (l *Limiter) Remaining(ctx context.Context, userID string) int {
	count, err := l.client.Get(ctx, keyPrefix+userID).Int()
	if err != nil {
		return l.cfg.MaxQueriesPerMinute
	}
	remaining := l.cfg.MaxQueriesPerMinute - count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// RetryAfter returns how long until the user's window resets.
func (l *Limiter) RetryAfter(ctx context.Context, userID string) time.Duration {
	ttl, err := l.client.TTL(ctx, keyPrefix+userID).Result()
	if err != nil || ttl < 0 {
		return time.Duration(l.cfg.WindowSeconds) * time.Second
	}
	return ttl
}

// LimitMessage is the in-character rejection shown to a throttled user.
func LimitMessage(retryAfter time.Duration) string {
	seconds := int(retryAfter.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	return fmt.Sprintf("Has alcanzado el límite de consultas por minuto. Dame %d segundos de respiro y seguimos hablando de cine.", seconds)
}
