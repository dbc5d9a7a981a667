package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"cctv-admin-gateway/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window request counter backed by redis, keyed by
// client IP. It exists to slow down credential stuffing on the login
// endpoint; it is not a general traffic shaper.
type Limiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func NewLimiter(rdb *redis.Client, limit int, window time.Duration) *Limiter {
	return &Limiter{rdb: rdb, limit: limit, window: window}
}

// Allow counts one attempt for key and reports whether it is still
// under the limit. Redis errors fail open: an unavailable limiter must
// not lock everyone out of login.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	full := fmt.Sprintf("ratelimit:login:%s", key)

	pipe := l.rdb.TxPipeline()
	count := pipe.Incr(ctx, full)
	pipe.Expire(ctx, full, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, err
	}
	return count.Val() <= int64(l.limit), nil
}

// Middleware rejects over-limit requests with 429 and a Retry-After hint.
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.FromGin(c).Warn("rate limiter unavailable", "err", err)
		}
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts"})
			return
		}
		c.Next()
	}
}
