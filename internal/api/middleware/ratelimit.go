// internal/api/middleware/ratelimit.go
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"organizer-portal/internal/constants"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Limiter is satisfied by *ratelimit.RateLimiter.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, int, error)
}

// RateLimitMiddleware limits requests per client IP under key. A nil limiter
// or a non-positive limit disables the check.
func RateLimitMiddleware(rl Limiter, key string, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	if rl == nil || limit <= 0 {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return func(c *gin.Context) {
		allowed, count, err := rl.Allow(c.Request.Context(), fmt.Sprintf("%s:%s", key, c.ClientIP()), limit, window)
		if err != nil {
			// a broken Redis must not take the public widget down with it
			logger.Warn("rate limit check failed", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		remaining := limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(window).Unix()))

		if !allowed {
			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			if strings.Contains(c.GetHeader("Accept"), "text/html") {
				c.String(http.StatusTooManyRequests, "Too many requests, try again shortly.")
			} else {
				c.JSON(http.StatusTooManyRequests, gin.H{
					"error":       "Rate limit exceeded",
					"retry_after": window.Seconds(),
				})
			}
			c.Abort()
			return
		}

		c.Next()
	}
}

func WidgetRateLimit(rl Limiter, perMinute int, logger *zap.Logger) gin.HandlerFunc {
	return RateLimitMiddleware(rl, "widget", perMinute, time.Minute, logger)
}

func InviteRateLimit(rl Limiter, logger *zap.Logger) gin.HandlerFunc {
	return RateLimitMiddleware(rl, "invite", constants.InviteLinkLimit, time.Minute, logger)
}

func TeamJoinRateLimit(rl Limiter, logger *zap.Logger) gin.HandlerFunc {
	return RateLimitMiddleware(rl, "join", constants.TeamJoinLimit, time.Minute, logger)
}
