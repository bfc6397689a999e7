package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingLimiter struct {
	counts map[string]int
	err    error
}

func (l *countingLimiter) Allow(_ context.Context, key string, limit int, _ time.Duration) (bool, int, error) {
	if l.err != nil {
		return false, 0, l.err
	}
	l.counts[key]++
	return l.counts[key] <= limit, l.counts[key], nil
}

func newRouter(rl Limiter, limit int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", RateLimitMiddleware(rl, "test", limit, time.Minute, zap.NewNop()), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func get(r http.Handler, accept string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := &countingLimiter{counts: map[string]int{}}
	r := newRouter(rl, 2)

	w := get(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, get(r, "").Code)

	w = get(r, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "Rate limit exceeded")

	w = get(r, "text/html")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too many requests")

	assert.Equal(t, 4, rl.counts["test:10.0.0.1"])
}

func TestRateLimitMiddleware_Disabled(t *testing.T) {
	assert.Equal(t, http.StatusOK, get(newRouter(nil, 2), "").Code)

	rl := &countingLimiter{counts: map[string]int{}}
	r := newRouter(rl, 0)
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, get(r, "").Code)
	}
	assert.Empty(t, rl.counts)
}

func TestRateLimitMiddleware_FailsOpen(t *testing.T) {
	r := newRouter(&countingLimiter{err: errors.New("redis down")}, 1)
	w := get(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
}
