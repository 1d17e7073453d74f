package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/denisAlshanov/mediafetch/internal/config"
	"github.com/denisAlshanov/mediafetch/internal/models"
	"github.com/denisAlshanov/mediafetch/internal/utils"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter hands out one token bucket per client. A bucket holds limit
// tokens and refills at limit per window.
type rateLimiter struct {
	visitors map[string]*visitor
	mu       sync.Mutex
	limit    int
	window   time.Duration
	every    rate.Limit
	done     chan struct{}
}

// newRateLimiter starts a cleanup loop that runs until ctx is done.
func newRateLimiter(ctx context.Context, limit int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
		every:    rate.Every(window / time.Duration(limit)),
		done:     make(chan struct{}),
	}

	go rl.cleanup(ctx)

	return rl
}

// cleanup forgets clients idle for longer than a window; their bucket would be full anyway.
func (rl *rateLimiter) cleanup(ctx context.Context) {
	defer close(rl.done)

	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		rl.mu.Lock()
		now := time.Now()
		for key, v := range rl.visitors {
			if now.Sub(v.lastSeen) > rl.window {
				delete(rl.visitors, key)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *rateLimiter) isAllowed(key string) bool {
	rl.mu.Lock()
	v, exists := rl.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rl.every, rl.limit)}
		rl.visitors[key] = v
	}
	v.lastSeen = time.Now()
	rl.mu.Unlock()

	return v.limiter.Allow()
}

// RateLimitMiddleware limits requests per client IP. It is a no-op when
// RateLimitRequests or RateLimitWindow is not positive. Idle clients are
// forgotten in the background until ctx is done.
func RateLimitMiddleware(ctx context.Context, cfg *config.APIConfig) gin.HandlerFunc {
	if cfg.RateLimitRequests <= 0 || cfg.RateLimitWindow <= 0 {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	limiter := newRateLimiter(ctx, cfg.RateLimitRequests, cfg.RateLimitWindow)

	return func(c *gin.Context) {
		key := c.ClientIP()

		if !limiter.isAllowed(key) {
			appErr := utils.NewRateLimitError()
			utils.LogWarn(c.Request.Context(), "Rate limit exceeded", utils.Fields{
				"ip": key,
			})
			c.AbortWithStatusJSON(appErr.StatusCode, models.ErrorResponse{
				Detail:    appErr.Message,
				Code:      string(appErr.Code),
				RequestID: c.GetString("request_id"),
				Timestamp: time.Now().Format(time.RFC3339),
			})
			return
		}

		c.Next()
	}
}
