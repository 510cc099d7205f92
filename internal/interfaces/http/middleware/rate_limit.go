// internal/interfaces/http/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/foodorder-backend/internal/config"
)

// bucket tracks a fixed-window request count for one client IP.
type bucket struct {
	count   int
	resetAt time.Time
}

type rateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	max     int
	window  time.Duration
}

func (r *rateLimiter) allow(ip string) (remaining int, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	b, exists := r.buckets[ip]
	if !exists || now.After(b.resetAt) {
		b = &bucket{resetAt: now.Add(r.window)}
		r.buckets[ip] = b

		// Opportunistic eviction keeps the map bounded without a purge
		// goroutine; the server handles one local client in practice.
		for key, old := range r.buckets {
			if now.After(old.resetAt) {
				delete(r.buckets, key)
			}
		}
	}

	b.count++
	remaining = r.max - b.count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, b.count <= r.max
}

// RateLimit implements per-IP rate limiting with an in-memory fixed window.
func RateLimit(cfg *config.Config) gin.HandlerFunc {
	limiter := &rateLimiter{
		buckets: make(map[string]*bucket),
		max:     cfg.Security.RateLimitPerMinute,
		window:  time.Minute,
	}

	return func(c *gin.Context) {
		remaining, ok := limiter.allow(c.ClientIP())

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(limiter.window).Unix(), 10))

		if !ok {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
