package httpmiddleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter applies a per-client token bucket. State lives in process
// memory, so limits are per instance.
type RateLimiter struct {
	capacity  int
	perMinute int

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// NewRateLimiter allows perMinute requests per client with bursts up to
// capacity; capacity <= 0 defaults to perMinute.
func NewRateLimiter(capacity, perMinute int) *RateLimiter {
	if capacity <= 0 {
		capacity = perMinute
	}
	return &RateLimiter{
		capacity:  capacity,
		perMinute: perMinute,
		buckets:   make(map[string]*bucket),
	}
}

// Middleware enforces the limit keyed by client IP.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if key == "" {
			key = "unknown"
		}
		if !l.allow(key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"success": false, "message": "too many requests"})
			return
		}
		c.Next()
	}
}

func (l *RateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.buckets[key]
	if !ok {
		l.buckets[key] = &bucket{tokens: float64(l.capacity) - 1, lastSeen: now}
		l.prune(now)
		return true
	}

	b.tokens += now.Sub(b.lastSeen).Minutes() * float64(l.perMinute)
	if b.tokens > float64(l.capacity) {
		b.tokens = float64(l.capacity)
	}
	b.lastSeen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// prune drops buckets idle long enough to have fully refilled.
func (l *RateLimiter) prune(now time.Time) {
	if len(l.buckets) < 10000 {
		return
	}
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > 10*time.Minute {
			delete(l.buckets, key)
		}
	}
}
