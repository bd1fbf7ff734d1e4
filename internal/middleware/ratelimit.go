package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter is a sliding-window in-memory limiter. Keys are the
// authenticated user id when present, otherwise the client IP.
type RateLimiter struct {
	mu      sync.Mutex
	seen    map[string][]time.Time
	limit   int
	window  time.Duration
	lastGC  time.Time
	gcEvery time.Duration
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		seen:    make(map[string][]time.Time),
		limit:   limit,
		window:  window,
		lastGC:  time.Now(),
		gcEvery: time.Minute,
	}
}

func (r *RateLimiter) Allow(key string, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := now.Add(-r.window)
	kept := r.seen[key][:0]
	for _, t := range r.seen[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if now.Sub(r.lastGC) > r.gcEvery {
		r.gc(cutoff)
		r.lastGC = now
	}
	if len(kept) >= r.limit {
		r.seen[key] = kept
		return false
	}
	r.seen[key] = append(kept, now)
	return true
}

// gc drops keys whose whole window expired. Caller holds the mutex.
func (r *RateLimiter) gc(cutoff time.Time) {
	for k, times := range r.seen {
		if len(times) == 0 || !times[len(times)-1].After(cutoff) {
			delete(r.seen, k)
		}
	}
}

// RateLimit limits by user id when authenticated, by client IP otherwise.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if v, ok := c.Get("user_id"); ok {
			if uid, ok := v.(uint); ok {
				key = "u:" + strconv.FormatUint(uint64(uid), 10)
			}
		}
		if !limiter.Allow(key, time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
