package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiterConfig struct {
	RequestsPerSecond int
	Burst             int
	CleanupInterval   time.Duration
	TTL               time.Duration
}

// ipLimiter tracks one token bucket per client IP. Each middleware
// instance owns its own map, so differently-tuned route groups never
// share buckets.
type ipLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      int
	burst    int

	ttl         time.Duration
	interval    time.Duration
	lastCleanup time.Time
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.lastCleanup) > l.interval {
		for ip, v := range l.visitors {
			if now.Sub(v.lastSeen) > l.ttl {
				delete(l.visitors, ip)
			}
		}
		l.lastCleanup = now
	}

	v, exists := l.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rate.Limit(l.rps), l.burst)
		l.visitors[ip] = &visitor{limiter, now}
		return limiter
	}

	v.lastSeen = now
	return v.limiter
}

// RateLimiterMiddleware limits requests per client IP. Used on the auth
// and recovery endpoints, which are the only brute-forceable surfaces.
// Stale entries are evicted in passing on lookups, no background
// goroutine is involved.
func RateLimiterMiddleware(config RateLimiterConfig) gin.HandlerFunc {
	if config.CleanupInterval == 0 {
		config.CleanupInterval = time.Minute
	}
	if config.TTL == 0 {
		config.TTL = 3 * time.Minute
	}

	l := &ipLimiter{
		visitors:    make(map[string]*visitor),
		rps:         config.RequestsPerSecond,
		burst:       config.Burst,
		ttl:         config.TTL,
		interval:    config.CleanupInterval,
		lastCleanup: time.Now(),
	}

	return func(c *gin.Context) {
		if !l.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests",
			})
			return
		}

		c.Next()
	}
}
