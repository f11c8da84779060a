package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig bounds conversions per client IP.
type RateLimitConfig struct {
	PerMinute int
	Burst     int
}

// DefaultRateLimit matches the original service's 10/minute per client.
var DefaultRateLimit = RateLimitConfig{PerMinute: 10, Burst: 10}

type ipLimiter struct {
	mu       sync.Mutex
	limiters map[string]*entry
	cfg      RateLimitConfig
}

type entry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(cfg RateLimitConfig) *ipLimiter {
	if cfg.PerMinute <= 0 {
		cfg = DefaultRateLimit
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.PerMinute
	}
	return &ipLimiter{limiters: make(map[string]*entry), cfg: cfg}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.limiters[ip]
	if !ok {
		e = &entry{lim: rate.NewLimiter(rate.Limit(float64(l.cfg.PerMinute)/60.0), l.cfg.Burst)}
		l.limiters[ip] = e
	}
	e.lastSeen = time.Now()

	// Opportunistic sweep keeps the map from growing unbounded.
	if len(l.limiters) > 1000 {
		cutoff := time.Now().Add(-10 * time.Minute)
		for ip, e := range l.limiters {
			if e.lastSeen.Before(cutoff) {
				delete(l.limiters, ip)
			}
		}
	}

	return e.lim.Allow()
}

// rateLimitByIP rejects clients exceeding the configured rate with 429,
// re-rendering the form page the way the rest of the flow does.
func rateLimitByIP(cfg RateLimitConfig) gin.HandlerFunc {
	l := newIPLimiter(cfg)
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.HTML(http.StatusTooManyRequests, "index.html", gin.H{
				"ErrorMessage": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
