package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// DefaultIdle is how long a client can stay silent before its bucket is
// dropped.
const DefaultIdle = 3 * time.Minute

type client struct {
	limiter *rate.Limiter
	seen    time.Time
}

// IPRateLimiter keeps one token bucket per client address. Buckets idle
// for longer than the idle timeout are evicted.
type IPRateLimiter struct {
	ips       map[string]*client
	mu        *sync.Mutex
	r         rate.Limit
	b         int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips:       make(map[string]*client),
		mu:        &sync.Mutex{},
		r:         r,
		b:         b,
		idle:      DefaultIdle,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		l.evict(now)
	}

	c, exists := l.ips[ip]
	if !exists {
		c = &client{limiter: rate.NewLimiter(l.r, l.b)}
		l.ips[ip] = c
	}
	c.seen = now

	return c.limiter
}

// evict drops every client not seen within the idle timeout. Callers hold mu.
func (l *IPRateLimiter) evict(now time.Time) {
	for ip, c := range l.ips {
		if now.Sub(c.seen) >= l.idle {
			delete(l.ips, ip)
		}
	}
	l.lastSweep = now
}

// Len is the number of tracked clients.
func (l *IPRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.ips)
}

// Middleware rejects requests over the per-client budget with 429.
func (l *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.GetLimiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
