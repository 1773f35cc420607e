package handler

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// RequestLogger logs every request with its status and latency.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// IPRateLimiter limits requests per client IP. Limiters of clients idle for
// longer than the idle timeout are dropped by Run.
type IPRateLimiter struct {
	limiters sync.Map
	rate     rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// NewIPRateLimiter allows each IP perSecond requests with the given burst.
// idle <= 0 keeps limiters forever.
func NewIPRateLimiter(perSecond float64, burst int, idle time.Duration, log zerolog.Logger) *IPRateLimiter {
	return &IPRateLimiter{
		rate:  rate.Limit(perSecond),
		burst: burst,
		idle:  idle,
		now:   time.Now,
		log:   log,
	}
}

func (i *IPRateLimiter) limiter(ip string) *rate.Limiter {
	v, ok := i.limiters.Load(ip)
	if !ok {
		v, _ = i.limiters.LoadOrStore(ip, &clientLimiter{limiter: rate.NewLimiter(i.rate, i.burst)})
	}
	client := v.(*clientLimiter)
	client.lastSeen.Store(i.now().UnixNano())
	return client.limiter
}

// Evict drops the limiters of clients not seen since before now minus the
// idle timeout and returns how many were dropped.
func (i *IPRateLimiter) Evict(now time.Time) int {
	if i.idle <= 0 {
		return 0
	}
	cutoff := now.Add(-i.idle).UnixNano()
	evicted := 0
	i.limiters.Range(func(key, value any) bool {
		if value.(*clientLimiter).lastSeen.Load() < cutoff {
			i.limiters.Delete(key)
			evicted++
		}
		return true
	})
	return evicted
}

// Run evicts idle limiters until ctx is done.
func (i *IPRateLimiter) Run(ctx context.Context) error {
	if i.idle <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(i.idle)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if n := i.Evict(now); n > 0 {
				i.log.Debug().Int("count", n).Msg("evicted idle rate limiters")
			}
		}
	}
}

// RateLimit returns a middleware that answers 429 once an IP exceeds its limit.
func (i *IPRateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !i.limiter(ip).Allow() {
			i.log.Warn().Str("client_ip", ip).Str("path", c.Request.URL.Path).Msg("rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
