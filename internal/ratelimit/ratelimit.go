// Package ratelimit provides per-IP request throttling for the auth
// endpoints, guarding the login route against brute force attempts.
package ratelimit

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// Config controls the token bucket applied to each client IP.
type Config struct {
	// Rate is the sustained number of requests per second.
	Rate rate.Limit

	// Burst is the number of requests allowed to exceed the rate in a spike.
	Burst int

	// CleanupInterval is how often idle limiters are evicted.
	CleanupInterval time.Duration

	// IdleTimeout is how long a limiter may sit unused before eviction.
	IdleTimeout time.Duration
}

// DefaultLoginConfig throttles login attempts to a handful per minute
// per IP while allowing a short burst for legitimate retries.
func DefaultLoginConfig() Config {
	return Config{
		Rate:            rate.Every(12 * time.Second), // 5 per minute
		Burst:           5,
		CleanupInterval: 10 * time.Minute,
		IdleTimeout:     30 * time.Minute,
	}
}

// Limiter tracks a token bucket per client IP.
type Limiter struct {
	limiters sync.Map // IP address -> *limiterEntry
	logger   *slog.Logger
	config   Config
	cancel   context.CancelFunc
}

// limiterEntry wraps a rate limiter with its last access time, stored as
// a Unix timestamp for atomic access.
type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess atomic.Int64
}

// NewLimiter creates a limiter and starts its cleanup goroutine. Call
// Shutdown during graceful shutdown to stop it.
func NewLimiter(logger *slog.Logger, config Config) *Limiter {
	ctx, cancel := context.WithCancel(context.Background())

	l := &Limiter{
		logger: logger,
		config: config,
		cancel: cancel,
	}
	go l.cleanupLoop(ctx)
	return l
}

// Middleware returns an echo middleware that rejects requests over the
// per-IP limit with 429 and a Retry-After header.
//
// The client IP comes from c.RealIP(); deployments behind a proxy must
// configure echo's IPExtractor so forged X-Forwarded-For headers cannot
// bypass the limit.
func (l *Limiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			if !l.limiterFor(ip).Allow() {
				l.logger.Warn("rate limit exceeded",
					slog.String("ip", ip),
					slog.String("path", c.Path()))

				c.Response().Header().Set("Retry-After", "60")
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many attempts, try again later")
			}

			return next(c)
		}
	}
}

// Shutdown stops the cleanup goroutine.
func (l *Limiter) Shutdown() {
	l.cancel()
}

func (l *Limiter) limiterFor(ip string) *rate.Limiter {
	now := time.Now().Unix()

	if v, ok := l.limiters.Load(ip); ok {
		entry := v.(*limiterEntry)
		entry.lastAccess.Store(now)
		return entry.limiter
	}

	entry := &limiterEntry{limiter: rate.NewLimiter(l.config.Rate, l.config.Burst)}
	entry.lastAccess.Store(now)
	if existing, loaded := l.limiters.LoadOrStore(ip, entry); loaded {
		entry = existing.(*limiterEntry)
		entry.lastAccess.Store(now)
	}
	return entry.limiter
}

func (l *Limiter) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(l.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-l.config.IdleTimeout).Unix()
			l.limiters.Range(func(key, value any) bool {
				entry := value.(*limiterEntry)
				if entry.lastAccess.Load() < cutoff {
					l.limiters.Delete(key)
				}
				return true
			})
		}
	}
}
