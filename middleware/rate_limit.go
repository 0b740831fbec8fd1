package middleware

import (
	"net/http"
	"sync"
	"time"

	"lexium/metrics"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig defines the configuration for rate limiting
type RateLimitConfig struct {
	// Name labels the limiter in the rejection metric
	Name string
	// Requests is the maximum number of requests allowed within the window.
	// Zero disables the limiter.
	Requests int
	// Window is the time window for rate limiting
	Window time.Duration
	// KeyFunc returns the key requests are counted under (defaults to IP)
	KeyFunc func(c echo.Context) string
	// Message is the error message returned when rate limit is exceeded
	Message string
	// Now is replaced in tests
	Now func() time.Time
}

type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

// RateLimiter counts requests per key in fixed windows
type RateLimiter struct {
	config    RateLimitConfig
	store     map[string]*rateLimitEntry
	lastSweep time.Time
	mu        sync.Mutex
}

// NewRateLimiter creates a new rate limiter with the given configuration
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c echo.Context) string {
			return c.RealIP()
		}
	}
	if config.Message == "" {
		config.Message = "Too many requests. Please try again later."
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &RateLimiter{
		config: config,
		store:  make(map[string]*rateLimitEntry),
	}
}

// ExportRateLimiter limits the PDF, CSV and workbook exports to perMinute
// requests per client IP
func ExportRateLimiter(perMinute int) *RateLimiter {
	return NewRateLimiter(RateLimitConfig{
		Name:     "export",
		Requests: perMinute,
		Window:   time.Minute,
		Message:  "Too many exports. Please wait a minute before trying again.",
	})
}

// Allow records a request under key and reports whether it fits the window
func (rl *RateLimiter) Allow(key string) bool {
	if rl.config.Requests <= 0 {
		return true
	}
	now := rl.config.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.sweep(now)

	entry, exists := rl.store[key]
	if !exists || !now.Before(entry.expiresAt) {
		rl.store[key] = &rateLimitEntry{count: 1, expiresAt: now.Add(rl.config.Window)}
		return true
	}
	if entry.count >= rl.config.Requests {
		return false
	}
	entry.count++
	return true
}

// sweep drops expired entries at most once per window; caller holds mu
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.config.Window {
		return
	}
	for key, entry := range rl.store {
		if !now.Before(entry.expiresAt) {
			delete(rl.store, key)
		}
	}
	rl.lastSweep = now
}

// Middleware returns the rate limiting middleware
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rl.Allow(rl.config.KeyFunc(c)) {
				return next(c)
			}
			metrics.RateLimited.WithLabelValues(rl.config.Name).Inc()
			c.Response().Header().Set("Retry-After", "60")
			return echo.NewHTTPError(http.StatusTooManyRequests, rl.config.Message)
		}
	}
}
