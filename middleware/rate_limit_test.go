package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiter(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Requests: 10,
		Window:   time.Minute,
	})

	assert.NotNil(t, rl)
	assert.Equal(t, 10, rl.config.Requests)
	assert.Equal(t, time.Minute, rl.config.Window)
	assert.NotNil(t, rl.config.KeyFunc)
	assert.NotNil(t, rl.config.Now)
	assert.Equal(t, "Too many requests. Please try again later.", rl.config.Message)
}

func TestRateLimiterAllow(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(RateLimitConfig{
		Requests: 2,
		Window:   time.Minute,
		Now:      func() time.Time { return now },
	})

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"), "keys are counted separately")

	now = now.Add(time.Minute)
	assert.True(t, rl.Allow("a"), "a new window starts")
	assert.Len(t, rl.store, 1, "expired keys are swept")
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := ExportRateLimiter(0)
	for i := 0; i < 100; i++ {
		require.True(t, rl.Allow("a"))
	}
	assert.Empty(t, rl.store)
}

func TestRateLimiterMiddleware(t *testing.T) {
	e := echo.New()
	rl := ExportRateLimiter(1)
	handler := rl.Middleware()(func(c echo.Context) error {
		return c.String(http.StatusOK, "success")
	})

	req := httptest.NewRequest(http.MethodGet, "/reports/export.xlsx", nil)
	rec := httptest.NewRecorder()
	assert.NoError(t, handler(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/reports/export.xlsx", nil)
	rec = httptest.NewRecorder()
	err := handler(e.NewContext(req, rec))

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusTooManyRequests, he.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}
