package logger

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitLogger(t *testing.T) {
	defer SetLogger(nil)

	err := InitLogger(&LogConfig{Level: "debug", Environment: "development", ServiceName: "lexium-test"})
	require.NoError(t, err)
	assert.True(t, GetLogger().Core().Enabled(zapcore.DebugLevel))

	err = InitLogger(&LogConfig{Level: "warn", Environment: "production", ServiceName: "lexium-test"})
	require.NoError(t, err)
	assert.False(t, GetLogger().Core().Enabled(zapcore.InfoLevel))
}

func TestContextHelpers(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	custom := zap.New(core)

	ctx := WithContext(context.Background(), custom)
	assert.Same(t, custom, FromContext(ctx))
	assert.Same(t, GetLogger(), FromContext(context.Background()))
}

func TestMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	e := echo.New()
	e.Use(Middleware())
	e.GET("/ok", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/missing", func(c echo.Context) error { return echo.NewHTTPError(http.StatusNotFound, "nope") })
	e.GET("/boom", func(c echo.Context) error { return errors.New("boom") })

	for _, path := range []string{"/ok", "/missing", "/boom"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, int64(http.StatusNotFound), entries[1].ContextMap()["status"])
}
