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

func flashCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == flashCookieName {
			return c
		}
	}
	return nil
}

func TestFlashRoundTrip(t *testing.T) {
	e := echo.New()
	flasher := NewFlasher([]byte("0123456789abcdef0123456789abcdef"), false)

	// request 1 sets the message
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/cases", nil), rec)
	flasher.Set(c, FlashSuccess, "Case 00001 saved")
	cookie := flashCookie(rec)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	// request 2 reads and clears it
	req := httptest.NewRequest(http.MethodGet, "/cases", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)

	var got *Flash
	handler := flasher.Middleware()(func(c echo.Context) error {
		got = GetFlash(c)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	require.NotNil(t, got)
	assert.Equal(t, FlashSuccess, got.Kind)
	assert.Equal(t, "Case 00001 saved", got.Message)

	cleared := flashCookie(rec)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
}

func TestFlashRejectsForgedCookie(t *testing.T) {
	e := echo.New()
	flasher := NewFlasher([]byte("right-secret-right-secret-right-s"), false)
	other := NewFlasher([]byte("wrong-secret-wrong-secret-wrong-s"), false)

	forged, err := other.sign(Flash{Kind: FlashError, Message: "boom"}, time.Now())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: flashCookieName, Value: forged})
	c := e.NewContext(req, httptest.NewRecorder())

	handler := flasher.Middleware()(func(c echo.Context) error {
		assert.Nil(t, GetFlash(c))
		return nil
	})
	require.NoError(t, handler(c))
}

func TestFlashExpired(t *testing.T) {
	flasher := NewFlasher([]byte("0123456789abcdef0123456789abcdef"), false)
	old, err := flasher.sign(Flash{Kind: FlashSuccess, Message: "old"}, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = flasher.parse(old)
	assert.Error(t, err)
}

func TestFlashEmptyMessageIgnored(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	NewFlasher([]byte("secret"), false).Set(c, FlashSuccess, "   ")
	assert.Nil(t, flashCookie(rec))
}
