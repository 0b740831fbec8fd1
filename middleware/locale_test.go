package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"lexium/config"
	"lexium/services/i18n"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runLocale(t *testing.T, cfg *config.Config, req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var ctxLang string
	handler := Locale(cfg)(func(c echo.Context) error {
		ctxLang = i18n.GetLocale(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	assert.Equal(t, c.Get("locale"), ctxLang)
	return c, rec
}

func TestLocale(t *testing.T) {
	require.NoError(t, i18n.Load())
	cfg := &config.Config{Environment: "development", DefaultLanguage: "hu"}

	t.Run("PriorityQueryParam", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
		req.AddCookie(&http.Cookie{Name: "lang", Value: "hu"})
		c, rec := runLocale(t, cfg, req)

		assert.Equal(t, "en", c.Get("locale"))
		found := false
		for _, cookie := range rec.Result().Cookies() {
			if cookie.Name == "lang" {
				assert.Equal(t, "en", cookie.Value)
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("UnsupportedQueryParamIgnored", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?lang=xx", nil)
		c, rec := runLocale(t, cfg, req)
		assert.Equal(t, "hu", c.Get("locale"))
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("PriorityCookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "lang", Value: "en"})
		req.Header.Set("Accept-Language", "hu-HU")
		c, _ := runLocale(t, cfg, req)
		assert.Equal(t, "en", c.Get("locale"))
	})

	t.Run("PriorityHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "de-DE,en-US;q=0.9,hu;q=0.8")
		c, _ := runLocale(t, cfg, req)
		assert.Equal(t, "en", c.Get("locale"))
	})

	t.Run("DefaultLanguage", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c, _ := runLocale(t, cfg, req)
		assert.Equal(t, "hu", c.Get("locale"))
		assert.Equal(t, "hu", GetLocale(c))
	})
}

func TestGetLocaleWithoutMiddleware(t *testing.T) {
	c := echo.New().NewContext(nil, nil)
	assert.Equal(t, i18n.DefaultLanguage(), GetLocale(c))
}
