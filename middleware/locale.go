package middleware

import (
	"net/http"
	"strings"
	"time"

	"lexium/config"
	"lexium/services/i18n"

	"github.com/labstack/echo/v4"
)

const langCookieName = "lang"

// Locale middleware handles language detection and persistence.
// Priority:
// 1. Query param "lang" (sets cookie)
// 2. Cookie "lang"
// 3. Accept-Language header
// 4. Configured default language
func Locale(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			lang := ""
			if q := strings.ToLower(c.QueryParam("lang")); q != "" && i18n.IsSupported(q) {
				lang = q
				SetLanguageCookie(c, cfg, lang)
			} else if cookie, err := c.Cookie(langCookieName); err == nil && i18n.IsSupported(cookie.Value) {
				lang = cookie.Value
			}

			if lang == "" {
				lang = fromAcceptLanguage(c.Request().Header.Get("Accept-Language"))
			}
			if lang == "" {
				lang = cfg.DefaultLanguage
				if !i18n.IsSupported(lang) {
					lang = i18n.DefaultLanguage()
				}
			}

			// Echo context for handlers, request context for templates
			c.Set("locale", lang)
			c.SetRequest(c.Request().WithContext(i18n.WithLocale(c.Request().Context(), lang)))

			return next(c)
		}
	}
}

// fromAcceptLanguage returns the first supported language of the header, in header order
func fromAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		base := strings.ToLower(strings.SplitN(tag, "-", 2)[0])
		if base != "" && i18n.IsSupported(base) {
			return base
		}
	}
	return ""
}

// SetLanguageCookie sets the language cookie
func SetLanguageCookie(c echo.Context, cfg *config.Config, lang string) {
	cookie := new(http.Cookie)
	cookie.Name = langCookieName
	cookie.Value = lang
	cookie.Expires = time.Now().Add(24 * 365 * time.Hour) // 1 year
	cookie.Path = "/"
	cookie.HttpOnly = true
	cookie.SameSite = http.SameSiteLaxMode
	if cfg != nil && cfg.IsProduction() {
		cookie.Secure = true
	}
	c.SetCookie(cookie)
}

// GetLocale returns the current locale from context
func GetLocale(c echo.Context) string {
	if lang, ok := c.Get("locale").(string); ok {
		return lang
	}
	return i18n.DefaultLanguage()
}
