package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"lexium/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	flashCookieName = "lexium_flash"
	flashTTL        = 5 * time.Minute
	flashContextKey = "flash"
)

// Flash kinds
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot message shown on the page after a redirect
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type flashClaims struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	jwt.RegisteredClaims
}

// Flasher stores flash messages in an HS256-signed cookie
type Flasher struct {
	secret []byte
	secure bool
}

// NewFlasher creates a Flasher signing with secret
func NewFlasher(secret []byte, secure bool) *Flasher {
	return &Flasher{secret: secret, secure: secure}
}

// Set stores a flash message for the next request
func (f *Flasher) Set(c echo.Context, kind, message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	token, err := f.sign(Flash{Kind: kind, Message: message}, time.Now())
	if err != nil {
		logger.FromEcho(c).Warn("Failed to sign flash message", zap.Error(err))
		return
	}
	f.writeCookie(c, token, time.Now().Add(flashTTL))
}

func (f *Flasher) sign(flash Flash, now time.Time) (string, error) {
	claims := flashClaims{
		Kind:    flash.Kind,
		Message: flash.Message,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(flashTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(f.secret)
}

func (f *Flasher) parse(raw string) (*Flash, error) {
	claims := &flashClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return f.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid flash cookie: %w", err)
	}
	return &Flash{Kind: claims.Kind, Message: claims.Message}, nil
}

func (f *Flasher) writeCookie(c echo.Context, value string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   f.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Middleware pops the flash cookie of the request into the context
func (f *Flasher) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(flashCookieName)
			if err == nil && cookie.Value != "" {
				f.writeCookie(c, "", time.Now().Add(-1*time.Hour))
				if flash, err := f.parse(cookie.Value); err == nil {
					c.Set(flashContextKey, flash)
				}
			}
			return next(c)
		}
	}
}

// GetFlash returns the flash message of the current request, or nil
func GetFlash(c echo.Context) *Flash {
	flash, _ := c.Get(flashContextKey).(*Flash)
	return flash
}
