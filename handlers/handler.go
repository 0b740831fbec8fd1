package handlers

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"time"

	"lexium/config"
	"lexium/middleware"
	"lexium/services"
	"lexium/services/i18n"
	"lexium/templates/components"

	"github.com/a-h/templ"
	"github.com/angelofallars/htmx-go"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Handler carries the dependencies of the HTTP handlers
type Handler struct {
	DB      *gorm.DB
	Cfg     *config.Config
	PDF     services.PDFRenderer
	Storage services.StorageProvider
	Mailer  services.Mailer
	Flash   *middleware.Flasher
	// Now is replaced in tests
	Now func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// db returns the database session bound to the request context
func (h *Handler) db(c echo.Context) *gorm.DB {
	return h.DB.WithContext(c.Request().Context())
}

func t(c echo.Context, key string, args ...map[string]interface{}) string {
	return i18n.T(c.Request().Context(), key, args...)
}

// page builds the common page data; titleKey is translated
func (h *Handler) page(c echo.Context, titleKey string, args ...map[string]interface{}) components.Page {
	p := components.Page{
		Title:     t(c, titleKey, args...),
		Path:      c.Request().URL.Path,
		CSRFToken: middleware.GetCSRFToken(c),
	}
	if flash := middleware.GetFlash(c); flash != nil {
		p.FlashKind = flash.Kind
		p.FlashMessage = flash.Message
	}
	return p
}

// render writes a component as the HTML response
func render(c echo.Context, status int, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// renderString renders a component into a string, for PDF bodies
func renderString(ctx context.Context, component templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// isHTMX reports whether the request was issued by htmx
func isHTMX(c echo.Context) bool {
	return htmx.IsHTMX(c.Request())
}

// redirect stores a flash message and sends the browser to path. htmx
// requests get an HX-Redirect header instead of a 303.
func (h *Handler) redirect(c echo.Context, path, kind, message string) error {
	if h.Flash != nil {
		h.Flash.Set(c, kind, message)
	}
	if isHTMX(c) {
		return htmx.NewResponse().Redirect(path).Write(c.Response().Writer)
	}
	return c.Redirect(http.StatusSeeOther, path)
}

// parseID reads a positive numeric path parameter
func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "Not found")
	}
	return uint(id), nil
}

// parseOptionalID reads an optional numeric form or query value; empty is 0
func parseOptionalID(field, value string) (uint, error) {
	if value == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, &services.ValidationError{Field: field, Message: "invalid identifier"}
	}
	return uint(id), nil
}

func checkbox(value string) bool {
	switch value {
	case "1", "on", "true", "yes":
		return true
	}
	return false
}

func boolValue(b bool) string {
	if b {
		return "1"
	}
	return ""
}

func idValue(id uint) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(id), 10)
}

func optionalIDValue(id *uint) string {
	if id == nil {
		return ""
	}
	return idValue(*id)
}
