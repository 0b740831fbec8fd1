package handlers

import (
	"errors"
	"net/http"
	"strings"

	"lexium/logger"
	"lexium/services"
	"lexium/templates/components"
	"lexium/templates/pages"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// httpError translates a service error into an HTTP error. Storage failures
// are logged and hidden behind a generic message.
func httpError(c echo.Context, err error) error {
	var validation *services.ValidationError
	switch {
	case errors.As(err, &validation):
		return echo.NewHTTPError(http.StatusBadRequest, validation.Error())
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		logger.FromEcho(c).Error("Request failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}

func isConflict(err error) bool {
	return errors.Is(err, services.ErrConflict)
}

// formError puts a service error on the form. It returns false for errors a
// form cannot show, which the caller turns into an HTTP error.
func formError(form *pages.FormState, err error) bool {
	var validation *services.ValidationError
	if errors.As(err, &validation) {
		form.Fail(validation.Field, validation.Message)
		return true
	}
	if errors.Is(err, services.ErrConflict) {
		form.Fail("", err.Error())
		return true
	}
	return false
}

// ErrorHandler renders errors as JSON for /api routes and as an error page
// for everything else
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	} else {
		logger.FromEcho(c).Error("Unhandled error", zap.Error(err))
	}

	var writeErr error
	switch {
	case c.Request().Method == http.MethodHead:
		writeErr = c.NoContent(code)
	case strings.HasPrefix(c.Request().URL.Path, "/api/"):
		writeErr = c.JSON(code, map[string]string{"error": message})
	default:
		page := components.Page{
			Title: http.StatusText(code),
			Path:  c.Request().URL.Path,
		}
		writeErr = render(c, code, pages.ErrorPage(page, message))
	}
	if writeErr != nil {
		logger.FromEcho(c).Warn("Failed to write error response", zap.Error(writeErr))
	}
}
