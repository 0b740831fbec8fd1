package middleware

import (
	"lexium/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestID adds a unique request ID to each request, reusing a valid
// incoming X-Request-ID, and binds a child logger carrying it
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(echo.HeaderXRequestID)
			if _, err := uuid.Parse(requestID); err != nil {
				requestID = uuid.New().String()
			}

			c.Request().Header.Set(echo.HeaderXRequestID, requestID)
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)
			c.Set("request_id", requestID)

			log := logger.GetLogger().With(zap.String("request_id", requestID))
			c.Set("logger", log)
			c.SetRequest(c.Request().WithContext(logger.WithContext(c.Request().Context(), log)))

			return next(c)
		}
	}
}

// GetRequestID returns the ID assigned by RequestID
func GetRequestID(c echo.Context) string {
	id, _ := c.Get("request_id").(string)
	return id
}
