package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/places-gateway/internal/logging"
)

// RequestID tags each request with X-Request-ID, generating one when the
// caller sent none. The identifier is stored on the echo context and on the
// request context, so service-level log lines carry it as request_id.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			rid := strings.TrimSpace(req.Header.Get(echo.HeaderXRequestID))
			if rid == "" {
				rid = uuid.NewString()
			}

			c.Set(ContextKeyRequestID, rid)
			c.SetRequest(req.WithContext(logging.WithRequestID(req.Context(), rid)))
			c.Response().Header().Set(echo.HeaderXRequestID, rid)

			return next(c)
		}
	}
}

// RequestIDFromContext extracts the request identifier if available.
func RequestIDFromContext(c echo.Context) string {
	if rid, ok := c.Get(ContextKeyRequestID).(string); ok {
		return rid
	}
	return logging.RequestID(c.Request().Context())
}
