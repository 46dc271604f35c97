package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/octobees/places-gateway/internal/logging"
)

// Logging writes a concise structured line for each HTTP request.
func Logging(logger *slog.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			level := slog.LevelInfo
			if status >= 500 {
				level = slog.LevelError
			}

			attrs := []slog.Attr{
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.Int("status", status),
				slog.Duration("latency", latency),
				slog.String("remote_ip", c.RealIP()),
			}
			if uid, ok := c.Get(ContextKeyUserID).(string); ok && uid != "" {
				attrs = append(attrs, slog.String("user_id", uid))
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
			}
			ctx := req.Context()
			if logging.RequestID(ctx) == "" {
				if rid := RequestIDFromContext(c); rid != "" {
					ctx = logging.WithRequestID(ctx, rid)
				}
			}
			logger.LogAttrs(ctx, level, "http request", attrs...)

			return err
		}
	}
}
