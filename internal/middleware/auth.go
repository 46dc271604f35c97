package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/places-gateway/internal/auth"
)

// RequireBearer validates bearer tokens and stores the caller identity in the
// request context. Requests without a usable token never reach next.
func RequireBearer(verifier auth.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
			if authHeader == "" {
				return unauthorized(c, "No authorization token provided")
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				return unauthorized(c, "Invalid authorization header")
			}

			identity, err := verifier.Verify(c.Request().Context(), strings.TrimSpace(token))
			if err != nil {
				if errors.Is(err, auth.ErrMissingToken) {
					return unauthorized(c, "No authorization token provided")
				}
				slog.DebugContext(c.Request().Context(), "token verification failed", slog.Any("error", err))
				return unauthorized(c, "Invalid token")
			}

			c.Set(ContextKeyIdentity, identity)
			c.Set(ContextKeyUserID, identity.UID)
			c.Set(ContextKeyUserEmail, identity.Email)

			return next(c)
		}
	}
}

// IdentityFromContext returns the verified caller, if any.
func IdentityFromContext(c echo.Context) *auth.Identity {
	identity, _ := c.Get(ContextKeyIdentity).(*auth.Identity)
	return identity
}

// UserIDFromContext returns the verified caller's UID, or "" when unset.
func UserIDFromContext(c echo.Context) string {
	uid, _ := c.Get(ContextKeyUserID).(string)
	return uid
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized", "message": message})
}
