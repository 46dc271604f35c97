package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/places-gateway/internal/dto"
	"github.com/octobees/places-gateway/internal/middleware"
	"github.com/octobees/places-gateway/internal/service"
)

// APIKeyHandler hands the browser key to authenticated clients.
type APIKeyHandler struct {
	service *service.MapsService
}

// NewAPIKeyHandler creates a new handler instance.
func NewAPIKeyHandler(service *service.MapsService) *APIKeyHandler {
	return &APIKeyHandler{service: service}
}

// Get handles GET /get-api-key requests.
func (h *APIKeyHandler) Get(c echo.Context) error {
	key, err := h.service.APIKey()
	if err != nil {
		slog.ErrorContext(c.Request().Context(), "GOOGLE_MAPS_API_KEY is not set")
		return Error(c, http.StatusInternalServerError, "API key not configured on server", "")
	}

	slog.InfoContext(c.Request().Context(), "returning API key to authenticated user",
		slog.String("user_id", middleware.UserIDFromContext(c)),
	)
	return c.JSON(http.StatusOK, dto.APIKeyResponse{APIKey: key, Success: true})
}
