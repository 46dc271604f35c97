package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/places-gateway/internal/dto"
	"github.com/octobees/places-gateway/internal/service"
)

// PlaceDetailsHandler forwards Place Details lookups.
type PlaceDetailsHandler struct {
	service *service.MapsService
}

// NewPlaceDetailsHandler creates a new handler instance.
func NewPlaceDetailsHandler(service *service.MapsService) *PlaceDetailsHandler {
	return &PlaceDetailsHandler{service: service}
}

// Get handles GET and POST /place-details requests. place_id is read from the
// query string or the JSON body.
func (h *PlaceDetailsHandler) Get(c echo.Context) error {
	var req dto.PlaceDetailsRequest
	if err := bindRequest(c, &req); err != nil {
		return Error(c, http.StatusBadRequest, "Bad Request", "invalid payload")
	}
	if strings.TrimSpace(req.PlaceID) == "" {
		req.PlaceID = c.QueryParam("place_id")
	}

	body, err := h.service.PlaceDetails(c.Request().Context(), req.PlaceID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			return Error(c, http.StatusBadRequest, "Bad Request", err.Error())
		case errors.Is(err, service.ErrNotConfigured):
			return Error(c, http.StatusInternalServerError, "API key not configured", "")
		default:
			return Error(c, http.StatusInternalServerError, "Internal server error", err.Error())
		}
	}

	return c.JSONBlob(http.StatusOK, body)
}
