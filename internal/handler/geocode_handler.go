package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/places-gateway/internal/dto"
	"github.com/octobees/places-gateway/internal/service"
)

// GeocodeHandler exposes forward and reverse geocoding.
type GeocodeHandler struct {
	service *service.MapsService
}

// NewGeocodeHandler creates a new handler instance.
func NewGeocodeHandler(service *service.MapsService) *GeocodeHandler {
	return &GeocodeHandler{service: service}
}

// Geocode handles POST /geocode requests.
func (h *GeocodeHandler) Geocode(c echo.Context) error {
	var req dto.GeocodeRequest
	if err := bindRequest(c, &req); err != nil {
		return Error(c, http.StatusBadRequest, "Bad Request", "invalid payload")
	}

	result, err := h.service.Geocode(c.Request().Context(), req.Address)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			return Error(c, http.StatusBadRequest, "Bad Request", err.Error())
		case errors.Is(err, service.ErrNotConfigured):
			return Error(c, http.StatusInternalServerError, "Server configuration error", err.Error())
		default:
			return Error(c, http.StatusInternalServerError, "Internal server error", err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.GeocodeResponse{
		Status:  result.Status,
		Error:   result.ErrorMessage,
		Results: result.Results,
	})
}

// ReverseGeocode handles POST /reverse-geocode requests. The upstream payload
// is returned unchanged.
func (h *GeocodeHandler) ReverseGeocode(c echo.Context) error {
	var req dto.ReverseGeocodeRequest
	if err := bindRequest(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.StatusMessage{Status: "ERROR", Message: "Invalid request body"})
	}

	var lat, lng *float64
	if req.Lat != nil {
		v := float64(*req.Lat)
		lat = &v
	}
	if req.Lng != nil {
		v := float64(*req.Lng)
		lng = &v
	}

	body, err := h.service.ReverseGeocode(c.Request().Context(), lat, lng)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			return c.JSON(http.StatusBadRequest, dto.StatusMessage{Status: "ERROR", Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, dto.StatusMessage{
			Status:  "ERROR",
			Message: "Internal server error during reverse geocoding",
		})
	}

	return c.JSONBlob(http.StatusOK, body)
}
