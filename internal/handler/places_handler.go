package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/places-gateway/internal/dto"
	"github.com/octobees/places-gateway/internal/service"
)

// PlacesHandler exposes the place search endpoint.
type PlacesHandler struct {
	service *service.PlacesService
}

// NewPlacesHandler creates a new handler instance.
func NewPlacesHandler(service *service.PlacesService) *PlacesHandler {
	return &PlacesHandler{service: service}
}

// Search handles POST /search-places requests.
func (h *PlacesHandler) Search(c echo.Context) error {
	var req dto.SearchPlacesRequest
	if err := bindRequest(c, &req); err != nil {
		return Error(c, http.StatusBadRequest, "Bad Request", "invalid payload")
	}

	query, err := h.service.BuildQuery(req)
	if err != nil {
		return Error(c, http.StatusBadRequest, "Bad Request", err.Error())
	}

	places, err := h.service.FindPlaces(c.Request().Context(), query)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			return Error(c, http.StatusBadRequest, "Bad Request", err.Error())
		}
		return Error(c, http.StatusInternalServerError, "Search failed", err.Error())
	}

	return c.JSON(http.StatusOK, dto.SearchPlacesResponse{Places: places, Status: "OK"})
}
