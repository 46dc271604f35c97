package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/places-gateway/internal/auth"
	"github.com/octobees/places-gateway/internal/handler"
	middlewarepkg "github.com/octobees/places-gateway/internal/middleware"
)

// Prefixes under which the API is mounted. The second one keeps the URLs of
// the Netlify deployment working.
var Prefixes = []string{"/api", "/.netlify/functions"}

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Places       *handler.PlacesHandler
	Geocode      *handler.GeocodeHandler
	PlaceDetails *handler.PlaceDetailsHandler
	APIKey       *handler.APIKeyHandler
	Metrics      http.Handler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, verifier auth.Verifier, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})
	if handlers.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(handlers.Metrics))
	}

	requireAuth := middlewarepkg.RequireBearer(verifier)

	for _, prefix := range Prefixes {
		secured := e.Group(prefix)

		secured.POST("/search-places", handlers.Places.Search, requireAuth)
		secured.POST("/geocode", handlers.Geocode.Geocode, requireAuth)
		secured.POST("/reverse-geocode", handlers.Geocode.ReverseGeocode, requireAuth)
		secured.GET("/place-details", handlers.PlaceDetails.Get, requireAuth)
		secured.POST("/place-details", handlers.PlaceDetails.Get, requireAuth)
		secured.GET("/get-api-key", handlers.APIKey.Get, requireAuth)
	}
}
