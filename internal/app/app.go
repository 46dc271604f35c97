package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/octobees/places-gateway/internal/auth"
	"github.com/octobees/places-gateway/internal/config"
	"github.com/octobees/places-gateway/internal/gmaps"
	"github.com/octobees/places-gateway/internal/handler"
	"github.com/octobees/places-gateway/internal/metrics"
	middlewarepkg "github.com/octobees/places-gateway/internal/middleware"
	"github.com/octobees/places-gateway/internal/router"
	"github.com/octobees/places-gateway/internal/service"
)

// Options overrides collaborators that are normally built from config.
type Options struct {
	Logger     *slog.Logger
	Verifier   auth.Verifier
	HTTPClient *http.Client
}

// Build assembles the echo application described by cfg.
func Build(ctx context.Context, cfg *config.Config, opts Options) (*echo.Echo, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	verifier := opts.Verifier
	if verifier == nil {
		v, err := auth.NewVerifier(cfg.Auth)
		if err != nil {
			return nil, err
		}
		if fv, ok := v.(*auth.FirebaseVerifier); ok {
			if err := fv.Init(ctx); err != nil {
				return nil, fmt.Errorf("init firebase: %w", err)
			}
		}
		verifier = v
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.UpstreamTimeout}
	}

	if cfg.GoogleMapsAPIKey == "" {
		logger.Warn("GOOGLE_MAPS_API_KEY is not set; upstream calls will be rejected")
	}

	m := metrics.New()
	legacy := gmaps.NewLegacyClient(httpClient, cfg.Places.MapsBaseURL, cfg.GoogleMapsAPIKey)

	var provider service.PlacesProvider
	switch cfg.Places.Provider {
	case config.ProviderNearby:
		provider = gmaps.NewLegacyProvider(legacy)
	default:
		p, err := gmaps.NewPlacesV1Provider(ctx, cfg.GoogleMapsAPIKey, cfg.Places.BaseURL, httpClient)
		if err != nil {
			return nil, err
		}
		provider = p
	}

	placesService := service.NewPlacesService(provider, service.SearchOptions{
		DefaultQuery:   cfg.Places.DefaultQuery,
		RankPreference: cfg.Places.RankPreference,
	}, m, logger)
	mapsService := service.NewMapsService(legacy, cfg.GoogleMapsAPIKey, m, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	e.Pre(middlewarepkg.CORS())
	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(logger))
	e.Use(middlewarepkg.Metrics(m))
	e.Use(echoMiddleware.Recover())

	router.Register(e, verifier, router.Handlers{
		Places:       handler.NewPlacesHandler(placesService),
		Geocode:      handler.NewGeocodeHandler(mapsService),
		PlaceDetails: handler.NewPlaceDetailsHandler(mapsService),
		APIKey:       handler.NewAPIKeyHandler(mapsService),
		Metrics:      m.Handler(),
	})

	logger.Info("application configured",
		slog.String("auth_mode", cfg.Auth.Mode),
		slog.String("places_provider", cfg.Places.Provider),
	)
	return e, nil
}
