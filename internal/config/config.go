package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Auth modes understood by the bearer middleware.
const (
	AuthModeFirebase = "firebase"
	AuthModeJWT      = "jwt"
	AuthModePresence = "presence"
)

// Places providers selectable for the search pipeline.
const (
	ProviderText   = "text"
	ProviderNearby = "nearby"
)

// FirebaseConfig carries the service account used to verify ID tokens.
type FirebaseConfig struct {
	ProjectID   string
	ClientEmail string
	PrivateKey  string
}

// AuthConfig selects how bearer tokens are checked.
type AuthConfig struct {
	Mode      string
	JWTSecret string
	Firebase  FirebaseConfig
}

// PlacesConfig controls the search pipeline and its upstream endpoints.
type PlacesConfig struct {
	Provider       string
	BaseURL        string
	MapsBaseURL    string
	DefaultQuery   string
	RankPreference string
}

// Config aggregates application-wide configuration values.
type Config struct {
	Port             string
	GoogleMapsAPIKey string
	Auth             AuthConfig
	Places           PlacesConfig
	UpstreamTimeout  time.Duration
	LogLevel         string
	LogFormat        string
}

// Load reads configuration from environment variables and an optional
// config.yaml, applies defaults, and validates the result.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("google_maps_api_key", "")
	v.SetDefault("auth_mode", AuthModeFirebase)
	v.SetDefault("auth_jwt_secret", "")
	v.SetDefault("firebase_project_id", "")
	v.SetDefault("firebase_client_email", "")
	v.SetDefault("firebase_private_key", "")
	v.SetDefault("places_provider", ProviderText)
	v.SetDefault("places_base_url", "https://places.googleapis.com/")
	v.SetDefault("maps_base_url", "https://maps.googleapis.com")
	v.SetDefault("search_default_query", "pub")
	v.SetDefault("search_rank_preference", "")
	v.SetDefault("upstream_timeout", "15s")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	// SEARCH_DEFAULT_QUERY= disables the literal fallback term.
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	timeout, timeoutErr := parseDuration(v.GetString("upstream_timeout"))

	cfg := &Config{
		Port:             strings.TrimSpace(v.GetString("port")),
		GoogleMapsAPIKey: strings.TrimSpace(v.GetString("google_maps_api_key")),
		Auth: AuthConfig{
			Mode:      strings.ToLower(strings.TrimSpace(v.GetString("auth_mode"))),
			JWTSecret: v.GetString("auth_jwt_secret"),
			Firebase: FirebaseConfig{
				ProjectID:   strings.TrimSpace(v.GetString("firebase_project_id")),
				ClientEmail: strings.TrimSpace(v.GetString("firebase_client_email")),
				PrivateKey:  expandNewlines(v.GetString("firebase_private_key")),
			},
		},
		Places: PlacesConfig{
			Provider:       strings.ToLower(strings.TrimSpace(v.GetString("places_provider"))),
			BaseURL:        strings.TrimSpace(v.GetString("places_base_url")),
			MapsBaseURL:    strings.TrimRight(strings.TrimSpace(v.GetString("maps_base_url")), "/"),
			DefaultQuery:   strings.TrimSpace(v.GetString("search_default_query")),
			RankPreference: strings.ToUpper(strings.TrimSpace(v.GetString("search_rank_preference"))),
		},
		UpstreamTimeout: timeout,
		LogLevel:        strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
		LogFormat:       strings.ToLower(strings.TrimSpace(v.GetString("log_format"))),
	}

	errs := cfg.validationErrors()
	if timeoutErr != nil {
		errs = append(errs, fmt.Sprintf("UPSTREAM_TIMEOUT is not a valid duration: %v", timeoutErr))
	}
	if err := joinErrors(errs); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	return joinErrors(c.validationErrors())
}

func (c *Config) validationErrors() []string {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Sprintf("PORT must be 1-65535, got %q", c.Port))
	}

	switch c.Auth.Mode {
	case AuthModeFirebase, AuthModePresence:
	case AuthModeJWT:
		if c.Auth.JWTSecret == "" {
			errs = append(errs, "AUTH_JWT_SECRET is required when AUTH_MODE=jwt")
		}
	default:
		errs = append(errs, fmt.Sprintf("AUTH_MODE must be one of firebase, jwt, presence, got %q", c.Auth.Mode))
	}

	switch c.Places.Provider {
	case ProviderText, ProviderNearby:
	default:
		errs = append(errs, fmt.Sprintf("PLACES_PROVIDER must be text or nearby, got %q", c.Places.Provider))
	}

	switch c.Places.RankPreference {
	case "", "DISTANCE", "RELEVANCE":
	default:
		errs = append(errs, fmt.Sprintf("SEARCH_RANK_PREFERENCE must be DISTANCE or RELEVANCE, got %q", c.Places.RankPreference))
	}

	if c.Places.BaseURL == "" {
		errs = append(errs, "PLACES_BASE_URL must not be empty")
	}
	if c.Places.MapsBaseURL == "" {
		errs = append(errs, "MAPS_BASE_URL must not be empty")
	}
	if c.UpstreamTimeout <= 0 {
		errs = append(errs, "UPSTREAM_TIMEOUT must be positive")
	}

	switch c.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be json or text, got %q", c.LogFormat))
	}

	return errs
}

func joinErrors(errs []string) error {
	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// expandNewlines turns the literal "\n" sequences used when a PEM key is
// stored in a single-line environment variable back into newlines.
func expandNewlines(value string) string {
	return strings.ReplaceAll(value, `\n`, "\n")
}

func parseDuration(input string) (time.Duration, error) {
	return time.ParseDuration(strings.TrimSpace(input))
}
