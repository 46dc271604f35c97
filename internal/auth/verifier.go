package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/octobees/places-gateway/internal/config"
)

var (
	// ErrMissingToken is returned when no bearer token accompanies the request.
	ErrMissingToken = errors.New("no authorization token provided")
	// ErrInvalidToken is returned when a token fails verification.
	ErrInvalidToken = errors.New("invalid token")
)

// Identity describes the caller behind a verified token.
type Identity struct {
	UID           string
	Email         string
	EmailVerified bool
	Name          string
	Claims        map[string]any
}

// Verifier checks an opaque bearer token.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// NewVerifier builds the verifier selected by cfg.Mode.
func NewVerifier(cfg config.AuthConfig) (Verifier, error) {
	switch cfg.Mode {
	case config.AuthModeFirebase:
		return NewFirebaseVerifier(cfg.Firebase), nil
	case config.AuthModeJWT:
		return NewJWTVerifier(cfg.JWTSecret, 0), nil
	case config.AuthModePresence:
		return PresenceVerifier{}, nil
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Mode)
	}
}
