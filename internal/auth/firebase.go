package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/mitchellh/mapstructure"
	"google.golang.org/api/option"

	"github.com/octobees/places-gateway/internal/config"
)

type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// FirebaseVerifier verifies Firebase ID tokens with the Admin SDK. The SDK
// client is created once per process; call Init at startup to fail fast.
type FirebaseVerifier struct {
	cfg config.FirebaseConfig

	once    sync.Once
	client  idTokenVerifier
	initErr error
}

// NewFirebaseVerifier returns a verifier for the given service account.
func NewFirebaseVerifier(cfg config.FirebaseConfig) *FirebaseVerifier {
	return &FirebaseVerifier{cfg: cfg}
}

// Init creates the Admin SDK client. Subsequent calls return the first result.
func (v *FirebaseVerifier) Init(ctx context.Context) error {
	v.once.Do(func() {
		opts, err := firebaseClientOptions(v.cfg)
		if err != nil {
			v.initErr = err
			return
		}

		var appCfg *firebase.Config
		if v.cfg.ProjectID != "" {
			appCfg = &firebase.Config{ProjectID: v.cfg.ProjectID}
		}

		app, err := firebase.NewApp(ctx, appCfg, opts...)
		if err != nil {
			v.initErr = fmt.Errorf("initialise firebase app: %w", err)
			return
		}

		client, err := app.Auth(ctx)
		if err != nil {
			v.initErr = fmt.Errorf("initialise firebase auth: %w", err)
			return
		}
		v.client = client
	})
	return v.initErr
}

// Verify checks the ID token signature, audience and expiry.
func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	if err := v.Init(ctx); err != nil {
		return nil, err
	}

	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return identityFromToken(decoded)
}

// firebaseClientOptions builds credentials from the split service account
// fields. Without a private key the SDK falls back to Application Default
// Credentials.
func firebaseClientOptions(cfg config.FirebaseConfig) ([]option.ClientOption, error) {
	if cfg.PrivateKey == "" {
		return nil, nil
	}
	if cfg.ClientEmail == "" {
		return nil, errors.New("FIREBASE_CLIENT_EMAIL is required with FIREBASE_PRIVATE_KEY")
	}

	creds, err := json.Marshal(map[string]string{
		"type":         "service_account",
		"project_id":   cfg.ProjectID,
		"client_email": cfg.ClientEmail,
		"private_key":  cfg.PrivateKey,
		"token_uri":    "https://oauth2.googleapis.com/token",
	})
	if err != nil {
		return nil, fmt.Errorf("encode firebase credentials: %w", err)
	}
	return []option.ClientOption{option.WithCredentialsJSON(creds)}, nil
}

type tokenClaims struct {
	Email         string `mapstructure:"email"`
	EmailVerified bool   `mapstructure:"email_verified"`
	Name          string `mapstructure:"name"`
}

func identityFromToken(token *fbauth.Token) (*Identity, error) {
	if token == nil || token.UID == "" {
		return nil, fmt.Errorf("%w: token carries no uid", ErrInvalidToken)
	}

	var claims tokenClaims
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &claims,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(token.Claims); err != nil {
		return nil, fmt.Errorf("decode token claims: %w", err)
	}

	return &Identity{
		UID:           token.UID,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		Name:          claims.Name,
		Claims:        token.Claims,
	}, nil
}
