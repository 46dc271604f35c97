package auth

import (
	"context"
	"errors"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/octobees/places-gateway/internal/config"
)

type idTokenVerifierStub struct {
	token *fbauth.Token
	err   error
	calls int
}

func (s *idTokenVerifierStub) VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.token, nil
}

func newStubbedFirebaseVerifier(stub idTokenVerifier) *FirebaseVerifier {
	v := NewFirebaseVerifier(config.FirebaseConfig{})
	v.once.Do(func() { v.client = stub })
	return v
}

func TestFirebaseVerifier_Verify(t *testing.T) {
	stub := &idTokenVerifierStub{token: &fbauth.Token{
		UID: "uid-1",
		Claims: map[string]interface{}{
			"email":          "pub@example.com",
			"email_verified": "true",
			"name":           "Landlord",
			"firebase":       map[string]interface{}{"sign_in_provider": "password"},
		},
	}}
	verifier := newStubbedFirebaseVerifier(stub)

	identity, err := verifier.Verify(context.Background(), "token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.UID != "uid-1" || identity.Email != "pub@example.com" || identity.Name != "Landlord" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
	if !identity.EmailVerified {
		t.Fatalf("expected weakly typed email_verified to decode as true")
	}
	if identity.Claims["firebase"] == nil {
		t.Fatalf("expected raw claims to be kept")
	}
}

func TestFirebaseVerifier_Rejects(t *testing.T) {
	t.Run("empty token", func(t *testing.T) {
		stub := &idTokenVerifierStub{}
		verifier := newStubbedFirebaseVerifier(stub)
		if _, err := verifier.Verify(context.Background(), ""); !errors.Is(err, ErrMissingToken) {
			t.Fatalf("expected ErrMissingToken, got %v", err)
		}
		if stub.calls != 0 {
			t.Fatalf("expected no SDK call for empty token")
		}
	})

	t.Run("sdk error", func(t *testing.T) {
		verifier := newStubbedFirebaseVerifier(&idTokenVerifierStub{err: errors.New("token expired")})
		if _, err := verifier.Verify(context.Background(), "token"); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("missing uid", func(t *testing.T) {
		verifier := newStubbedFirebaseVerifier(&idTokenVerifierStub{token: &fbauth.Token{}})
		if _, err := verifier.Verify(context.Background(), "token"); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestFirebaseVerifier_InitOnce(t *testing.T) {
	verifier := NewFirebaseVerifier(config.FirebaseConfig{PrivateKey: "key"})
	first := verifier.Init(context.Background())
	if first == nil {
		t.Fatalf("expected error when client email is missing")
	}
	if second := verifier.Init(context.Background()); second != first {
		t.Fatalf("expected Init to return the first result, got %v", second)
	}
	if _, err := verifier.Verify(context.Background(), "token"); err == nil {
		t.Fatalf("expected verify to surface init error")
	}
}

func TestFirebaseClientOptions(t *testing.T) {
	opts, err := firebaseClientOptions(config.FirebaseConfig{})
	if err != nil || opts != nil {
		t.Fatalf("expected ADC fallback without options, got %v %v", opts, err)
	}

	opts, err = firebaseClientOptions(config.FirebaseConfig{ProjectID: "p", ClientEmail: "svc@p.iam", PrivateKey: "-----BEGIN-----"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts) != 1 {
		t.Fatalf("expected credentials option, got %d", len(opts))
	}
}
