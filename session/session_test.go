package session

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"testing"
	"time"
)

func TestNewSessionIsUninitialized(t *testing.T) {
	s := New()
	if s.IsInitialized() {
		t.Error("new session should not be initialized")
	}
	if s.IsAuthenticated() {
		t.Error("new session should not be authenticated")
	}
}

func TestInitialize(t *testing.T) {
	s := New()
	s.Initialize(true)

	if !s.IsInitialized() {
		t.Error("expected initialized")
	}
	if !s.RequiresRegistration() {
		t.Error("expected requiresRegistration")
	}
}

// Authenticated and requiresRegistration must never both hold.
func TestSetTokenClearsRegistrationRequirement(t *testing.T) {
	s := New()
	s.Initialize(true)
	s.SetToken("opaque-token")

	if !s.IsAuthenticated() {
		t.Error("expected authenticated after SetToken")
	}
	if s.RequiresRegistration() {
		t.Error("requiresRegistration must be cleared once a token is issued")
	}
}

func TestClear(t *testing.T) {
	s := New()
	s.Initialize(false)
	s.SetToken("opaque-token")
	s.Clear()

	if s.IsAuthenticated() {
		t.Error("expected unauthenticated after Clear")
	}
	if !s.IsInitialized() {
		t.Error("Clear must not reset initialization")
	}
}

func TestTokenExpiresAt(t *testing.T) {
	s := New()

	if _, ok := s.TokenExpiresAt(); ok {
		t.Error("empty token should have no expiry")
	}

	s.SetToken("not-a-jwt")
	if _, ok := s.TokenExpiresAt(); ok {
		t.Error("opaque token should have no expiry")
	}

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	s.SetToken(makeUnsignedJWT(t, exp))
	got, ok := s.TokenExpiresAt()
	if !ok {
		t.Fatal("expected expiry from JWT token")
	}
	if !got.Equal(exp) {
		t.Errorf("expiry = %v, want %v", got, exp)
	}
}

// makeUnsignedJWT builds a structurally valid JWT with only an exp claim.
// The signature segment is garbage on purpose: expiry inspection must not
// verify it.
func makeUnsignedJWT(t *testing.T, exp time.Time) string {
	t.Helper()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(map[string]int64{"exp": exp.Unix()})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	body := base64.RawURLEncoding.EncodeToString(payload)
	sig := base64.RawURLEncoding.EncodeToString([]byte("sig"))

	return fmt.Sprintf("%s.%s.%s", header, body, sig)
}
