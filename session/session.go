// Package session holds the process-wide authentication state. The session
// gate is the only writer; every other screen reads through the accessors.
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Session struct {
	token                string
	initialized          bool
	requiresRegistration bool
}

func New() *Session {
	return &Session{}
}

// Initialize records the result of the one-shot registration-status probe.
// Called exactly once per application start.
func (s *Session) Initialize(requiresRegistration bool) {
	s.initialized = true
	s.requiresRegistration = requiresRegistration
}

func (s *Session) IsInitialized() bool {
	return s.initialized
}

func (s *Session) RequiresRegistration() bool {
	return s.requiresRegistration
}

func (s *Session) IsAuthenticated() bool {
	return s.token != ""
}

func (s *Session) Token() string {
	return s.token
}

// SetToken stores the bearer token issued by login or registration. A
// successful registration means an account now exists, so the registration
// requirement is cleared here to keep the two flags mutually exclusive.
func (s *Session) SetToken(token string) {
	s.token = token
	if token != "" {
		s.requiresRegistration = false
	}
}

// Clear drops the token on logout or on an authentication rejection from
// any authenticated call.
func (s *Session) Clear() {
	s.token = ""
}

// TokenExpiresAt returns the expiry encoded in the bearer token when it is
// a JWT with an exp claim. The signature is deliberately not verified: this
// feeds status-bar display only, the server stays authoritative and will
// reject a forged or expired token on its own.
func (s *Session) TokenExpiresAt() (time.Time, bool) {
	if s.token == "" {
		return time.Time{}, false
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(s.token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
