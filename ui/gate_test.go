package ui

import (
	"errors"
	"testing"
	"time"

	"scribetui/api"
	"scribetui/config"
)

func newTestGate(t *testing.T) Gate {
	t.Helper()
	cfg := &config.Config{
		ServerURL:      "http://127.0.0.1:9",
		RequestTimeout: time.Second,
	}
	client, err := api.NewClient(cfg.ServerURL, cfg.RequestTimeout)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return NewGate(cfg, client)
}

func TestActiveScreenLadder(t *testing.T) {
	g := newTestGate(t)

	if got := g.activeScreen(); got != screenLoading {
		t.Fatalf("before init: screen = %v, want loading", got)
	}

	g.session.Initialize(true)
	if got := g.activeScreen(); got != screenRegister {
		t.Fatalf("needs registration: screen = %v, want register", got)
	}

	g.session.SetToken("tok")
	if got := g.activeScreen(); got != screenContent {
		t.Fatalf("authenticated: screen = %v, want content", got)
	}

	g.session.Clear()
	if got := g.activeScreen(); got != screenLogin {
		t.Fatalf("cleared: screen = %v, want login", got)
	}
}

func TestInitProbeSuccess(t *testing.T) {
	g := newTestGate(t)

	model, _ := g.Update(initResultMsg{needsRegistration: true})
	g = model.(Gate)

	if !g.session.IsInitialized() {
		t.Error("session should be initialized after probe result")
	}
	if g.activeScreen() != screenRegister {
		t.Errorf("screen = %v, want register", g.activeScreen())
	}
}

func TestInitProbeFailsOpen(t *testing.T) {
	g := newTestGate(t)

	model, _ := g.Update(initResultMsg{err: errors.New("connection refused")})
	g = model.(Gate)

	if !g.session.IsInitialized() {
		t.Error("a failed probe must still leave the loading screen")
	}
	if g.activeScreen() != screenLogin {
		t.Errorf("screen = %v, want login after failed probe", g.activeScreen())
	}
}

func TestAuthenticatedMsgEntersContent(t *testing.T) {
	g := newTestGate(t)
	g.session.Initialize(false)

	model, cmd := g.Update(authenticatedMsg{token: "tok-abc"})
	g = model.(Gate)

	if g.activeScreen() != screenContent {
		t.Fatalf("screen = %v, want content", g.activeScreen())
	}
	if got := g.session.Token(); got != "tok-abc" {
		t.Errorf("session token = %q, want tok-abc", got)
	}
	if cmd == nil {
		t.Error("entering content must kick off the initial listing load")
	}
}

func TestSessionExpiredReturnsToLogin(t *testing.T) {
	g := newTestGate(t)
	g.session.Initialize(false)
	model, _ := g.Update(authenticatedMsg{token: "tok-abc"})
	g = model.(Gate)

	model, _ = g.Update(sessionExpiredMsg{})
	g = model.(Gate)

	if g.activeScreen() != screenLogin {
		t.Fatalf("screen = %v, want login after expiry", g.activeScreen())
	}
	if g.session.IsAuthenticated() {
		t.Error("token must be dropped on expiry")
	}
	if g.login.notice == "" {
		t.Error("login screen should carry an expiry notice")
	}
}

func TestLogoutClearsSessionWithoutNotice(t *testing.T) {
	g := newTestGate(t)
	g.session.Initialize(false)
	model, _ := g.Update(authenticatedMsg{token: "tok-abc"})
	g = model.(Gate)

	model, _ = g.Update(logoutMsg{})
	g = model.(Gate)

	if g.activeScreen() != screenLogin {
		t.Fatalf("screen = %v, want login after logout", g.activeScreen())
	}
	if g.login.notice != "" {
		t.Errorf("explicit logout should not show a notice, got %q", g.login.notice)
	}
}

func TestRegistrationClearedByAuthentication(t *testing.T) {
	g := newTestGate(t)
	g.session.Initialize(true)

	model, _ := g.Update(authenticatedMsg{token: "tok-first"})
	g = model.(Gate)

	if g.session.RequiresRegistration() {
		t.Error("registration requirement must clear once a token is held")
	}
	if g.activeScreen() != screenContent {
		t.Errorf("screen = %v, want content", g.activeScreen())
	}
}
