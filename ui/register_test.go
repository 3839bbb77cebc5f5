package ui

import (
	"testing"
	"time"

	"scribetui/api"
)

func newTestRegister(t *testing.T) RegisterModel {
	t.Helper()
	client, err := api.NewClient("http://127.0.0.1:9", time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return NewRegisterModel(client, time.Second)
}

func TestRegisterSubmitLocalPreconditions(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		confirm  string
		wantMsg  string
	}{
		{
			name:     "weak password never reaches the wire",
			username: "alice",
			password: "abc",
			confirm:  "abc",
			wantMsg:  "Password does not meet all requirements",
		},
		{
			name:     "policy-valid but mismatched confirmation",
			username: "alice",
			password: "Abcdef1!",
			confirm:  "Abcdef1?",
			wantMsg:  "Passwords do not match",
		},
		{
			name:     "empty confirmation is a mismatch",
			username: "alice",
			password: "Abcdef1!",
			confirm:  "",
			wantMsg:  "Passwords do not match",
		},
		{
			name:     "username too short",
			username: "ab",
			password: "Abcdef1!",
			confirm:  "Abcdef1!",
		},
		{
			name:     "missing digit",
			username: "alice",
			password: "Abcdefg!",
			confirm:  "Abcdefg!",
			wantMsg:  "Password does not meet all requirements",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestRegister(t)
			m.usernameInput.SetValue(tt.username)
			m.passwordInput.SetValue(tt.password)
			m.confirmInput.SetValue(tt.confirm)

			cmd := m.submit()
			if cmd != nil {
				t.Fatal("invalid form must not produce a request")
			}
			if m.request.phase != phaseFailed {
				t.Fatalf("phase = %v, want failed", m.request.phase)
			}
			if m.request.errMsg == "" {
				t.Fatal("local rejection must carry a message")
			}
			if tt.wantMsg != "" && m.request.errMsg != tt.wantMsg {
				t.Errorf("errMsg = %q, want %q", m.request.errMsg, tt.wantMsg)
			}
		})
	}
}

func TestRegisterSubmitValidFormStartsRequest(t *testing.T) {
	m := newTestRegister(t)
	m.usernameInput.SetValue("alice")
	m.passwordInput.SetValue("Abcdef1!")
	m.confirmInput.SetValue("Abcdef1!")

	cmd := m.submit()
	if cmd == nil {
		t.Fatal("valid form must produce a request command")
	}
	if !m.request.pending() {
		t.Error("expected pending after submit")
	}
}

func TestRegisterResultSuccessEmitsAuthenticated(t *testing.T) {
	m := newTestRegister(t)
	m.usernameInput.SetValue("alice")
	m.passwordInput.SetValue("Abcdef1!")
	m.confirmInput.SetValue("Abcdef1!")
	m.submit()
	gen := m.request.gen

	m, cmd := m.Update(registerResultMsg{gen: gen, token: "tok-new"})
	if cmd == nil {
		t.Fatal("successful registration must emit a message")
	}
	msg, ok := cmd().(authenticatedMsg)
	if !ok {
		t.Fatalf("emitted %T, want authenticatedMsg", cmd())
	}
	if msg.token != "tok-new" {
		t.Errorf("token = %q, want tok-new", msg.token)
	}
}

func TestRegisterResultErrorKeepsFormEditable(t *testing.T) {
	m := newTestRegister(t)
	m.usernameInput.SetValue("alice")
	m.passwordInput.SetValue("Abcdef1!")
	m.confirmInput.SetValue("Abcdef1!")
	m.submit()
	gen := m.request.gen

	m, cmd := m.Update(registerResultMsg{gen: gen, err: &api.Error{StatusCode: 409, Message: "an account already exists"}})
	if cmd != nil {
		t.Error("a failed registration must not emit a message")
	}
	if m.request.errMsg != "an account already exists" {
		t.Errorf("errMsg = %q, want the server message verbatim", m.request.errMsg)
	}
	if m.usernameInput.Value() != "alice" {
		t.Error("field values must survive a failed attempt")
	}
}
