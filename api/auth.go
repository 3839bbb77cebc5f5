package api

import (
	"context"
	"net/http"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// RegistrationStatus tells the gate whether any account exists yet.
type RegistrationStatus struct {
	NeedsRegistration bool `json:"needs_registration"`
}

// CheckRegistrationStatus backs the gate's one-shot initialization probe.
func (c *Client) CheckRegistrationStatus(ctx context.Context) (RegistrationStatus, error) {
	var status RegistrationStatus
	err := c.doJSON(ctx, http.MethodGet, "/auth/status", nil, &status)
	return status, err
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp tokenResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", loginRequest{
		Username: username,
		Password: password,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Register creates the first account and returns a bearer token. The
// confirmation is sent along with the credentials, matching the server
// contract; equality is still enforced client-side before this is called.
func (c *Client) Register(ctx context.Context, username, password, confirmPassword string) (string, error) {
	var resp tokenResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/register", registerRequest{
		Username:        username,
		Password:        password,
		ConfirmPassword: confirmPassword,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}
