package api

import (
	"context"
	"errors"
	"net/http"
)

// Provider variants for the LLM integration. Exactly one is active.
const (
	ProviderLocalServer = "local-server"
	ProviderHostedAPI   = "hosted-api"
)

// ErrNoConfig is returned by GetLLMConfig when no configuration has been
// saved yet. A valid terminal state, not a failure.
var ErrNoConfig = errors.New("no LLM configuration stored")

// LLMConfig mirrors the server's config object. The API key itself is never
// echoed back; HasAPIKey is the only trace of a stored key.
type LLMConfig struct {
	ID        string `json:"id,omitempty"`
	Provider  string `json:"provider"`
	BaseURL   string `json:"base_url,omitempty"`
	HasAPIKey bool   `json:"has_api_key,omitempty"`
	IsActive  bool   `json:"is_active"`
}

type saveLLMConfigRequest struct {
	Provider string `json:"provider"`
	IsActive bool   `json:"is_active"`
	BaseURL  string `json:"base_url,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
}

func (c *Client) GetLLMConfig(ctx context.Context) (LLMConfig, error) {
	var cfg LLMConfig
	err := c.doJSON(ctx, http.MethodGet, "/llm/config", nil, &cfg)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return LLMConfig{}, ErrNoConfig
		}
		return LLMConfig{}, err
	}
	return cfg, nil
}

// SaveLLMConfig upserts the configuration. Only the selected variant's
// field goes on the wire, and saving always activates: is_active is forced
// true regardless of the prior value.
func (c *Client) SaveLLMConfig(ctx context.Context, provider, baseURL, apiKey string) (LLMConfig, error) {
	req := saveLLMConfigRequest{
		Provider: provider,
		IsActive: true,
	}
	switch provider {
	case ProviderLocalServer:
		req.BaseURL = baseURL
	case ProviderHostedAPI:
		req.APIKey = apiKey
	}

	var cfg LLMConfig
	if err := c.doJSON(ctx, http.MethodPost, "/llm/config", req, &cfg); err != nil {
		return LLMConfig{}, err
	}
	return cfg, nil
}
