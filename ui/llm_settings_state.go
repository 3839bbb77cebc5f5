package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"scribetui/api"
)

// LLMSettingsState manages the LLM configuration sub-screen. Two mutually
// exclusive provider variants: a local server needing a base URL, or a
// hosted API needing a key. The key is write-only; after a save the server
// only ever reports that one is stored.
type LLMSettingsState struct {
	visible bool

	provider string

	baseURLInput textinput.Model
	apiKeyInput  textinput.Model

	// Field focus: 0 = provider selector row, 1 = the variant's input
	focusIdx int

	// Last server-confirmed configuration; nil until one is stored
	current  *api.LLMConfig
	loadNote string

	load inflight
	save inflight

	saved bool
}

// Provider tab order (for navigation)
var llmProviderTabs = []string{api.ProviderLocalServer, api.ProviderHostedAPI}

// Provider display names
var llmProviderNames = map[string]string{
	api.ProviderLocalServer: "Local server",
	api.ProviderHostedAPI:   "Hosted API",
}

func NewLLMSettingsState() LLMSettingsState {
	baseURL := textinput.New()
	baseURL.Placeholder = "http://localhost:11434"
	baseURL.Prompt = "Base URL: "
	baseURL.CharLimit = 200
	baseURL.Width = 40

	apiKey := textinput.New()
	apiKey.Placeholder = "sk-..."
	apiKey.Prompt = "API key:  "
	apiKey.CharLimit = 200
	apiKey.Width = 40
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.EchoCharacter = '•'

	return LLMSettingsState{
		provider:     api.ProviderLocalServer,
		baseURLInput: baseURL,
		apiKeyInput:  apiKey,
	}
}

// applyConfig replaces local state with a server-confirmed configuration.
// The typed key is always dropped here: the server never echoes it back and
// neither do we.
func (s *LLMSettingsState) applyConfig(cfg api.LLMConfig) {
	s.current = &cfg
	if cfg.Provider == api.ProviderLocalServer || cfg.Provider == api.ProviderHostedAPI {
		s.provider = cfg.Provider
	}
	s.baseURLInput.SetValue(cfg.BaseURL)
	s.apiKeyInput.SetValue("")
}

func (s *LLMSettingsState) hasStoredKey() bool {
	return s.current != nil && s.current.HasAPIKey
}

// canSave gates the save control with the provider-specific validity rule:
// local-server needs a non-empty base URL; hosted-api needs a typed key or
// a server-confirmed stored one.
func (s *LLMSettingsState) canSave() bool {
	if s.save.pending() || s.load.pending() {
		return false
	}
	switch s.provider {
	case api.ProviderLocalServer:
		return strings.TrimSpace(s.baseURLInput.Value()) != ""
	case api.ProviderHostedAPI:
		return strings.TrimSpace(s.apiKeyInput.Value()) != "" || s.hasStoredKey()
	}
	return false
}

func (s *LLMSettingsState) switchProvider(direction int) {
	for i, id := range llmProviderTabs {
		if id == s.provider {
			s.provider = llmProviderTabs[(i+direction+len(llmProviderTabs))%len(llmProviderTabs)]
			break
		}
	}
	s.save.reset()
	s.saved = false
}

// close hides the panel and cancels whatever is in flight; a late response
// must not mutate a closed screen.
func (s *LLMSettingsState) close() {
	s.visible = false
	s.load.teardown()
	s.save.teardown()
	s.apiKeyInput.SetValue("")
	s.apiKeyInput.Blur()
	s.baseURLInput.Blur()
	s.focusIdx = 0
	s.saved = false
	s.loadNote = ""
}

// keyDisplayNote describes the stored-key state for rendering.
func (s *LLMSettingsState) keyDisplayNote() string {
	if s.apiKeyInput.Value() != "" {
		return ""
	}
	if s.hasStoredKey() {
		return "A key is stored on the server; leave blank to keep it"
	}
	return "No key stored yet"
}
