package ui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"scribetui/api"
	"scribetui/config"
)

type llmConfigLoadedMsg struct {
	gen int
	cfg api.LLMConfig
	err error
}

type llmConfigSavedMsg struct {
	gen int
	cfg api.LLMConfig
	err error
}

// openLLMSettings shows the panel and kicks off the configuration load.
// Generation counters carry over from the previous incarnation so results
// of an abandoned open cannot land in this one.
func (a *AppView) openLLMSettings() tea.Cmd {
	loadGen, saveGen := a.llmSettings.load.gen, a.llmSettings.save.gen
	a.llmSettings = NewLLMSettingsState()
	a.llmSettings.load.gen = loadGen
	a.llmSettings.save.gen = saveGen
	a.llmSettings.visible = true
	return tea.Batch(a.loadLLMConfigCmd(), a.llmSettings.baseURLInput.Focus())
}

func (a *AppView) loadLLMConfigCmd() tea.Cmd {
	ctx, gen := a.llmSettings.load.start()
	client := a.client
	timeout := a.cfg.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		cfg, err := client.GetLLMConfig(ctx)
		return llmConfigLoadedMsg{gen: gen, cfg: cfg, err: err}
	}
}

func (a *AppView) saveLLMConfigCmd() tea.Cmd {
	ctx, gen := a.llmSettings.save.start()
	client := a.client
	timeout := a.cfg.RequestTimeout
	provider := a.llmSettings.provider
	baseURL := strings.TrimSpace(a.llmSettings.baseURLInput.Value())
	apiKey := strings.TrimSpace(a.llmSettings.apiKeyInput.Value())
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		cfg, err := client.SaveLLMConfig(ctx, provider, baseURL, apiKey)
		return llmConfigSavedMsg{gen: gen, cfg: cfg, err: err}
	}
}

func (a AppView) handleLLMConfigLoaded(msg llmConfigLoadedMsg) (AppView, tea.Cmd) {
	if a.llmSettings.load.stale(msg.gen) || canceledResult(msg.err) {
		return a, nil
	}

	if msg.err != nil {
		if errors.Is(msg.err, api.ErrUnauthorized) {
			return a, func() tea.Msg { return sessionExpiredMsg{} }
		}
		if errors.Is(msg.err, api.ErrNoConfig) {
			// A valid terminal state: nothing saved yet
			a.llmSettings.load.succeed()
			a.llmSettings.current = nil
			a.llmSettings.loadNote = "No configuration saved yet"
			return a, nil
		}
		// Other load failures are logged but never block the form
		if config.DebugLog != nil {
			config.DebugLog.Warnf("[LLMSettings] config load failed: %v", msg.err)
		}
		a.llmSettings.load.succeed()
		a.llmSettings.loadNote = "Could not load the existing configuration"
		return a, nil
	}

	a.llmSettings.load.succeed()
	a.llmSettings.loadNote = ""
	a.llmSettings.applyConfig(msg.cfg)
	return a, nil
}

func (a AppView) handleLLMConfigSaved(msg llmConfigSavedMsg) (AppView, tea.Cmd) {
	if a.llmSettings.save.stale(msg.gen) || canceledResult(msg.err) {
		return a, nil
	}

	if msg.err != nil {
		if errors.Is(msg.err, api.ErrUnauthorized) {
			return a, func() tea.Msg { return sessionExpiredMsg{} }
		}
		// Prior configuration is retained on failure
		a.llmSettings.save.fail(remoteErrorMessage(msg.err, "Failed to save configuration"))
		return a, nil
	}

	a.llmSettings.save.succeed()
	a.llmSettings.applyConfig(msg.cfg)
	a.llmSettings.saved = true
	return a, nil
}

// handleLLMSettingsInput handles keyboard input for the settings sub-screen
func (a AppView) handleLLMSettingsInput(msg tea.KeyMsg) (AppView, tea.Cmd) {
	s := &a.llmSettings

	if s.save.pending() {
		return a, nil
	}

	switch msg.String() {
	case "esc":
		s.close()
		return a, nil

	case "up", "shift+tab":
		s.focusIdx = 0
		s.baseURLInput.Blur()
		s.apiKeyInput.Blur()
		return a, nil

	case "down", "tab":
		s.focusIdx = 1
		if s.provider == api.ProviderLocalServer {
			return a, s.baseURLInput.Focus()
		}
		return a, s.apiKeyInput.Focus()

	case "enter":
		if s.focusIdx == 0 {
			s.switchProvider(1)
			return a, nil
		}
		if !s.canSave() {
			return a, nil
		}
		return a, a.saveLLMConfigCmd()

	case "alt+enter":
		if !s.canSave() {
			return a, nil
		}
		return a, a.saveLLMConfigCmd()
	}

	if s.focusIdx == 0 {
		switch msg.String() {
		case "left", "h":
			s.switchProvider(-1)
		case "right", "l", " ":
			s.switchProvider(1)
		}
		return a, nil
	}

	// Editing a field after a failed save clears the error
	if s.save.phase == phaseFailed {
		s.save.reset()
	}
	s.saved = false

	var cmd tea.Cmd
	if s.provider == api.ProviderLocalServer {
		s.baseURLInput, cmd = s.baseURLInput.Update(msg)
	} else {
		s.apiKeyInput, cmd = s.apiKeyInput.Update(msg)
	}
	return a, cmd
}
