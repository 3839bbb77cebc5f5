package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"scribetui/api"
)

// renderLLMSettings renders the LLM configuration sub-screen
func (a AppView) renderLLMSettings(width, height int) string {
	s := a.llmSettings
	modalWidth := 52

	leftStyle := lipgloss.NewStyle().Width(modalWidth).Align(lipgloss.Left)

	var lines []string

	// Provider tab row
	var tabs []string
	for _, id := range llmProviderTabs {
		name := llmProviderNames[id]
		if id == s.provider {
			tabs = append(tabs, SelectedStyle.Render("["+name+"]"))
		} else {
			tabs = append(tabs, DimStyle.Render(" "+name+" "))
		}
	}
	providerRow := "Provider: " + strings.Join(tabs, " ")
	if s.focusIdx == 0 {
		providerRow = AccentStyle.Render("> ") + providerRow
	} else {
		providerRow = "  " + providerRow
	}
	lines = append(lines, leftStyle.Render(providerRow))
	lines = append(lines, strings.Repeat(" ", modalWidth))

	// Variant field
	marker := "  "
	if s.focusIdx == 1 {
		marker = AccentStyle.Render("> ")
	}
	switch s.provider {
	case api.ProviderLocalServer:
		lines = append(lines, leftStyle.Render(marker+s.baseURLInput.View()))
	case api.ProviderHostedAPI:
		lines = append(lines, leftStyle.Render(marker+s.apiKeyInput.View()))
		if note := s.keyDisplayNote(); note != "" {
			lines = append(lines, leftStyle.Render(DimStyle.Render("  "+note)))
		}
	}
	lines = append(lines, strings.Repeat(" ", modalWidth))

	// Status line
	switch {
	case s.load.pending():
		lines = append(lines, leftStyle.Render(DimStyle.Render("Loading configuration...")))
	case s.save.pending():
		lines = append(lines, leftStyle.Render(DimStyle.Render("Saving...")))
	case s.save.errMsg != "":
		for _, l := range strings.Split(wordWrap(s.save.errMsg, modalWidth-2), "\n") {
			lines = append(lines, leftStyle.Render(ErrorStyle.Render(l)))
		}
	case s.saved:
		lines = append(lines, leftStyle.Render(SuccessStyle.Render("Configuration saved and activated")))
	case s.loadNote != "":
		lines = append(lines, leftStyle.Render(DimStyle.Render(s.loadNote)))
	}

	saveHint := "Save & activate"
	if !s.canSave() {
		saveHint = "Save (disabled)"
	}

	return RenderThreeSectionModal(
		"LLM Provider Settings",
		lines,
		FormatFooter("h/l", "Provider", "tab", "Field", "Enter", saveHint, "Esc", "Close"),
		ModalTypeInfo,
		modalWidth,
		width,
		height,
	)
}
