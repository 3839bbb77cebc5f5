package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"scribetui/api"
	"scribetui/config"
	"scribetui/session"
)

type recordingsLoadedMsg struct {
	gen        int
	recordings []api.Recording
	err        error
}

// AppView is the protected content screen: the transcription listing plus
// the two workflows reachable from it. It reads the session but never
// writes it; auth rejections are reported upward as sessionExpiredMsg.
type AppView struct {
	cfg     *config.Config
	client  *api.Client
	session *session.Session

	recordings  []api.Recording
	selectedIdx int
	list        inflight

	filterMode         bool
	filterInput        textinput.Model
	filteredRecordings []api.Recording

	llmSettings LLMSettingsState
	ingest      IngestState

	width  int
	height int
}

func NewAppView(cfg *config.Config, client *api.Client, sess *session.Session) AppView {
	filterInput := textinput.New()
	filterInput.Prompt = "Filter: "
	filterInput.CharLimit = 64

	return AppView{
		cfg:         cfg,
		client:      client,
		session:     sess,
		filterInput: filterInput,
		llmSettings: NewLLMSettingsState(),
		ingest:      NewIngestState(),
	}
}

func (a *AppView) setSize(width, height int) {
	a.width = width
	a.height = height
}

// Init kicks off the first listing load. Pointer receiver: the generation
// recorded by start must land in the gate's stored copy or the result would
// be dropped as stale.
func (a *AppView) Init() tea.Cmd {
	return a.loadRecordingsCmd()
}

// teardown cancels everything this screen has in flight. Called by the
// gate on logout so late responses land on dead generations.
func (a *AppView) teardown() {
	a.list.teardown()
	a.llmSettings.close()
	a.ingest.close()
}

func (a *AppView) loadRecordingsCmd() tea.Cmd {
	ctx, gen := a.list.start()
	client := a.client
	timeout := a.cfg.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		recordings, err := client.ListRecordings(ctx)
		return recordingsLoadedMsg{gen: gen, recordings: recordings, err: err}
	}
}

func (a AppView) getRecordingList() []api.Recording {
	if a.filterMode && a.filterInput.Value() != "" {
		return a.filteredRecordings
	}
	return a.recordings
}

func (a *AppView) applyFilter() {
	filterValue := a.filterInput.Value()
	if filterValue == "" {
		a.filteredRecordings = a.recordings
		return
	}

	targets := make([]string, len(a.recordings))
	for i, r := range a.recordings {
		targets[i] = r.Title
	}

	matches := fuzzy.Find(filterValue, targets)
	a.filteredRecordings = make([]api.Recording, len(matches))
	for i, match := range matches {
		a.filteredRecordings[i] = a.recordings[match.Index]
	}

	if a.selectedIdx >= len(a.filteredRecordings) && len(a.filteredRecordings) > 0 {
		a.selectedIdx = len(a.filteredRecordings) - 1
	}
}

func (a AppView) Update(msg tea.Msg) (AppView, tea.Cmd) {
	switch msg := msg.(type) {
	case recordingsLoadedMsg:
		if a.list.stale(msg.gen) || canceledResult(msg.err) {
			return a, nil
		}
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthorized) {
				return a, func() tea.Msg { return sessionExpiredMsg{} }
			}
			a.list.fail(remoteErrorMessage(msg.err, "Failed to load recordings"))
			return a, nil
		}
		a.list.succeed()
		a.recordings = msg.recordings
		if a.selectedIdx >= len(a.recordings) {
			a.selectedIdx = 0
		}
		return a, nil

	case llmConfigLoadedMsg:
		return a.handleLLMConfigLoaded(msg)

	case llmConfigSavedMsg:
		return a.handleLLMConfigSaved(msg)

	case importResultMsg:
		return a.handleImportResult(msg)

	case ingestAutoCloseMsg:
		return a.handleIngestAutoClose(msg)

	case importCompletedMsg:
		// An ingestion finished; refresh the listing
		return a, a.loadRecordingsCmd()

	case tea.KeyMsg:
		if a.llmSettings.visible {
			return a.handleLLMSettingsInput(msg)
		}
		if a.ingest.visible {
			return a.handleIngestInput(msg)
		}
		return a.handleMainInput(msg)
	}

	return a, nil
}

func (a AppView) handleMainInput(msg tea.KeyMsg) (AppView, tea.Cmd) {
	if a.filterMode {
		switch msg.String() {
		case "esc":
			a.filterMode = false
			a.filterInput.Blur()
			a.filterInput.SetValue("")
			return a, nil
		case "enter":
			a.filterMode = false
			a.filterInput.Blur()
			return a, nil
		}

		var cmd tea.Cmd
		a.filterInput, cmd = a.filterInput.Update(msg)
		a.applyFilter()
		return a, cmd
	}

	switch msg.String() {
	case "alt+s":
		return a, a.openLLMSettings()

	case "alt+i":
		return a, a.openIngest()

	case "alt+r":
		return a, a.loadRecordingsCmd()

	case "alt+l":
		a.teardown()
		return a, func() tea.Msg { return logoutMsg{} }

	case "/":
		a.filterMode = true
		a.filterInput.SetValue("")
		a.filteredRecordings = a.recordings
		return a, a.filterInput.Focus()

	case "j", "down":
		list := a.getRecordingList()
		if len(list) > 0 {
			a.selectedIdx = (a.selectedIdx + 1) % len(list)
		}
		return a, nil

	case "k", "up":
		list := a.getRecordingList()
		if len(list) > 0 {
			a.selectedIdx = (a.selectedIdx - 1 + len(list)) % len(list)
		}
		return a, nil
	}

	return a, nil
}

func (a AppView) View() string {
	if a.llmSettings.visible {
		return a.renderLLMSettings(a.width, a.height)
	}
	if a.ingest.visible {
		return a.renderIngest(a.width, a.height)
	}

	title := AccentStyle.Bold(true).Render("Scribetui") + TitleStyle.Render(" - Recordings")

	var body strings.Builder
	list := a.getRecordingList()

	switch {
	case a.list.pending() && len(a.recordings) == 0:
		body.WriteString(DimStyle.Render("Loading recordings..."))
	case a.list.errMsg != "":
		body.WriteString(ErrorStyle.Render(a.list.errMsg))
	case len(list) == 0:
		body.WriteString(DimStyle.Render("No recordings yet. Alt+I imports one from YouTube."))
	default:
		for i, r := range list {
			line := fmt.Sprintf("%-40s %-12s %s",
				truncate(r.Title, 40), r.Status, r.CreatedAt.Format("2006-01-02 15:04"))
			if i == a.selectedIdx {
				body.WriteString(SelectedStyle.Render("> " + line))
			} else {
				body.WriteString("  " + line)
			}
			body.WriteString("\n")
		}
	}

	var filterRow string
	if a.filterMode {
		filterRow = a.filterInput.View()
	}

	statusBar := a.renderStatusBar()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		body.String(),
		filterRow,
		statusBar,
	)
}

func (a AppView) renderStatusBar() string {
	bar := FormatFooter(
		"alt+i", "Import",
		"alt+s", "LLM settings",
		"alt+r", "Refresh",
		"/", "Filter",
		"alt+l", "Logout",
		"ctrl+c", "Quit",
	)

	if exp, ok := a.session.TokenExpiresAt(); ok {
		remaining := time.Until(exp).Round(time.Minute)
		if remaining > 0 {
			bar += DimStyle.Render(fmt.Sprintf("  |  session expires in %s", remaining))
		}
	}

	return StatusStyle.Render(bar)
}

// truncate shortens a title to the column width without splitting a rune.
func truncate(s string, max int) string {
	return runewidth.Truncate(s, max, "...")
}
