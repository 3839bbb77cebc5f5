package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"scribetui/api"
	"scribetui/validate"
)

// ingestAutoCloseDelay is how long the terminal "complete" display stays up
// before the dialog closes itself.
const ingestAutoCloseDelay = 1500 * time.Millisecond

type importResultMsg struct {
	gen int
	err error
}

type ingestAutoCloseMsg struct {
	gen int
}

// importCompletedMsg tells the content screen an ingestion finished so it
// can refresh its listing.
type importCompletedMsg struct{}

// IngestState manages the YouTube import dialog. Closing it at any point
// resets every field; nothing leaks across invocations.
type IngestState struct {
	visible bool

	urlInput   textinput.Model
	titleInput textinput.Model
	focusIdx   int

	// Extracted for the preview line only; absence never blocks submission
	videoID string

	request inflight
}

func NewIngestState() IngestState {
	url := textinput.New()
	url.Placeholder = "https://www.youtube.com/watch?v=..."
	url.Prompt = "URL:   "
	url.CharLimit = 300
	url.Width = 46

	title := textinput.New()
	title.Placeholder = "optional, derived from the video if blank"
	title.Prompt = "Title: "
	title.CharLimit = 200
	title.Width = 46

	return IngestState{
		urlInput:   url,
		titleInput: title,
	}
}

// close resets the dialog to its initial state and invalidates any
// in-flight request. The generation counter survives the reset so a late
// result can never match a future incarnation of the dialog.
func (s *IngestState) close() {
	s.request.teardown()
	gen := s.request.gen
	*s = NewIngestState()
	s.request.gen = gen
}

func (a *AppView) openIngest() tea.Cmd {
	gen := a.ingest.request.gen
	a.ingest = NewIngestState()
	a.ingest.request.gen = gen
	a.ingest.visible = true
	return a.ingest.urlInput.Focus()
}

func (a *AppView) submitIngestCmd() tea.Cmd {
	s := &a.ingest
	if s.request.pending() || s.request.phase == phaseSucceeded {
		return nil
	}

	s.request.phase = phaseValidating
	url := strings.TrimSpace(s.urlInput.Value())
	if !validate.IsYouTubeURL(url) {
		s.request.fail("Enter a valid YouTube URL")
		return nil
	}

	title := strings.TrimSpace(s.titleInput.Value())
	ctx, gen := s.request.start()
	client := a.client
	timeout := a.cfg.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		err := client.ImportYouTube(ctx, url, title)
		return importResultMsg{gen: gen, err: err}
	}
}

func (a AppView) handleImportResult(msg importResultMsg) (AppView, tea.Cmd) {
	if a.ingest.request.stale(msg.gen) || canceledResult(msg.err) {
		return a, nil
	}

	if msg.err != nil {
		if errors.Is(msg.err, api.ErrUnauthorized) {
			return a, func() tea.Msg { return sessionExpiredMsg{} }
		}
		// The form stays editable for a retry
		a.ingest.request.fail(remoteErrorMessage(msg.err, "Import failed"))
		return a, nil
	}

	a.ingest.request.succeed()
	gen := a.ingest.request.gen
	return a, tea.Tick(ingestAutoCloseDelay, func(time.Time) tea.Msg {
		return ingestAutoCloseMsg{gen: gen}
	})
}

func (a AppView) handleIngestAutoClose(msg ingestAutoCloseMsg) (AppView, tea.Cmd) {
	if a.ingest.request.stale(msg.gen) || a.ingest.request.phase != phaseSucceeded {
		return a, nil
	}
	a.ingest.close()
	return a, func() tea.Msg { return importCompletedMsg{} }
}

// handleIngestInput handles keyboard input for the import dialog
func (a AppView) handleIngestInput(msg tea.KeyMsg) (AppView, tea.Cmd) {
	s := &a.ingest

	if s.request.pending() || s.request.phase == phaseSucceeded {
		// Pending disables everything; the success display just waits
		// for its auto-close tick. Esc still abandons the dialog.
		if msg.String() == "esc" {
			s.close()
			return a, nil
		}
		return a, nil
	}

	switch msg.String() {
	case "esc":
		s.close()
		return a, nil

	case "tab", "down", "shift+tab", "up":
		s.focusIdx = (s.focusIdx + 1) % 2
		if s.focusIdx == 0 {
			s.titleInput.Blur()
			return a, s.urlInput.Focus()
		}
		s.urlInput.Blur()
		return a, s.titleInput.Focus()

	case "enter":
		return a, a.submitIngestCmd()

	case "ctrl+v":
		if s.focusIdx == 0 {
			if text, err := clipboard.ReadAll(); err == nil {
				s.urlInput.SetValue(strings.TrimSpace(text))
				s.videoID = validate.ExtractVideoID(s.urlInput.Value())
			}
		}
		return a, nil
	}

	if s.request.phase == phaseFailed {
		s.request.reset()
	}

	var cmd tea.Cmd
	if s.focusIdx == 0 {
		s.urlInput, cmd = s.urlInput.Update(msg)
		s.videoID = validate.ExtractVideoID(s.urlInput.Value())
	} else {
		s.titleInput, cmd = s.titleInput.Update(msg)
	}
	return a, cmd
}

// renderIngest renders the import dialog
func (a AppView) renderIngest(width, height int) string {
	s := a.ingest
	modalWidth := 56

	leftStyle := lipgloss.NewStyle().Width(modalWidth).Align(lipgloss.Left)

	var lines []string
	lines = append(lines, leftStyle.Render(s.urlInput.View()))
	lines = append(lines, leftStyle.Render(s.titleInput.View()))

	if s.videoID != "" {
		lines = append(lines, strings.Repeat(" ", modalWidth))
		lines = append(lines, leftStyle.Render(DimStyle.Render("Preview: "+validate.ThumbnailURL(s.videoID))))
	}

	switch {
	case s.request.pending():
		lines = append(lines, strings.Repeat(" ", modalWidth))
		lines = append(lines, leftStyle.Render(DimStyle.Render("Submitting import request...")))
	case s.request.phase == phaseSucceeded:
		lines = append(lines, strings.Repeat(" ", modalWidth))
		lines = append(lines, leftStyle.Render(SuccessStyle.Render("✓ Import started, transcription queued")))
	case s.request.errMsg != "":
		lines = append(lines, strings.Repeat(" ", modalWidth))
		for _, l := range strings.Split(wordWrap(s.request.errMsg, modalWidth-2), "\n") {
			lines = append(lines, leftStyle.Render(ErrorStyle.Render(l)))
		}
	}

	return RenderThreeSectionModal(
		"Import from YouTube",
		lines,
		FormatFooter("tab", "Switch field", "ctrl+v", "Paste URL", "Enter", "Import", "Esc", "Cancel"),
		ModalTypeInfo,
		modalWidth,
		width,
		height,
	)
}
