package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"scribetui/api"
)

type loginResultMsg struct {
	gen   int
	token string
	err   error
}

// LoginModel drives the credential submission workflow for login. No local
// validation beyond non-empty fields; one request per submission.
type LoginModel struct {
	client  *api.Client
	timeout time.Duration

	usernameInput textinput.Model
	passwordInput textinput.Model
	focusIdx      int

	request inflight
	notice  string

	width  int
	height int
}

func NewLoginModel(client *api.Client, timeout time.Duration) LoginModel {
	username := textinput.New()
	username.Placeholder = "username"
	username.Prompt = "Username: "
	username.CharLimit = 64
	username.Width = 32
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "Password: "
	password.CharLimit = 128
	password.Width = 32
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return LoginModel{
		client:        client,
		timeout:       timeout,
		usernameInput: username,
		passwordInput: password,
	}
}

func (m *LoginModel) setSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *LoginModel) focusField(idx int) tea.Cmd {
	m.focusIdx = idx
	if idx == 0 {
		m.passwordInput.Blur()
		return m.usernameInput.Focus()
	}
	m.usernameInput.Blur()
	return m.passwordInput.Focus()
}

func (m *LoginModel) submit() tea.Cmd {
	if m.request.pending() {
		return nil
	}

	username := strings.TrimSpace(m.usernameInput.Value())
	password := m.passwordInput.Value()
	if username == "" || password == "" {
		m.request.fail("Username and password are required")
		return nil
	}

	ctx, gen := m.request.start()
	client := m.client
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		token, err := client.Login(ctx, username, password)
		return loginResultMsg{gen: gen, token: token, err: err}
	}
}

func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		if m.request.stale(msg.gen) || canceledResult(msg.err) {
			return m, nil
		}
		if msg.err != nil {
			m.request.fail(remoteErrorMessage(msg.err, "Login failed"))
			return m, nil
		}
		m.request.succeed()
		token := msg.token
		return m, func() tea.Msg { return authenticatedMsg{token: token} }

	case tea.KeyMsg:
		if m.request.pending() {
			// Controls are disabled while a request is outstanding
			return m, nil
		}

		switch msg.String() {
		case "tab", "down", "shift+tab", "up":
			// Two fields, so forward and backward land on the same one
			return m, m.focusField((m.focusIdx + 1) % 2)
		case "enter":
			return m, m.submit()
		}

		// Editing any field after a failure clears the error
		if m.request.phase == phaseFailed {
			m.request.reset()
		}
		m.notice = ""
	}

	var cmd tea.Cmd
	if m.focusIdx == 0 {
		m.usernameInput, cmd = m.usernameInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m LoginModel) View() string {
	modalWidth := 44

	leftStyle := lipgloss.NewStyle().Width(modalWidth).Align(lipgloss.Left)

	var lines []string
	if m.notice != "" {
		lines = append(lines, leftStyle.Foreground(warningColor).Render(m.notice))
		lines = append(lines, strings.Repeat(" ", modalWidth))
	}
	lines = append(lines, leftStyle.Render(m.usernameInput.View()))
	lines = append(lines, leftStyle.Render(m.passwordInput.View()))

	if m.request.pending() {
		lines = append(lines, strings.Repeat(" ", modalWidth))
		lines = append(lines, leftStyle.Render(DimStyle.Render("Signing in...")))
	} else if m.request.errMsg != "" {
		lines = append(lines, strings.Repeat(" ", modalWidth))
		for _, l := range strings.Split(wordWrap(m.request.errMsg, modalWidth-2), "\n") {
			lines = append(lines, leftStyle.Render(ErrorStyle.Render(l)))
		}
	}

	return RenderThreeSectionModal(
		"Sign in to Scribetui",
		lines,
		FormatFooter("tab", "Switch field", "Enter", "Sign in", "ctrl+c", "Quit"),
		ModalTypeInfo,
		modalWidth,
		m.width,
		m.height,
	)
}
