package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"scribetui/api"
	"scribetui/validate"
)

type registerResultMsg struct {
	gen   int
	token string
	err   error
}

// RegisterModel drives the first-account registration workflow. The
// password policy and confirmation match are hard local preconditions: no
// request leaves this screen until both hold.
type RegisterModel struct {
	client  *api.Client
	timeout time.Duration

	usernameInput textinput.Model
	passwordInput textinput.Model
	confirmInput  textinput.Model
	focusIdx      int

	request inflight

	width  int
	height int
}

func NewRegisterModel(client *api.Client, timeout time.Duration) RegisterModel {
	username := textinput.New()
	username.Placeholder = "username"
	username.Prompt = "Username: "
	username.CharLimit = validate.MaxUsernameLength
	username.Width = 32
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "Password: "
	password.CharLimit = 128
	password.Width = 32
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	confirm := textinput.New()
	confirm.Placeholder = "repeat password"
	confirm.Prompt = "Confirm:  "
	confirm.CharLimit = 128
	confirm.Width = 32
	confirm.EchoMode = textinput.EchoPassword
	confirm.EchoCharacter = '•'

	return RegisterModel{
		client:        client,
		timeout:       timeout,
		usernameInput: username,
		passwordInput: password,
		confirmInput:  confirm,
	}
}

func (m *RegisterModel) setSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *RegisterModel) inputs() []*textinput.Model {
	return []*textinput.Model{&m.usernameInput, &m.passwordInput, &m.confirmInput}
}

func (m *RegisterModel) focusField(idx int) tea.Cmd {
	inputs := m.inputs()
	m.focusIdx = (idx + len(inputs)) % len(inputs)
	var cmd tea.Cmd
	for i, input := range inputs {
		if i == m.focusIdx {
			cmd = input.Focus()
		} else {
			input.Blur()
		}
	}
	return cmd
}

// report is recomputed from the live field values on every render, never
// cached, so the per-rule feedback can never go stale.
func (m *RegisterModel) report() validate.PasswordReport {
	return validate.CheckPassword(m.passwordInput.Value())
}

func (m *RegisterModel) passwordsMatch() bool {
	return validate.PasswordsMatch(m.passwordInput.Value(), m.confirmInput.Value())
}

func (m *RegisterModel) submit() tea.Cmd {
	if m.request.pending() {
		return nil
	}

	username := strings.TrimSpace(m.usernameInput.Value())
	if msg := validate.Username(username); msg != "" {
		m.request.fail(msg)
		return nil
	}
	if !m.report().Valid() {
		m.request.fail("Password does not meet all requirements")
		return nil
	}
	if !m.passwordsMatch() {
		m.request.fail("Passwords do not match")
		return nil
	}

	password := m.passwordInput.Value()
	confirm := m.confirmInput.Value()
	ctx, gen := m.request.start()
	client := m.client
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		token, err := client.Register(ctx, username, password, confirm)
		return registerResultMsg{gen: gen, token: token, err: err}
	}
}

func (m RegisterModel) Update(msg tea.Msg) (RegisterModel, tea.Cmd) {
	switch msg := msg.(type) {
	case registerResultMsg:
		if m.request.stale(msg.gen) || canceledResult(msg.err) {
			return m, nil
		}
		if msg.err != nil {
			m.request.fail(remoteErrorMessage(msg.err, "Registration failed"))
			return m, nil
		}
		m.request.succeed()
		token := msg.token
		return m, func() tea.Msg { return authenticatedMsg{token: token} }

	case tea.KeyMsg:
		if m.request.pending() {
			return m, nil
		}

		switch msg.String() {
		case "tab", "down":
			return m, m.focusField(m.focusIdx + 1)
		case "shift+tab", "up":
			return m, m.focusField(m.focusIdx - 1)
		case "enter":
			return m, m.submit()
		}

		if m.request.phase == phaseFailed {
			m.request.reset()
		}
	}

	var cmd tea.Cmd
	input := m.inputs()[m.focusIdx]
	*input, cmd = input.Update(msg)
	return m, cmd
}

func (m RegisterModel) View() string {
	modalWidth := 48

	leftStyle := lipgloss.NewStyle().Width(modalWidth).Align(lipgloss.Left)

	var lines []string
	lines = append(lines, leftStyle.Render(DimStyle.Render("Create the first account for this server")))
	lines = append(lines, strings.Repeat(" ", modalWidth))
	lines = append(lines, leftStyle.Render(m.usernameInput.View()))
	lines = append(lines, leftStyle.Render(m.passwordInput.View()))
	lines = append(lines, leftStyle.Render(m.confirmInput.View()))
	lines = append(lines, strings.Repeat(" ", modalWidth))

	report := m.report()
	lines = append(lines, leftStyle.Render(ruleLine(report.MinLength, "At least 8 characters")))
	lines = append(lines, leftStyle.Render(ruleLine(report.Uppercase, "An uppercase letter")))
	lines = append(lines, leftStyle.Render(ruleLine(report.Lowercase, "A lowercase letter")))
	lines = append(lines, leftStyle.Render(ruleLine(report.Digit, "A digit")))
	lines = append(lines, leftStyle.Render(ruleLine(report.Special, "A special character")))
	lines = append(lines, leftStyle.Render(ruleLine(m.passwordsMatch(), "Passwords match")))

	if m.request.pending() {
		lines = append(lines, strings.Repeat(" ", modalWidth))
		lines = append(lines, leftStyle.Render(DimStyle.Render("Creating account...")))
	} else if m.request.errMsg != "" {
		lines = append(lines, strings.Repeat(" ", modalWidth))
		for _, l := range strings.Split(wordWrap(m.request.errMsg, modalWidth-2), "\n") {
			lines = append(lines, leftStyle.Render(ErrorStyle.Render(l)))
		}
	}

	return RenderThreeSectionModal(
		"Welcome to Scribetui",
		lines,
		FormatFooter("tab", "Next field", "Enter", "Create account", "ctrl+c", "Quit"),
		ModalTypeInfo,
		modalWidth,
		m.width,
		m.height,
	)
}

func ruleLine(passed bool, label string) string {
	if passed {
		return RulePassStyle.Render("✓ " + label)
	}
	return RuleFailStyle.Render("✗ " + label)
}
