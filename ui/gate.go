package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"scribetui/api"
	"scribetui/config"
	"scribetui/session"
)

// gateScreen enumerates the four mutually exclusive top-level screens. The
// active one is derived from session state in strict priority order, never
// stored, so the exhaustiveness of the ladder stays checkable in one place.
type gateScreen int

const (
	screenLoading gateScreen = iota
	screenRegister
	screenLogin
	screenContent
)

// authenticatedMsg is emitted by the login and registration screens when
// the server issues a bearer token.
type authenticatedMsg struct {
	token string
}

// sessionExpiredMsg is emitted by any authenticated workflow whose request
// was rejected by the server. The gate is the only component that acts on
// it.
type sessionExpiredMsg struct{}

// logoutMsg is an explicit user-requested logout.
type logoutMsg struct{}

type initResultMsg struct {
	needsRegistration bool
	err               error
}

// Gate decides which screen is rendered and is the sole writer of the
// session state.
type Gate struct {
	cfg     *config.Config
	client  *api.Client
	session *session.Session

	loadingSpinner spinner.Model
	login          LoginModel
	register       RegisterModel
	content        AppView

	width  int
	height int
}

func NewGate(cfg *config.Config, client *api.Client) Gate {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	sess := session.New()

	return Gate{
		cfg:            cfg,
		client:         client,
		session:        sess,
		loadingSpinner: sp,
		login:          NewLoginModel(client, cfg.RequestTimeout),
		register:       NewRegisterModel(client, cfg.RequestTimeout),
	}
}

// Session exposes the gate's session for inspection (tests, status display).
func (g Gate) Session() *session.Session {
	return g.session
}

func (g Gate) activeScreen() gateScreen {
	switch {
	case !g.session.IsInitialized():
		return screenLoading
	case g.session.RequiresRegistration():
		return screenRegister
	case !g.session.IsAuthenticated():
		return screenLogin
	default:
		return screenContent
	}
}

// checkRegistrationStatus is the one-shot initialization probe.
func (g Gate) checkRegistrationStatus() tea.Cmd {
	client := g.client
	timeout := g.cfg.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		status, err := client.CheckRegistrationStatus(ctx)
		return initResultMsg{needsRegistration: status.NeedsRegistration, err: err}
	}
}

func (g Gate) Init() tea.Cmd {
	return tea.Batch(g.loadingSpinner.Tick, g.checkRegistrationStatus())
}

func (g Gate) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		g.width = msg.Width
		g.height = msg.Height
		g.login.setSize(msg.Width, msg.Height)
		g.register.setSize(msg.Width, msg.Height)
		g.content.setSize(msg.Width, msg.Height)
		return g, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return g, tea.Quit
		}

	case initResultMsg:
		if msg.err != nil {
			// Fail open: assume no registration is required and let
			// login fail naturally if no account exists. The gate must
			// never wedge in the loading state.
			if config.DebugLog != nil {
				config.DebugLog.Warnf("[Gate] registration status probe failed: %v", msg.err)
			}
			g.session.Initialize(false)
			return g, nil
		}
		g.session.Initialize(msg.needsRegistration)
		return g, nil

	case authenticatedMsg:
		g.session.SetToken(msg.token)
		g.client.SetToken(msg.token)
		g.content = NewAppView(g.cfg, g.client, g.session)
		g.content.setSize(g.width, g.height)
		return g, g.content.Init()

	case sessionExpiredMsg:
		g.clearAuth()
		g.login.notice = "Session expired, please log in again"
		return g, nil

	case logoutMsg:
		g.clearAuth()
		return g, nil
	}

	switch g.activeScreen() {
	case screenLoading:
		var cmd tea.Cmd
		g.loadingSpinner, cmd = g.loadingSpinner.Update(msg)
		return g, cmd

	case screenRegister:
		var cmd tea.Cmd
		g.register, cmd = g.register.Update(msg)
		return g, cmd

	case screenLogin:
		var cmd tea.Cmd
		g.login, cmd = g.login.Update(msg)
		return g, cmd

	default:
		var cmd tea.Cmd
		g.content, cmd = g.content.Update(msg)
		return g, cmd
	}
}

// clearAuth tears down the authenticated screen and drops the token. The
// content screen's in-flight requests are cancelled so late responses
// cannot touch a logged-out UI.
func (g *Gate) clearAuth() {
	g.content.teardown()
	g.session.Clear()
	g.client.ClearToken()
	g.login = NewLoginModel(g.client, g.cfg.RequestTimeout)
	g.login.setSize(g.width, g.height)
}

func (g Gate) View() string {
	switch g.activeScreen() {
	case screenLoading:
		return renderSpinnerLine("Connecting to server...", g.loadingSpinner.View(), g.width, g.height)
	case screenRegister:
		return g.register.View()
	case screenLogin:
		return g.login.View()
	default:
		return g.content.View()
	}
}
