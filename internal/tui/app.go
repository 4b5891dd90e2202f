package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sinanfen/todogether-cli/pkg/auth"
	"github.com/sinanfen/todogether-cli/pkg/client"
	"github.com/sinanfen/todogether-cli/pkg/domain"
)

type screen int

const (
	screenValidating screen = iota
	screenLogin
	screenRegister
	screenDashboard
	screenDetail
)

// guardDoneMsg reports the outcome of the startup session check.
type guardDoneMsg struct {
	state auth.GuardState
	user  *domain.User
}

type loggedOutMsg struct{}

// App is the root Bubbletea model.
type App struct {
	auth      *auth.Client
	api       *client.Client
	guard     *auth.Guard
	syncEvery time.Duration

	screen    screen
	login     loginModel
	register  registerModel
	dashboard dashboardModel
	detail    detailModel
	user      *domain.User

	width  int
	height int
}

func NewApp(ac *auth.Client, api *client.Client, guard *auth.Guard, syncEvery time.Duration) App {
	return App{
		auth:      ac,
		api:       api,
		guard:     guard,
		syncEvery: syncEvery,
		login:     newLoginModel(ac),
		register:  newRegisterModel(ac),
	}
}

func (a App) Init() tea.Cmd {
	guard := a.guard
	return func() tea.Msg {
		state := guard.Init(context.Background())
		return guardDoneMsg{state: state, user: guard.User()}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(1) + blank(1) above the body.
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 2}
		a.login, _ = a.login.Update(bodyMsg)
		a.register, _ = a.register.Update(bodyMsg)
		a.dashboard, _ = a.dashboard.Update(bodyMsg)
		a.detail, _ = a.detail.Update(bodyMsg)
		return a, nil

	case guardDoneMsg:
		if msg.state == auth.StateAuthenticated {
			return a.startSession(msg.user)
		}
		a.screen = screenLogin
		return a, nil

	case sessionStartedMsg:
		a.guard.SetAuthenticated(msg.user)
		return a.startSession(msg.user)

	case showRegisterMsg:
		a.register = newRegisterModel(a.auth)
		a.screen = screenRegister
		return a, nil

	case showLoginMsg:
		a.login = newLoginModel(a.auth)
		a.screen = screenLogin
		return a, nil

	case openListMsg:
		a.detail = newDetailModel(a.api, msg.list, msg.readOnly)
		a.screen = screenDetail
		return a, a.detail.Init()

	case closeListMsg:
		a.screen = screenDashboard
		return a, fetchDashboard(a.api)

	case logoutRequestedMsg:
		guard := a.guard
		return a, func() tea.Msg {
			guard.Logout(context.Background())
			return loggedOutMsg{}
		}

	case loggedOutMsg:
		a.user = nil
		a.login = newLoginModel(a.auth)
		a.screen = screenLogin
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch a.screen {
	case screenLogin:
		a.login, cmd = a.login.Update(msg)
	case screenRegister:
		a.register, cmd = a.register.Update(msg)
	case screenDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case screenDetail:
		a.detail, cmd = a.detail.Update(msg)
	}
	return a, cmd
}

func (a App) startSession(user *domain.User) (tea.Model, tea.Cmd) {
	a.user = user
	a.dashboard = newDashboardModel(a.api, user, a.syncEvery)
	a.screen = screenDashboard
	return a, a.dashboard.Init()
}

func (a App) View() string {
	right := ""
	if a.user != nil {
		right = a.user.Username
	}
	var b strings.Builder
	b.WriteString("  " + renderHeader(right) + "\n")

	switch a.screen {
	case screenValidating:
		b.WriteString("\n  " + dimStyle.Render("Oturum doğrulanıyor…") + "\n")
	case screenLogin:
		b.WriteString(a.login.View())
	case screenRegister:
		b.WriteString(a.register.View())
	case screenDashboard:
		b.WriteString(a.dashboard.View())
	case screenDetail:
		b.WriteString(a.detail.View())
	}
	return b.String()
}
