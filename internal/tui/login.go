package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sinanfen/todogether-cli/pkg/auth"
	"github.com/sinanfen/todogether-cli/pkg/domain"
)

// loginDoneMsg carries the outcome of a login attempt.
type loginDoneMsg struct {
	result *auth.Result
	err    error
}

// sessionStartedMsg tells the root model that the user is in. Emitted by
// both the login and register screens.
type sessionStartedMsg struct {
	user        *domain.User
	inviteToken string
}

// showRegisterMsg switches to the register screen.
type showRegisterMsg struct{}

// showLoginMsg switches (back) to the login screen.
type showLoginMsg struct{}

type loginModel struct {
	auth       *auth.Client
	fields     [2]field // username, password
	focus      int
	submitting bool
	errText    string
	width      int
	height     int
}

func newLoginModel(ac *auth.Client) loginModel {
	return loginModel{
		auth: ac,
		fields: [2]field{
			{label: "Kullanıcı adı", placeholder: "kullanıcı adın"},
			{label: "Şifre", placeholder: "şifren", secret: true},
		},
	}
}

func (m loginModel) submit() tea.Cmd {
	ac := m.auth
	username := m.fields[0].value
	password := m.fields[1].value
	return func() tea.Msg {
		result, err := ac.Login(context.Background(), username, password)
		return loginDoneMsg{result: result, err: err}
	}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loginDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.errText = "Giriş sırasında bir hata oluştu"
			return m, nil
		}
		if !msg.result.Success {
			m.errText = msg.result.Message
			return m, nil
		}
		return m, func() tea.Msg { return sessionStartedMsg{user: msg.result.User} }

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.focus = (m.focus + 1) % len(m.fields)
		case "shift+tab", "up":
			m.focus = (m.focus + len(m.fields) - 1) % len(m.fields)
		case "ctrl+r":
			return m, func() tea.Msg { return showRegisterMsg{} }
		case "enter":
			if m.focus < len(m.fields)-1 {
				m.focus++
				return m, nil
			}
			if strings.TrimSpace(m.fields[0].value) == "" || m.fields[1].value == "" {
				m.errText = "Lütfen tüm alanları doldurun"
				return m, nil
			}
			m.errText = ""
			m.submitting = true
			return m, m.submit()
		default:
			m.fields[m.focus].edit(msg.String())
		}
	}
	return m, nil
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString("\n  " + sectionHeaderStyle.Render("Giriş Yap") + "\n\n")
	for i, f := range m.fields {
		b.WriteString("  " + f.render(i == m.focus && !m.submitting) + "\n")
	}
	b.WriteString("\n")
	switch {
	case m.submitting:
		b.WriteString("  " + dimStyle.Render("Giriş yapılıyor…") + "\n")
	case m.errText != "":
		b.WriteString("  " + errorStyle.Render(m.errText) + "\n")
	}
	b.WriteString("\n  " + helpEntry("enter", "giriş") + "  " +
		helpEntry("tab", "alan değiştir") + "  " +
		helpEntry("ctrl+r", "kayıt ol") + "  " +
		helpEntry("ctrl+c", "çıkış") + "\n")
	return b.String()
}
