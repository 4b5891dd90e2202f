package tui

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sinanfen/todogether-cli/pkg/auth"
	"github.com/sinanfen/todogether-cli/pkg/domain"
)

// registerDoneMsg carries the outcome of a registration attempt.
type registerDoneMsg struct {
	result *auth.Result
	err    error
}

type inviteCopiedMsg struct{ err error }

const (
	regFieldUsername = iota
	regFieldPassword
	regFieldConfirm
	regFieldInvite
	regFieldCount
)

type registerModel struct {
	auth       *auth.Client
	fields     [regFieldCount]field
	focus      int
	submitting bool
	errText    string

	// Set after a successful registration that produced an invite token:
	// the token is shown once so it can be passed to the partner.
	user        *domain.User
	inviteToken string
	copied      bool

	width  int
	height int
}

func newRegisterModel(ac *auth.Client) registerModel {
	return registerModel{
		auth: ac,
		fields: [regFieldCount]field{
			{label: "Kullanıcı adı", placeholder: "kullanıcı adın"},
			{label: "Şifre", placeholder: "en az 6 karakter", secret: true},
			{label: "Şifre (tekrar)", placeholder: "şifreni doğrula", secret: true},
			{label: "Davet kodu", placeholder: "varsa partnerinin kodu"},
		},
	}
}

// validate applies the client-side checks before any network call.
// Returns an empty string when the form is good.
func (m registerModel) validate() string {
	username := strings.TrimSpace(m.fields[regFieldUsername].value)
	password := m.fields[regFieldPassword].value
	confirm := m.fields[regFieldConfirm].value

	switch {
	case username == "" || password == "" || confirm == "":
		return "Lütfen tüm alanları doldurun"
	case password != confirm:
		return "Şifreler eşleşmiyor"
	case utf8.RuneCountInString(password) < 6:
		return "Şifre en az 6 karakter olmalıdır"
	}
	return ""
}

func (m registerModel) submit() tea.Cmd {
	ac := m.auth
	req := auth.RegisterRequest{
		Username:    strings.TrimSpace(m.fields[regFieldUsername].value),
		Password:    m.fields[regFieldPassword].value,
		InviteToken: strings.TrimSpace(m.fields[regFieldInvite].value),
	}
	return func() tea.Msg {
		result, err := ac.Register(context.Background(), req)
		return registerDoneMsg{result: result, err: err}
	}
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case registerDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.errText = "Kayıt sırasında bir hata oluştu"
			return m, nil
		}
		if !msg.result.Success {
			m.errText = msg.result.Message
			return m, nil
		}
		if msg.result.InviteToken != "" {
			// Hold the user on this screen until they've seen the code.
			m.user = msg.result.User
			m.inviteToken = msg.result.InviteToken
			return m, nil
		}
		return m, func() tea.Msg { return sessionStartedMsg{user: msg.result.User} }

	case inviteCopiedMsg:
		m.copied = msg.err == nil
		return m, nil

	case tea.KeyMsg:
		if m.inviteToken != "" {
			switch msg.String() {
			case "c":
				token := m.inviteToken
				return m, func() tea.Msg { return inviteCopiedMsg{err: clipboard.WriteAll(token)} }
			case "enter":
				return m, func() tea.Msg {
					return sessionStartedMsg{user: m.user, inviteToken: m.inviteToken}
				}
			}
			return m, nil
		}
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.focus = (m.focus + 1) % regFieldCount
		case "shift+tab", "up":
			m.focus = (m.focus + regFieldCount - 1) % regFieldCount
		case "ctrl+r", "esc":
			return m, func() tea.Msg { return showLoginMsg{} }
		case "enter":
			if m.focus < regFieldCount-1 {
				m.focus++
				return m, nil
			}
			if errText := m.validate(); errText != "" {
				m.errText = errText
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

func (m registerModel) View() string {
	var b strings.Builder

	if m.inviteToken != "" {
		b.WriteString("\n  " + sectionHeaderStyle.Render("Hoş geldin!") + "\n\n")
		b.WriteString("  " + normalStyle.Render("Partnerini davet etmek için bu kodu paylaş:") + "\n\n")
		b.WriteString("  " + mineStyle.Render(m.inviteToken) + "\n\n")
		if m.copied {
			b.WriteString("  " + statusMsgStyle.Render("Panoya kopyalandı") + "\n\n")
		}
		b.WriteString("  " + helpEntry("c", "kopyala") + "  " + helpEntry("enter", "devam") + "\n")
		return b.String()
	}

	b.WriteString("\n  " + sectionHeaderStyle.Render("Kayıt Ol") + "\n\n")
	for i, f := range m.fields {
		b.WriteString("  " + f.render(i == m.focus && !m.submitting) + "\n")
	}
	b.WriteString("\n")
	switch {
	case m.submitting:
		b.WriteString("  " + dimStyle.Render("Kayıt yapılıyor…") + "\n")
	case m.errText != "":
		b.WriteString("  " + errorStyle.Render(m.errText) + "\n")
	}
	b.WriteString("\n  " + helpEntry("enter", "kayıt") + "  " +
		helpEntry("tab", "alan değiştir") + "  " +
		helpEntry("esc", "girişe dön") + "\n")
	return b.String()
}
