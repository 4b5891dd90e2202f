package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/sinanfen/todogether-cli/pkg/auth"
	"github.com/sinanfen/todogether-cli/pkg/domain"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeInto(m loginModel, s string) loginModel {
	for _, r := range s {
		m, _ = m.Update(keyRunes(string(r)))
	}
	return m
}

func TestLoginViewShowsForm(t *testing.T) {
	m := newLoginModel(nil)
	view := m.View()
	if !strings.Contains(view, "Giriş Yap") {
		t.Errorf("expected form title in view, got:\n%s", view)
	}
	if !strings.Contains(view, "Kullanıcı adı") {
		t.Errorf("expected username label in view, got:\n%s", view)
	}
}

func TestLoginEmptyFieldsRejected(t *testing.T) {
	m := newLoginModel(nil)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // advance to password
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("expected no submit command for empty form")
	}
	if !strings.Contains(m.View(), "Lütfen tüm alanları doldurun") {
		t.Errorf("expected validation message, got:\n%s", m.View())
	}
}

func TestLoginSecretFieldIsMasked(t *testing.T) {
	m := newLoginModel(nil)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeInto(m, "gizli")
	view := m.View()
	if strings.Contains(view, "gizli") {
		t.Errorf("password rendered in clear text:\n%s", view)
	}
	if !strings.Contains(view, "•••••") {
		t.Errorf("expected masked password, got:\n%s", view)
	}
}

func TestLoginSuccessStartsSession(t *testing.T) {
	m := newLoginModel(nil)
	user := &domain.User{ID: uuid.New(), Username: "sinan"}
	m, cmd := m.Update(loginDoneMsg{result: &auth.Result{Success: true, User: user}})
	if cmd == nil {
		t.Fatal("expected a command after successful login")
	}
	started, ok := cmd().(sessionStartedMsg)
	if !ok {
		t.Fatalf("expected sessionStartedMsg, got %T", cmd())
	}
	if started.user != user {
		t.Error("expected the logged-in user to be forwarded")
	}
}

func TestLoginRejectionShowsServerMessage(t *testing.T) {
	m := newLoginModel(nil)
	m, _ = m.Update(loginDoneMsg{result: &auth.Result{Message: "Kullanıcı adı veya şifre hatalı"}})
	if !strings.Contains(m.View(), "Kullanıcı adı veya şifre hatalı") {
		t.Errorf("expected server message in view, got:\n%s", m.View())
	}
}

func TestLoginNetworkErrorShowsFallback(t *testing.T) {
	m := newLoginModel(nil)
	m, _ = m.Update(loginDoneMsg{err: errors.New("boom")})
	if !strings.Contains(m.View(), "Giriş sırasında bir hata oluştu") {
		t.Errorf("expected fallback message, got:\n%s", m.View())
	}
}

func TestLoginCtrlRSwitchesToRegister(t *testing.T) {
	m := newLoginModel(nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(showRegisterMsg); !ok {
		t.Fatalf("expected showRegisterMsg, got %T", cmd())
	}
}
