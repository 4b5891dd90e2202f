package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sinanfen/todogether-cli/pkg/auth"
	"github.com/sinanfen/todogether-cli/pkg/client"
	"github.com/sinanfen/todogether-cli/pkg/domain"
)

func newTestApp(t *testing.T) (App, *auth.Guard) {
	t.Helper()
	store := auth.NewStore(filepath.Join(t.TempDir(), "session.json"), zerolog.Nop())
	ac := auth.NewClient("http://127.0.0.1:0", store, zerolog.Nop())
	api := client.New("http://127.0.0.1:0", ac, client.Options{}, zerolog.Nop())
	guard := auth.NewGuard(ac, zerolog.Nop())
	return NewApp(ac, api, guard, time.Minute), guard
}

func TestAppHeaderAlwaysRendered(t *testing.T) {
	a, _ := newTestApp(t)
	if !strings.Contains(a.View(), "TO-DOGETHER") {
		t.Errorf("expected banner in view, got:\n%s", a.View())
	}
}

func TestAppLoginPromptShowsLoginScreen(t *testing.T) {
	a, _ := newTestApp(t)
	model, _ := a.Update(guardDoneMsg{state: auth.StateLoginPrompt})
	a = model.(App)
	if !strings.Contains(a.View(), "Giriş Yap") {
		t.Errorf("expected login screen, got:\n%s", a.View())
	}
}

func TestAppValidSessionGoesStraightToDashboard(t *testing.T) {
	a, _ := newTestApp(t)
	user := &domain.User{ID: uuid.New(), Username: "sinan"}
	model, cmd := a.Update(guardDoneMsg{state: auth.StateAuthenticated, user: user})
	a = model.(App)
	if cmd == nil {
		t.Fatal("expected the dashboard to start loading")
	}
	view := a.View()
	if !strings.Contains(view, "Senin listelerin") {
		t.Errorf("expected dashboard, got:\n%s", view)
	}
	if !strings.Contains(view, "sinan") {
		t.Errorf("expected username in header, got:\n%s", view)
	}
}

func TestAppSessionStartedMarksGuardAuthenticated(t *testing.T) {
	a, guard := newTestApp(t)
	user := &domain.User{ID: uuid.New(), Username: "eren"}
	model, _ := a.Update(sessionStartedMsg{user: user})
	a = model.(App)
	if guard.State() != auth.StateAuthenticated {
		t.Errorf("guard state = %v, want authenticated", guard.State())
	}
	if !strings.Contains(a.View(), "Senin listelerin") {
		t.Errorf("expected dashboard, got:\n%s", a.View())
	}
}

func TestAppRegisterScreenSwitch(t *testing.T) {
	a, _ := newTestApp(t)
	model, _ := a.Update(guardDoneMsg{state: auth.StateLoginPrompt})
	a = model.(App)
	model, _ = a.Update(showRegisterMsg{})
	a = model.(App)
	if !strings.Contains(a.View(), "Kayıt Ol") {
		t.Errorf("expected register screen, got:\n%s", a.View())
	}
	model, _ = a.Update(showLoginMsg{})
	a = model.(App)
	if !strings.Contains(a.View(), "Giriş Yap") {
		t.Errorf("expected login screen again, got:\n%s", a.View())
	}
}

func TestAppOpenAndCloseList(t *testing.T) {
	a, _ := newTestApp(t)
	user := &domain.User{ID: uuid.New(), Username: "sinan"}
	model, _ := a.Update(sessionStartedMsg{user: user})
	a = model.(App)

	list := domain.TodoList{ID: uuid.New(), Title: "Hafta sonu planı"}
	model, _ = a.Update(openListMsg{list: list})
	a = model.(App)
	if !strings.Contains(a.View(), "Hafta sonu planı") {
		t.Errorf("expected detail screen, got:\n%s", a.View())
	}

	model, _ = a.Update(closeListMsg{})
	a = model.(App)
	if !strings.Contains(a.View(), "Senin listelerin") {
		t.Errorf("expected dashboard after closing, got:\n%s", a.View())
	}
}

func TestAppLogoutLandsOnLogin(t *testing.T) {
	a, _ := newTestApp(t)
	model, _ := a.Update(loggedOutMsg{})
	a = model.(App)
	if !strings.Contains(a.View(), "Giriş Yap") {
		t.Errorf("expected login screen after logout, got:\n%s", a.View())
	}
}

func TestAppCtrlCQuits(t *testing.T) {
	a, _ := newTestApp(t)
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg, got %T", cmd())
	}
}
