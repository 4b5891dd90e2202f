package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/sinanfen/todogether-cli/pkg/domain"
)

func makeTestList(title string) domain.TodoList {
	return domain.TodoList{
		ID:        uuid.New(),
		Title:     title,
		UpdatedAt: time.Now(),
	}
}

func loadedDashboard() dashboardModel {
	m := newDashboardModel(nil, &domain.User{Username: "sinan"}, time.Minute)
	own := makeTestList("Market alışverişi")
	m, _ = m.Update(dashboardDataMsg{
		lists:  []domain.TodoList{own},
		counts: map[uuid.UUID]itemCount{own.ID: {done: 1, total: 3}},
		partner: &domain.PartnerOverview{
			Username:  "eren",
			TodoLists: []domain.TodoList{makeTestList("Tatil planı")},
		},
	})
	return m
}

func TestDashboardRendersBothSections(t *testing.T) {
	m := loadedDashboard()
	view := m.View()
	for _, want := range []string{"Market alışverişi", "Tatil planı", "eren'in listeleri", "1/3"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view, got:\n%s", want, view)
		}
	}
}

func TestDashboardWithoutPartner(t *testing.T) {
	m := newDashboardModel(nil, &domain.User{Username: "sinan"}, time.Minute)
	m, _ = m.Update(dashboardDataMsg{lists: []domain.TodoList{makeTestList("Ev işleri")}})
	if !strings.Contains(m.View(), "Henüz bir partnerin yok") {
		t.Errorf("expected no-partner note, got:\n%s", m.View())
	}
}

func TestDashboardEnterOpensOwnList(t *testing.T) {
	m := loadedDashboard()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	open, ok := cmd().(openListMsg)
	if !ok {
		t.Fatalf("expected openListMsg, got %T", cmd())
	}
	if open.readOnly {
		t.Error("own list opened read-only")
	}
	if open.list.Title != "Market alışverişi" {
		t.Errorf("opened %q, want own list", open.list.Title)
	}
}

func TestDashboardPartnerListOpensReadOnly(t *testing.T) {
	m := loadedDashboard()
	m, _ = m.Update(keyRunes("j"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	open, ok := cmd().(openListMsg)
	if !ok {
		t.Fatalf("expected openListMsg, got %T", cmd())
	}
	if !open.readOnly {
		t.Error("partner list should open read-only")
	}
}

func TestDashboardPartnerListCannotBeEdited(t *testing.T) {
	m := loadedDashboard()
	m, _ = m.Update(keyRunes("j"))
	m, _ = m.Update(keyRunes("r"))
	if m.mode != dashViewing {
		t.Error("rename should be ignored on a partner list")
	}
	m, _ = m.Update(keyRunes("d"))
	if m.mode != dashViewing {
		t.Error("delete should be ignored on a partner list")
	}
}

func TestDashboardCreateFormRequiresTitle(t *testing.T) {
	m := loadedDashboard()
	m, _ = m.Update(keyRunes("n"))
	if !strings.Contains(m.View(), "Yeni Liste") {
		t.Fatalf("expected create form, got:\n%s", m.View())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // advance to description
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("expected no save command without a title")
	}
	if !strings.Contains(m.View(), "Lütfen bir başlık girin") {
		t.Errorf("expected validation message, got:\n%s", m.View())
	}
}

func TestDashboardDeleteAsksForConfirmation(t *testing.T) {
	m := loadedDashboard()
	m, _ = m.Update(keyRunes("d"))
	if !strings.Contains(m.View(), "silinsin mi") {
		t.Fatalf("expected confirmation prompt, got:\n%s", m.View())
	}
	m, _ = m.Update(keyRunes("h"))
	if m.mode != dashViewing {
		t.Error("expected 'h' to cancel the delete")
	}
}

func TestDashboardLogoutKey(t *testing.T) {
	m := loadedDashboard()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(logoutRequestedMsg); !ok {
		t.Fatalf("expected logoutRequestedMsg, got %T", cmd())
	}
}

func TestDashboardTickDoesNotSyncWhileEditing(t *testing.T) {
	m := loadedDashboard()
	m, _ = m.Update(keyRunes("n"))
	m, cmd := m.Update(syncTickMsg(time.Now()))
	if m.mode != dashCreating {
		t.Error("tick must not leave the form")
	}
	if cmd == nil {
		t.Error("expected the next tick to be scheduled")
	}
}

func TestDashboardLoadErrorIsShown(t *testing.T) {
	m := loadedDashboard()
	m, _ = m.Update(dashboardDataMsg{err: errors.New("connection refused")})
	if !strings.Contains(m.View(), "Listeler yüklenemedi") {
		t.Errorf("expected load error message, got:\n%s", m.View())
	}
}
