package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sinanfen/todogether-cli/pkg/client"
	"github.com/sinanfen/todogether-cli/pkg/domain"
)

type itemsLoadedMsg struct {
	items []domain.TodoItem
	err   error
}

type itemSavedMsg struct{ err error }

type itemDeletedMsg struct{ err error }

// closeListMsg asks the root model to return to the dashboard.
type closeListMsg struct{}

type detailMode int

const (
	detailViewing detailMode = iota
	detailAdding
	detailEditing
	detailConfirmDelete
)

type detailModel struct {
	api      *client.Client
	list     domain.TodoList
	readOnly bool

	items   []domain.TodoItem
	cursor  int
	mode    detailMode
	form    [2]field
	focus   int
	sev     domain.Severity
	loading bool
	errText string

	width  int
	height int
}

func newDetailModel(api *client.Client, list domain.TodoList, readOnly bool) detailModel {
	return detailModel{
		api:      api,
		list:     list,
		readOnly: readOnly,
		sev:      domain.SeverityMedium,
		loading:  true,
	}
}

func (m detailModel) Init() tea.Cmd {
	return m.fetchItems()
}

func (m detailModel) fetchItems() tea.Cmd {
	api, listID := m.api, m.list.ID
	return func() tea.Msg {
		items, err := api.ListTodoItems(context.Background(), listID)
		return itemsLoadedMsg{items: items, err: err}
	}
}

func (m detailModel) saveItem() tea.Cmd {
	api, listID := m.api, m.list.ID
	title := strings.TrimSpace(m.form[0].value)
	desc := strings.TrimSpace(m.form[1].value)
	sev := m.sev
	if m.mode == detailAdding {
		return func() tea.Msg {
			_, err := api.CreateTodoItem(context.Background(), listID, client.CreateTodoItemRequest{
				Title:       title,
				Description: desc,
				Severity:    sev,
			})
			return itemSavedMsg{err: err}
		}
	}
	if m.cursor >= len(m.items) {
		return nil
	}
	itemID := m.items[m.cursor].ID
	return func() tea.Msg {
		req := client.UpdateTodoItemRequest{Title: &title, Severity: &sev}
		if desc != "" {
			req.Description = &desc
		}
		_, err := api.UpdateTodoItem(context.Background(), listID, itemID, req)
		return itemSavedMsg{err: err}
	}
}

// toggleItem flips the status of the item under the cursor. The change is
// applied locally right away so the UI doesn't wait on the round trip.
func (m *detailModel) toggleItem() tea.Cmd {
	if m.cursor >= len(m.items) {
		return nil
	}
	item := &m.items[m.cursor]
	item.Status = item.Status.Toggle()
	if item.Completed() {
		now := time.Now()
		item.CompletedAt = &now
	} else {
		item.CompletedAt = nil
	}

	api, listID, itemID := m.api, m.list.ID, item.ID
	status := item.Status
	return func() tea.Msg {
		_, err := api.UpdateTodoItem(context.Background(), listID, itemID, client.UpdateTodoItemRequest{
			Status: &status,
		})
		return itemSavedMsg{err: err}
	}
}

func (m detailModel) deleteItem() tea.Cmd {
	if m.cursor >= len(m.items) {
		return nil
	}
	api, listID, itemID := m.api, m.list.ID, m.items[m.cursor].ID
	return func() tea.Msg {
		return itemDeletedMsg{err: api.DeleteTodoItem(context.Background(), listID, itemID)}
	}
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case itemsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = "Görevler yüklenemedi"
			return m, nil
		}
		m.errText = ""
		m.items = msg.items
		if m.cursor >= len(m.items) {
			m.cursor = 0
			if n := len(m.items); n > 0 {
				m.cursor = n - 1
			}
			// The item under the cursor is gone, a pending confirm no
			// longer refers to anything.
			if m.mode == detailConfirmDelete {
				m.mode = detailViewing
			}
		}
		return m, nil

	case itemSavedMsg:
		if msg.err != nil {
			m.errText = "Görev kaydedilemedi"
			m.mode = detailViewing
			return m, m.fetchItems()
		}
		m.mode = detailViewing
		m.errText = ""
		return m, m.fetchItems()

	case itemDeletedMsg:
		m.mode = detailViewing
		if msg.err != nil {
			m.errText = "Görev silinemedi"
			return m, nil
		}
		m.errText = ""
		if m.cursor > 0 {
			m.cursor--
		}
		return m, m.fetchItems()

	case tea.KeyMsg:
		switch m.mode {
		case detailAdding, detailEditing:
			return m.updateForm(msg)
		case detailConfirmDelete:
			switch msg.String() {
			case "e", "enter":
				return m, m.deleteItem()
			case "h", "esc":
				m.mode = detailViewing
			}
			return m, nil
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "esc", "backspace":
			return m, func() tea.Msg { return closeListMsg{} }
		case "s":
			m.loading = true
			return m, m.fetchItems()
		case " ", "enter":
			if m.readOnly {
				return m, nil
			}
			return m, m.toggleItem()
		case "n":
			if m.readOnly {
				return m, nil
			}
			m.mode = detailAdding
			m.form = [2]field{
				{label: "Başlık", placeholder: "görev başlığı"},
				{label: "Açıklama", placeholder: "isteğe bağlı"},
			}
			m.sev = domain.SeverityMedium
			m.focus = 0
		case "r":
			if m.readOnly || m.cursor >= len(m.items) {
				return m, nil
			}
			item := m.items[m.cursor]
			m.mode = detailEditing
			m.form = [2]field{
				{label: "Başlık", value: item.Title},
				{label: "Açıklama", value: item.Description, placeholder: "isteğe bağlı"},
			}
			m.sev = item.Severity
			m.focus = 0
		case "d":
			if !m.readOnly && m.cursor < len(m.items) {
				m.mode = detailConfirmDelete
			}
		}
	}
	return m, nil
}

func (m detailModel) updateForm(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = detailViewing
		m.errText = ""
	case "tab", "down":
		m.focus = (m.focus + 1) % len(m.form)
	case "shift+tab", "up":
		m.focus = (m.focus + len(m.form) - 1) % len(m.form)
	case "ctrl+s":
		m.sev = m.sev.Next()
	case "enter":
		if m.focus == 0 {
			m.focus = 1
			return m, nil
		}
		if strings.TrimSpace(m.form[0].value) == "" {
			m.errText = "Lütfen bir başlık girin"
			return m, nil
		}
		m.errText = ""
		return m, m.saveItem()
	default:
		m.form[m.focus].edit(msg.String())
	}
	return m, nil
}

func (m detailModel) View() string {
	var b strings.Builder

	ownerStyle := mineStyle
	if m.readOnly {
		ownerStyle = partnerStyle
	}
	b.WriteString("\n  " + ownerStyle.Render(truncStr(m.list.Title, 50)) + "\n")
	if m.list.Description != "" {
		b.WriteString("  " + metaStyle.Render(truncStr(m.list.Description, 60)) + "\n")
	}

	switch m.mode {
	case detailAdding, detailEditing:
		title := "Yeni Görev"
		if m.mode == detailEditing {
			title = "Görevi Düzenle"
		}
		b.WriteString("\n  " + sectionHeaderStyle.Render(title) + "\n\n")
		for i, f := range m.form {
			b.WriteString("  " + f.render(i == m.focus) + "\n")
		}
		b.WriteString("  " + fieldLabelStyle.Render("Öncelik:") + " " + severityBadge(m.sev) + "\n")
		if m.errText != "" {
			b.WriteString("\n  " + errorStyle.Render(m.errText) + "\n")
		}
		b.WriteString("\n  " + helpEntry("enter", "kaydet") + "  " +
			helpEntry("ctrl+s", "öncelik") + "  " +
			helpEntry("esc", "vazgeç") + "\n")
		return b.String()

	case detailConfirmDelete:
		if m.cursor >= len(m.items) {
			break // item vanished mid-confirm, render the plain list
		}
		item := m.items[m.cursor]
		b.WriteString("\n  " + errorStyle.Render(fmt.Sprintf("%q silinsin mi?", truncStr(item.Title, 40))) + "\n\n")
		b.WriteString("  " + helpEntry("e", "evet") + "  " + helpEntry("h", "hayır") + "\n")
		return b.String()
	}

	b.WriteString("\n")
	if m.loading && len(m.items) == 0 {
		b.WriteString("  " + dimStyle.Render("Yükleniyor…") + "\n")
	} else if len(m.items) == 0 {
		b.WriteString("  " + dimStyle.Render("Bu listede görev yok.") + "\n")
	}
	for i, item := range m.items {
		b.WriteString(m.renderItem(item, i == m.cursor))
	}

	if m.errText != "" {
		b.WriteString("\n  " + errorStyle.Render(m.errText) + "\n")
	}
	b.WriteString("\n  " + m.helpBar() + "\n")
	return b.String()
}

func (m detailModel) helpBar() string {
	if m.readOnly {
		return helpEntry("esc", "geri") + "  " + helpEntry("s", "yenile")
	}
	return helpEntry("space", "tamamla") + "  " +
		helpEntry("n", "yeni") + "  " +
		helpEntry("r", "düzenle") + "  " +
		helpEntry("d", "sil") + "  " +
		helpEntry("esc", "geri")
}

func (m detailModel) renderItem(item domain.TodoItem, selected bool) string {
	cursor := "  "
	if selected {
		cursor = selectedStyle.Render("▶ ")
	}
	check := "☐"
	title := normalStyle.Render(truncStr(item.Title, 44))
	if item.Completed() {
		check = statusMsgStyle.Render("☑")
		title = doneStyle.Render(truncStr(item.Title, 44))
	}
	line := "  " + cursor + check + " " + title + "  " + severityBadge(item.Severity)
	if item.Completed() && item.CompletedAt != nil {
		line += "  " + metaStyle.Render(formatTime(*item.CompletedAt))
	}
	line += "\n"
	if selected {
		detail := statusBadge(item.Status)
		if item.Description != "" {
			detail += "  " + metaStyle.Render(truncStr(item.Description, 50))
		}
		line += "      " + detail + "\n"
	}
	return line
}
