package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sinanfen/todogether-cli/pkg/client"
	"github.com/sinanfen/todogether-cli/pkg/domain"
)

// itemCount holds how many items a list has and how many are done.
type itemCount struct {
	done  int
	total int
}

type dashboardDataMsg struct {
	lists   []domain.TodoList
	counts  map[uuid.UUID]itemCount
	partner *domain.PartnerOverview
	err     error
}

type syncTickMsg time.Time

type listSavedMsg struct{ err error }

type listDeletedMsg struct{ err error }

// openListMsg asks the root model to switch to the detail screen.
type openListMsg struct {
	list     domain.TodoList
	readOnly bool
}

type logoutRequestedMsg struct{}

type dashboardMode int

const (
	dashViewing dashboardMode = iota
	dashCreating
	dashRenaming
	dashConfirmDelete
)

type dashboardModel struct {
	api       *client.Client
	user      *domain.User
	syncEvery time.Duration

	lists   []domain.TodoList
	counts  map[uuid.UUID]itemCount
	partner *domain.PartnerOverview

	cursor  int
	mode    dashboardMode
	form    [2]field
	focus   int
	loading bool
	errText string

	width  int
	height int
}

func newDashboardModel(api *client.Client, user *domain.User, syncEvery time.Duration) dashboardModel {
	return dashboardModel{
		api:       api,
		user:      user,
		syncEvery: syncEvery,
		counts:    map[uuid.UUID]itemCount{},
		loading:   true,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(fetchDashboard(m.api), m.tick())
}

func (m dashboardModel) tick() tea.Cmd {
	return tea.Tick(m.syncEvery, func(t time.Time) tea.Msg { return syncTickMsg(t) })
}

// fetchDashboard loads the user's lists and the partner overview in
// parallel, then counts the items of each own list.
func fetchDashboard(api *client.Client) tea.Cmd {
	return func() tea.Msg {
		g, ctx := errgroup.WithContext(context.Background())

		var lists []domain.TodoList
		var partner *domain.PartnerOverview
		g.Go(func() error {
			var err error
			lists, err = api.ListTodoLists(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			partner, err = api.PartnerOverview(ctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return dashboardDataMsg{err: err}
		}

		counts := make(map[uuid.UUID]itemCount, len(lists))
		var mu sync.Mutex
		cg, ctx := errgroup.WithContext(context.Background())
		cg.SetLimit(4)
		for _, list := range lists {
			cg.Go(func() error {
				items, err := api.ListTodoItems(ctx, list.ID)
				if err != nil {
					return err
				}
				c := itemCount{total: len(items)}
				for _, it := range items {
					if it.Completed() {
						c.done++
					}
				}
				mu.Lock()
				counts[list.ID] = c
				mu.Unlock()
				return nil
			})
		}
		if err := cg.Wait(); err != nil {
			return dashboardDataMsg{err: err}
		}
		return dashboardDataMsg{lists: lists, counts: counts, partner: partner}
	}
}

func (m dashboardModel) partnerLists() []domain.TodoList {
	if m.partner == nil {
		return nil
	}
	return m.partner.TodoLists
}

func (m dashboardModel) rowCount() int {
	return len(m.lists) + len(m.partnerLists())
}

// selected returns the list under the cursor and whether it belongs to
// the partner.
func (m dashboardModel) selected() (domain.TodoList, bool, bool) {
	if m.cursor < len(m.lists) {
		return m.lists[m.cursor], false, true
	}
	pl := m.partnerLists()
	idx := m.cursor - len(m.lists)
	if idx < len(pl) {
		return pl[idx], true, true
	}
	return domain.TodoList{}, false, false
}

func (m dashboardModel) saveList() tea.Cmd {
	api := m.api
	title := strings.TrimSpace(m.form[0].value)
	desc := strings.TrimSpace(m.form[1].value)
	if m.mode == dashCreating {
		return func() tea.Msg {
			_, err := api.CreateTodoList(context.Background(), client.CreateTodoListRequest{
				Title:       title,
				Description: desc,
			})
			return listSavedMsg{err: err}
		}
	}
	list, _, ok := m.selected()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		req := client.UpdateTodoListRequest{Title: &title}
		if desc != "" {
			req.Description = &desc
		}
		_, err := api.UpdateTodoList(context.Background(), list.ID, req)
		return listSavedMsg{err: err}
	}
}

func (m dashboardModel) deleteList() tea.Cmd {
	api := m.api
	list, _, ok := m.selected()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		return listDeletedMsg{err: api.DeleteTodoList(context.Background(), list.ID)}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dashboardDataMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = "Listeler yüklenemedi"
			return m, nil
		}
		m.errText = ""
		m.lists = msg.lists
		m.counts = msg.counts
		m.partner = msg.partner
		if n := m.rowCount(); n > 0 && m.cursor >= n {
			m.cursor = n - 1
		}
		return m, nil

	case syncTickMsg:
		if m.mode == dashViewing {
			return m, tea.Batch(fetchDashboard(m.api), m.tick())
		}
		return m, m.tick()

	case listSavedMsg:
		if msg.err != nil {
			m.errText = "Liste kaydedilemedi"
			return m, nil
		}
		m.mode = dashViewing
		m.errText = ""
		return m, fetchDashboard(m.api)

	case listDeletedMsg:
		if msg.err != nil {
			m.errText = "Liste silinemedi"
			m.mode = dashViewing
			return m, nil
		}
		m.mode = dashViewing
		m.errText = ""
		if m.cursor > 0 {
			m.cursor--
		}
		return m, fetchDashboard(m.api)

	case tea.KeyMsg:
		switch m.mode {
		case dashCreating, dashRenaming:
			return m.updateForm(msg)
		case dashConfirmDelete:
			switch msg.String() {
			case "e", "enter":
				return m, m.deleteList()
			case "h", "esc":
				m.mode = dashViewing
			}
			return m, nil
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < m.rowCount()-1 {
				m.cursor++
			}
		case "enter":
			list, readOnly, ok := m.selected()
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg { return openListMsg{list: list, readOnly: readOnly} }
		case "n":
			m.mode = dashCreating
			m.form = [2]field{
				{label: "Başlık", placeholder: "liste başlığı"},
				{label: "Açıklama", placeholder: "isteğe bağlı"},
			}
			m.focus = 0
		case "r":
			list, readOnly, ok := m.selected()
			if !ok || readOnly {
				return m, nil
			}
			m.mode = dashRenaming
			m.form = [2]field{
				{label: "Başlık", value: list.Title},
				{label: "Açıklama", value: list.Description, placeholder: "isteğe bağlı"},
			}
			m.focus = 0
		case "d":
			if _, readOnly, ok := m.selected(); ok && !readOnly {
				m.mode = dashConfirmDelete
			}
		case "s":
			m.loading = true
			return m, fetchDashboard(m.api)
		case "ctrl+o":
			return m, func() tea.Msg { return logoutRequestedMsg{} }
		}
	}
	return m, nil
}

func (m dashboardModel) updateForm(msg tea.KeyMsg) (dashboardModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = dashViewing
		m.errText = ""
	case "tab", "down":
		m.focus = (m.focus + 1) % len(m.form)
	case "shift+tab", "up":
		m.focus = (m.focus + len(m.form) - 1) % len(m.form)
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
		return m, m.saveList()
	default:
		m.form[m.focus].edit(msg.String())
	}
	return m, nil
}

func (m dashboardModel) View() string {
	var b strings.Builder

	switch m.mode {
	case dashCreating, dashRenaming:
		title := "Yeni Liste"
		if m.mode == dashRenaming {
			title = "Listeyi Düzenle"
		}
		b.WriteString("\n  " + sectionHeaderStyle.Render(title) + "\n\n")
		for i, f := range m.form {
			b.WriteString("  " + f.render(i == m.focus) + "\n")
		}
		if m.errText != "" {
			b.WriteString("\n  " + errorStyle.Render(m.errText) + "\n")
		}
		b.WriteString("\n  " + helpEntry("enter", "kaydet") + "  " + helpEntry("esc", "vazgeç") + "\n")
		return b.String()

	case dashConfirmDelete:
		list, _, _ := m.selected()
		b.WriteString("\n  " + errorStyle.Render(fmt.Sprintf("%q silinsin mi?", truncStr(list.Title, 40))) + "\n\n")
		b.WriteString("  " + helpEntry("e", "evet") + "  " + helpEntry("h", "hayır") + "\n")
		return b.String()
	}

	b.WriteString("\n  " + mineStyle.Render("Senin listelerin") + "\n")
	if m.loading && len(m.lists) == 0 {
		b.WriteString("  " + dimStyle.Render("Yükleniyor…") + "\n")
	} else if len(m.lists) == 0 {
		b.WriteString("  " + dimStyle.Render("Henüz liste yok. 'n' ile bir tane oluştur.") + "\n")
	}
	for i, list := range m.lists {
		b.WriteString(m.renderRow(list, i == m.cursor))
	}

	b.WriteString("\n  " + partnerStyle.Render(m.partnerTitle()) + "\n")
	pl := m.partnerLists()
	if m.partner == nil {
		b.WriteString("  " + dimStyle.Render("Henüz bir partnerin yok.") + "\n")
	} else if len(pl) == 0 {
		b.WriteString("  " + dimStyle.Render("Partnerinin listesi yok.") + "\n")
	}
	for i, list := range pl {
		b.WriteString(m.renderRow(list, len(m.lists)+i == m.cursor))
	}

	if m.errText != "" {
		b.WriteString("\n  " + errorStyle.Render(m.errText) + "\n")
	}
	b.WriteString("\n  " + helpEntry("enter", "aç") + "  " +
		helpEntry("n", "yeni") + "  " +
		helpEntry("r", "düzenle") + "  " +
		helpEntry("d", "sil") + "  " +
		helpEntry("s", "yenile") + "  " +
		helpEntry("ctrl+o", "çıkış yap") + "\n")
	return b.String()
}

func (m dashboardModel) partnerTitle() string {
	if m.partner != nil && m.partner.Username != "" {
		return m.partner.Username + "'in listeleri"
	}
	return "Partnerin"
}

func (m dashboardModel) renderRow(list domain.TodoList, selected bool) string {
	cursor := "  "
	style := normalStyle
	if selected {
		cursor = selectedStyle.Render("▶ ")
		style = selectedStyle
	}
	line := style.Render(truncStr(list.Title, 40))
	if c, ok := m.counts[list.ID]; ok {
		line += " " + metaStyle.Render(fmt.Sprintf("%d/%d", c.done, c.total))
	}
	return "  " + cursor + line + "  " + metaStyle.Render(formatTime(list.UpdatedAt)) + "\n"
}
