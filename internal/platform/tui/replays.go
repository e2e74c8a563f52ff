package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/replay"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

const maxReplays = 100

// ReplaysKeyMap defines the key bindings for the replay browser.
type ReplaysKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Verify   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplaysKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.Verify, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ReplaysKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMode, k.PrevMode},
		{k.Verify, k.Back, k.Quit},
	}
}

// DefaultReplaysKeyMap returns default key bindings.
func DefaultReplaysKeyMap() ReplaysKeyMap {
	return ReplaysKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Verify: key.NewBinding(
			key.WithKeys("v", "enter"),
			key.WithHelp("v", "verify"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplaysModel is the Bubble Tea model for browsing stored replays.
type ReplaysModel struct {
	store    *storage.Store
	filters  []string // "" lists every mode
	filter   int
	limit    int
	replays  []replay.Recording
	table    table.Model
	help     help.Model
	keys     ReplaysKeyMap
	status   string
	width    int
	height   int
	done     bool
	quitting bool
	embedded bool
}

// NewReplaysModel creates a browser over the store, which may be nil.
func NewReplaysModel(store *storage.Store, width, height int) ReplaysModel {
	filters := []string{""}
	for _, mode := range registry.List() {
		filters = append(filters, mode.ID)
	}

	m := ReplaysModel{
		store:   store,
		filters: filters,
		limit:   maxReplays,
		help:    help.New(),
		keys:    DefaultReplaysKeyMap(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// Filtered starts the browser on one mode and caps the number of rows.
// An empty mode keeps every mode; a non-positive limit keeps the default.
func (m ReplaysModel) Filtered(mode string, limit int) ReplaysModel {
	for i, id := range m.filters {
		if id == mode {
			m.filter = i
		}
	}
	if limit > 0 {
		m.limit = limit
	}
	m.load()
	return m
}

func (m *ReplaysModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Mode", Width: 8},
		{Title: "Score", Width: 6},
		{Title: "Ticks", Width: 7},
		{Title: "End", Width: 15},
		{Title: "Player", Width: 10},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches replays for the current filter.
func (m *ReplaysModel) load() {
	m.replays = nil
	if m.store != nil {
		recs, err := m.store.RecentReplays(m.filters[m.filter], m.limit)
		if err != nil {
			m.status = err.Error()
		} else {
			m.replays = recs
		}
	}
	m.updateTableRows()
}

func (m *ReplaysModel) updateTableRows() {
	rows := make([]table.Row, len(m.replays))
	for i, r := range m.replays {
		end := string(r.Final.Cause)
		if end == "" {
			end = "abandoned"
		}
		rows[i] = table.Row{
			shortID(r.ID),
			r.Mode,
			fmt.Sprintf("%d", r.Final.Eaten),
			fmt.Sprintf("%d", r.Ticks()),
			end,
			r.Player,
			r.StartedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the replay browser.
func (m ReplaysModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the replay browser.
func (m ReplaysModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.done, m.quitting = true, true
			return m, m.exit()

		case key.Matches(msg, m.keys.Back):
			m.done = true
			return m, m.exit()

		case key.Matches(msg, m.keys.NextMode):
			m.filter = (m.filter + 1) % len(m.filters)
			m.status = ""
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevMode):
			m.filter = (m.filter - 1 + len(m.filters)) % len(m.filters)
			m.status = ""
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Verify):
			m.status = m.verifySelected()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ReplaysModel) exit() tea.Cmd {
	if m.embedded {
		return nil
	}
	return tea.Quit
}

// verifySelected re-simulates the highlighted replay.
func (m ReplaysModel) verifySelected() string {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.replays) {
		return ""
	}
	r := m.replays[i]
	if err := replay.Verify(r); err != nil {
		return fmt.Sprintf("%s: %v", shortID(r.ID), err)
	}
	return fmt.Sprintf("%s: ok, %d ticks reproduced", shortID(r.ID), r.Ticks())
}

// View renders the replay browser.
func (m ReplaysModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	filter := m.filters[m.filter]
	if filter == "" {
		filter = "all modes"
	}
	b.WriteString(titleStyle.Render(centerText("REPLAYS - "+filter, m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.replays) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(boxStyle.Render(emptyStyle.Render("No replays recorded yet.\nFinish a game to record one!")))
	} else {
		b.WriteString(boxStyle.Render(m.table.View()))
	}
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// RunReplays runs the replay browser on the local terminal, starting on
// mode (empty for all) with at most limit rows per mode.
func RunReplays(store *storage.Store, mode string, limit, width, height int) error {
	p := tea.NewProgram(
		NewReplaysModel(store, width, height).Filtered(mode, limit),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
