package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/registry"
)

// MenuModel is the Bubble Tea model for the mode picker.
type MenuModel struct {
	modes    []registry.Mode
	cursor   int
	width    int
	height   int
	quitting bool
	selected *registry.Mode
	replays  bool // Tab pressed
}

// NewMenuModel creates a menu listing every registered mode.
func NewMenuModel(width, height int) MenuModel {
	return MenuModel{
		modes:  registry.List(),
		width:  width,
		height: height,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.modes)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.modes) > 0 {
			selected := m.modes[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionReplays:
		m.replays = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText("  S N A K E  ", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a mode", m.width))
	b.WriteString("\n\n")

	for i, mode := range m.modes {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-14s %s", cursor, mode.Title, mode.Description)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Play  |  Tab: Replays  |  Q: Quit", m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen mode, or nil.
func (m MenuModel) Selected() *registry.Mode {
	return m.selected
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

type screenKind int

const (
	screenMenu screenKind = iota
	screenPlay
	screenReplays
)

// App switches between the mode menu, the play screen and the replay
// browser inside one Bubble Tea program. SSH sessions run it.
type App struct {
	opts    Options
	current screenKind
	menu    MenuModel
	play    Model
	replays ReplaysModel
	width   int
	height  int
}

// NewApp creates the menu-first application.
func NewApp(opts Options, width, height int) App {
	return App{
		opts:   opts,
		menu:   NewMenuModel(width, height),
		width:  width,
		height: height,
	}
}

// Init initializes the application.
func (a App) Init() tea.Cmd {
	return nil
}

// Update routes messages to the active screen.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		a.width, a.height = size.Width, size.Height
	}

	switch a.current {
	case screenPlay:
		next, cmd := a.play.Update(msg)
		a.play = next.(Model)
		if a.play.quitting {
			if a.play.back {
				return a.showMenu(), nil
			}
			return a, tea.Quit
		}
		return a, cmd

	case screenReplays:
		next, cmd := a.replays.Update(msg)
		a.replays = next.(ReplaysModel)
		if a.replays.done {
			if a.replays.quitting {
				return a, tea.Quit
			}
			return a.showMenu(), nil
		}
		return a, cmd
	}

	next, cmd := a.menu.Update(msg)
	a.menu = next.(MenuModel)
	switch {
	case a.menu.quitting:
		return a, tea.Quit
	case a.menu.selected != nil:
		return a.startPlay(*a.menu.selected)
	case a.menu.replays:
		a.current = screenReplays
		a.replays = NewReplaysModel(a.opts.Store, a.width, a.height)
		a.replays.embedded = true
		return a, nil
	}
	return a, cmd
}

func (a App) showMenu() App {
	a.current = screenMenu
	a.menu = NewMenuModel(a.width, a.height)
	return a
}

func (a App) startPlay(mode registry.Mode) (tea.Model, tea.Cmd) {
	opts := a.opts
	opts.Session.Mode = mode
	opts.Session.Policy.Ramp = mode.Ramp

	a.play = NewModel(opts)
	a.play.embedded = true
	a.play = a.play.handleResize(a.width, a.height)
	a.current = screenPlay
	return a, a.play.Init()
}

// View renders the active screen.
func (a App) View() string {
	switch a.current {
	case screenPlay:
		return a.play.View()
	case screenReplays:
		return a.replays.View()
	}
	return a.menu.View()
}

// RunApp starts the menu-first application on the local terminal.
func RunApp(opts Options, width, height int) error {
	p := tea.NewProgram(
		NewApp(opts, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
