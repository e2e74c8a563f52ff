package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/replay"
	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/spectate"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Options wires a play screen to its collaborators. Store, Hub, Logger and
// Clock may be nil.
type Options struct {
	// Session is the driver configuration. Its board is the largest board
	// wanted; it shrinks to fit the terminal when the first size is known.
	Session   session.Config
	Store     *storage.Store
	Hub       *spectate.Hub
	SessionID string
	Logger    *log.Logger
	Clock     core.Clock
}

// Model is the Bubble Tea model for the play screen.
type Model struct {
	opts   Options
	driver *session.Driver
	screen *core.Screen
	keys   KeyMap
	help   help.Model
	input  core.InputFrame
	width  int
	height int

	lastSaved string
	quitting  bool
	back      bool // Left for the menu instead of quitting
	embedded  bool // Running inside App; quitting returns control instead of exiting
}

// NewModel creates a play screen. The driver starts once the terminal size
// is known.
func NewModel(opts Options) Model {
	if opts.Clock == nil {
		opts.Clock = core.NewSystemClock()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Session.Seed == 0 {
		opts.Session.Seed = time.Now().UnixNano()
	}
	if opts.Session.Logger == nil {
		opts.Session.Logger = opts.Logger
	}

	return Model{
		opts:   opts,
		screen: core.NewScreen(0, 0),
		keys:   DefaultKeyMap(),
		help:   help.New(),
		input:  core.NewInputFrame(),
	}
}

// Init starts the poll loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(pollInterval)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg.Width, msg.Height), nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case m.embedded && key.Matches(msg, m.keys.Back):
		m.back = true
		return m.stop()
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		return m.stop()
	}
	if action != core.ActionNone {
		m.input.Set(action)
	}
	return m, nil
}

// stop ends the driver, keeps an abandoned game and leaves the screen.
func (m Model) stop() (tea.Model, tea.Cmd) {
	m.quitting = true
	if m.driver != nil {
		quit := core.NewInputFrame()
		quit.Set(core.ActionQuit)
		ev := m.driver.Poll(quit)
		m.persist(ev.Finished)
	}
	if m.embedded {
		return m, nil
	}
	return m, tea.Quit
}

func (m Model) handleResize(width, height int) Model {
	m.width = width
	m.height = height
	m.help.Width = width
	m.screen.Resize(width, max(height-1, 0))

	if m.driver == nil {
		cfg := m.opts.Session
		cfg.Board = fitBoard(cfg.Board, width, height)
		m.driver = session.New(cfg, m.opts.Clock)
		m.opts.Logger.Debug("board fitted", "board", cfg.Board, "terminal", fmt.Sprintf("%dx%d", width, height))
	}
	return m
}

// tooSmall reports whether the terminal shrank below the running board.
func (m Model) tooSmall() bool {
	w, h := screenSize(m.driver.Board())
	return m.width < w || m.height < h+1
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	if m.driver == nil || m.tooSmall() {
		m.input.Clear()
		return m, tickCmd(pollInterval)
	}

	ev := m.driver.Poll(m.input)
	m.input.Clear()

	if ev.Finished != nil {
		m.lastSaved = m.persist(ev.Finished)
	}
	if ev.Restarted {
		m.lastSaved = ""
	}
	if ev.Ticked || ev.Restarted {
		m.publish()
	}

	return m, tickCmd(pollInterval)
}

// persist stores a finished game. Storage is best effort; play continues
// without it.
func (m Model) persist(rec *replay.Recording) string {
	if rec == nil || m.opts.Store == nil {
		return ""
	}
	id, err := m.opts.Store.SaveReplay(*rec)
	if err != nil {
		m.opts.Logger.Warn("could not save replay", "error", err)
		return ""
	}
	m.opts.Logger.Debug("replay saved", "id", id, "eaten", rec.Final.Eaten)
	return id
}

func (m Model) publish() {
	if m.opts.Hub == nil {
		return
	}
	board := m.driver.Board()
	m.opts.Hub.Publish(spectate.Frame{
		Session:  m.opts.SessionID,
		Player:   m.opts.Session.Player,
		Mode:     m.driver.Mode().ID,
		Width:    board.Width(),
		Height:   board.Height(),
		CellSize: board.CellSize(),
		State:    m.driver.Snapshot(),
	})
}

// render draws the current frame into the screen buffer.
func (m *Model) render() {
	if m.driver == nil {
		m.screen.Clear()
		return
	}
	if m.tooSmall() {
		w, h := screenSize(m.driver.Board())
		drawTooSmall(m.screen, w, h+1)
		return
	}
	DrawGame(m.screen, m.driver.Board(), m.driver.Snapshot(), HUD{
		Mode:      m.driver.Mode().ID,
		Interval:  m.driver.Interval(),
		RestartIn: m.driver.RestartIn(),
		Games:     m.driver.Games(),
		Saved:     m.lastSaved,
	})
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.render()

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".snake", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("snake_%s.txt", time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.render()
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Driver exposes the running driver, nil before the first resize.
func (m Model) Driver() *session.Driver {
	return m.driver
}

// Run starts the play screen on the local terminal.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
