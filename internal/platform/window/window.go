// Package window runs the game in a desktop window with Ebitengine,
// drawing the snake and food as filled rectangles at board scale.
package window

import (
	"fmt"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// hudHeight is the strip above the board reserved for the score line.
const hudHeight = 20

// ticksPerSecond is how often Update polls the driver.
const ticksPerSecond = 250

var (
	bgColor    = color.RGBA{24, 24, 28, 255}
	boardColor = color.RGBA{0, 0, 0, 255}
	headColor  = color.RGBA{80, 220, 120, 255}
	bodyColor  = color.RGBA{0, 255, 0, 255}
	deadColor  = color.RGBA{230, 70, 70, 255}
	foodColor  = color.RGBA{255, 0, 0, 255}
)

var keyActions = map[ebiten.Key]core.Action{
	ebiten.KeyArrowLeft:  core.ActionLeft,
	ebiten.KeyA:          core.ActionLeft,
	ebiten.KeyArrowRight: core.ActionRight,
	ebiten.KeyD:          core.ActionRight,
	ebiten.KeyArrowUp:    core.ActionUp,
	ebiten.KeyW:          core.ActionUp,
	ebiten.KeyArrowDown:  core.ActionDown,
	ebiten.KeyS:          core.ActionDown,
	ebiten.KeyR:          core.ActionRestart,
	ebiten.KeyEscape:     core.ActionQuit,
	ebiten.KeyQ:          core.ActionQuit,
}

// Options wires the window to its collaborators. Store and Logger may be nil.
type Options struct {
	Session session.Config
	Store   *storage.Store
	Logger  *log.Logger
	Scale   int // Window pixels per board unit
}

// Game adapts a session driver to ebiten.Game.
type Game struct {
	opts   Options
	driver *session.Driver
	input  core.InputFrame
	keys   []ebiten.Key
	saved  string
}

// NewGame creates the window game and starts the first round.
func NewGame(opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Session.Logger == nil {
		opts.Session.Logger = opts.Logger
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	return &Game{
		opts:   opts,
		driver: session.New(opts.Session, core.NewSystemClock()),
		input:  core.NewInputFrame(),
	}
}

// Update polls the keyboard and the driver. Returning ebiten.Termination
// closes the window.
func (g *Game) Update() error {
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if a, ok := keyActions[k]; ok {
			g.input.Set(a)
		}
	}
	if ebiten.IsWindowBeingClosed() {
		g.input.Set(core.ActionQuit)
	}

	ev := g.driver.Poll(g.input)
	g.input.Clear()

	if ev.Finished != nil {
		g.saved = g.persist(ev)
	}
	if ev.Restarted {
		g.saved = ""
	}
	if ev.Quit {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) persist(ev session.Event) string {
	if g.opts.Store == nil {
		return ""
	}
	id, err := g.opts.Store.SaveReplay(*ev.Finished)
	if err != nil {
		g.opts.Logger.Warn("could not save replay", "error", err)
		return ""
	}
	return id
}

// Draw renders the board, the snake, the food and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)

	board := g.driver.Board()
	vector.DrawFilledRect(screen, 0, hudHeight, float32(board.Width()), float32(board.Height()), boardColor, false)

	snap := g.driver.Snapshot()
	size := float32(board.CellSize())
	fill := func(c core.Cell, clr color.Color) {
		if !board.Contains(c) {
			return
		}
		vector.DrawFilledRect(screen, float32(c.X), float32(c.Y+hudHeight), size, size, clr, false)
	}

	if snap.FoodPresent {
		fill(snap.Food, foodColor)
	}
	over := snap.Status == snake.StatusGameOver.String()
	for i := len(snap.Body) - 1; i >= 0; i-- {
		clr := color.Color(bodyColor)
		switch {
		case i == 0 && over:
			clr = deadColor
		case i == 0:
			clr = headColor
		}
		fill(snap.Body[i], clr)
	}

	hud := fmt.Sprintf("%s  score %d  tick %s", g.driver.Mode().ID, snap.Eaten, g.driver.Interval())
	if over {
		hud = fmt.Sprintf("GAME OVER (%s)  score %d  next game in %.1fs",
			snap.Cause, snap.Eaten, g.driver.RestartIn().Seconds())
	}
	ebitenutil.DebugPrintAt(screen, hud, 4, 2)
}

// Layout keeps the logical screen at board size; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	board := g.driver.Board()
	return board.Width(), board.Height() + hudHeight
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	g := NewGame(opts)
	board := g.driver.Board()

	ebiten.SetWindowSize(board.Width()*g.opts.Scale, (board.Height()+hudHeight)*g.opts.Scale)
	ebiten.SetWindowTitle("Snake")
	ebiten.SetWindowResizable(true)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(ticksPerSecond)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
