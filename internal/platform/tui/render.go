package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorWhite:       lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// Each board cell is drawn two characters wide so cells look square.
const cellChars = 2

// Glyphs for the play field.
const (
	headRune = '█'
	bodyRune = '▓'
	foodRune = '●'
)

// HUD is the status line drawn above the board.
type HUD struct {
	Mode      string
	Interval  time.Duration
	RestartIn time.Duration
	Games     int
	Saved     string // ID of the last stored replay
}

// screenSize returns the characters needed to draw board with its HUD and frame.
func screenSize(board core.Board) (w, h int) {
	return board.Cols()*cellChars + 2, board.Rows() + 3
}

// fitBoard shrinks board so it fits a terminal of width x height, leaving a
// line for the help footer. It never goes below snake.MinCols columns; a
// terminal narrower than that shows the too-small view instead.
func fitBoard(board core.Board, width, height int) core.Board {
	return board.Fit(max((width-2)/cellChars, snake.MinCols), height-4)
}

// DrawGame renders a snapshot onto the screen. The board frame starts on
// row 1; row 0 holds the HUD.
func DrawGame(s *core.Screen, board core.Board, snap snake.Snapshot, hud HUD) {
	s.Clear()

	status := fmt.Sprintf(" SNAKE  %s  score %d  tick %s  game %d",
		hud.Mode, snap.Eaten, hud.Interval, hud.Games)
	s.DrawTextColored(0, 0, status, core.ColorYellow)

	w, h := screenSize(board)
	s.DrawBox(core.NewRect(0, 1, w, h-1), core.ColorGray)

	cell := board.CellSize()
	plot := func(c core.Cell, r rune, color core.Color) {
		if !board.Contains(c) {
			return
		}
		x := 1 + (c.X/cell)*cellChars
		y := 2 + c.Y/cell
		for i := 0; i < cellChars; i++ {
			s.SetColored(x+i, y, r, color)
		}
	}

	if snap.FoodPresent {
		x := 1 + (snap.Food.X/cell)*cellChars
		y := 2 + snap.Food.Y/cell
		if board.Contains(snap.Food) {
			s.SetColored(x, y, foodRune, core.ColorBrightRed)
		}
	}

	for i := len(snap.Body) - 1; i >= 1; i-- {
		plot(snap.Body[i], bodyRune, core.ColorGreen)
	}
	if len(snap.Body) > 0 {
		headColor := core.ColorBrightGreen
		if snap.Status == snake.StatusGameOver.String() {
			headColor = core.ColorRed
		}
		plot(snap.Body[0], headRune, headColor)
	}

	if snap.Status == snake.StatusGameOver.String() {
		drawGameOver(s, 1, w, h-1, snap, hud)
	}
}

func drawGameOver(s *core.Screen, top, w, h int, snap snake.Snapshot, hud HUD) {
	lines := []string{
		"GAME OVER",
		string(snap.Cause),
		fmt.Sprintf("score %d", snap.Eaten),
		fmt.Sprintf("next game in %.1fs, r to skip", hud.RestartIn.Seconds()),
	}
	if hud.Saved != "" {
		lines = append(lines, "replay "+shortID(hud.Saved))
	}

	y := top + (h-len(lines))/2
	for i, line := range lines {
		x := (w - len([]rune(line))) / 2
		color := core.ColorWhite
		if i == 0 {
			color = core.ColorBrightRed
		}
		s.DrawTextColored(max(x, 1), y+i, line, color)
	}
}

// drawTooSmall tells the player how large the terminal must be.
func drawTooSmall(s *core.Screen, needW, needH int) {
	s.Clear()
	s.DrawTextColored(0, 0, "Terminal too small", core.ColorYellow)
	s.DrawText(0, 1, fmt.Sprintf("need %dx%d, have %dx%d", needW, needH, s.Width(), s.Height()))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetGlyph(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				g := s.GetGlyph(x, y)
				if g.Color != startColor {
					break
				}
				run.WriteRune(g.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
