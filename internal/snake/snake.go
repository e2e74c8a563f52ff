// Package snake implements the game-state core: the snake body, food and the
// per-tick state machine. It knows nothing about pixels, keys or time.
package snake

import (
	"github.com/vovakirdan/tui-snake/internal/core"
)

// InitialLength is the number of segments a new snake starts with.
const InitialLength = 5

// MinCols is the narrowest board whose centre leaves room for the starting
// body to its right.
const MinCols = 2*InitialLength - 1

// Snake is an ordered list of cells, head first, plus the active heading.
type Snake struct {
	body     []core.Cell
	heading  core.Heading
	cellSize int
}

// NewSnake spawns the starting snake: the head on the board centre, the body
// extending to the right, heading left.
func NewSnake(board core.Board) *Snake {
	head := board.Center()
	body := make([]core.Cell, InitialLength)
	for i := range body {
		body[i] = head.Add(i*board.CellSize(), 0)
	}
	return &Snake{
		body:     body,
		heading:  core.HeadingLeft,
		cellSize: board.CellSize(),
	}
}

// NewSnakeFromBody builds a snake from explicit segments (head first).
// It panics on an empty body.
func NewSnakeFromBody(body []core.Cell, heading core.Heading, cellSize int) *Snake {
	if len(body) == 0 {
		panic("snake: empty body")
	}
	return &Snake{
		body:     append([]core.Cell(nil), body...),
		heading:  heading,
		cellSize: cellSize,
	}
}

// Head returns the first segment.
func (s *Snake) Head() core.Cell {
	return s.body[0]
}

// Body returns a copy of the segments, head first.
func (s *Snake) Body() []core.Cell {
	return append([]core.Cell(nil), s.body...)
}

// Len returns the number of segments.
func (s *Snake) Len() int {
	return len(s.body)
}

// Heading returns the active movement direction.
func (s *Snake) Heading() core.Heading {
	return s.heading
}

// SetHeading overwrites the heading used by the next Advance.
// Reversing into the body is allowed; it kills the snake on the next tick.
func (s *Snake) SetHeading(h core.Heading) {
	s.heading = h
}

// Advance moves the head one cell along the heading. The tail is dropped
// unless grow is set, in which case the snake ends one segment longer.
func (s *Snake) Advance(grow bool) {
	dx, dy := s.heading.Delta()
	head := s.body[0].Add(dx*s.cellSize, dy*s.cellSize)

	s.body = append([]core.Cell{head}, s.body...)
	if !grow {
		s.body = s.body[:len(s.body)-1]
	}
}

// IsSelfColliding reports whether any two segments share a cell.
func (s *Snake) IsSelfColliding() bool {
	seen := make(map[core.Cell]struct{}, len(s.body))
	for _, c := range s.body {
		if _, ok := seen[c]; ok {
			return true
		}
		seen[c] = struct{}{}
	}
	return false
}

// IsWallColliding reports whether the head has left the board.
func (s *Snake) IsWallColliding(board core.Board) bool {
	return !board.Contains(s.body[0])
}
