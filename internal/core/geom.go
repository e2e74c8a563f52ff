// Package core provides fundamental types and utilities for the snake game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import (
	"errors"
	"fmt"
)

// ErrInvalidBoard is returned when board dimensions cannot form a grid.
var ErrInvalidBoard = errors.New("invalid board")

// Cell is a grid-aligned position in board units.
type Cell struct {
	X, Y int
}

// Add returns the cell shifted by (dx, dy).
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// String formats the cell as (x,y).
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Heading is the single active movement direction of the snake.
type Heading int

const (
	HeadingLeft Heading = iota
	HeadingRight
	HeadingUp
	HeadingDown
)

// Delta returns the unit step for the heading on each axis.
func (h Heading) Delta() (dx, dy int) {
	switch h {
	case HeadingLeft:
		return -1, 0
	case HeadingRight:
		return 1, 0
	case HeadingUp:
		return 0, -1
	case HeadingDown:
		return 0, 1
	}
	return 0, 0
}

func (h Heading) String() string {
	switch h {
	case HeadingLeft:
		return "left"
	case HeadingRight:
		return "right"
	case HeadingUp:
		return "up"
	case HeadingDown:
		return "down"
	default:
		return "unknown"
	}
}

// Letter returns the one-letter code used in replay move logs.
func (h Heading) Letter() byte {
	switch h {
	case HeadingLeft:
		return 'L'
	case HeadingRight:
		return 'R'
	case HeadingUp:
		return 'U'
	case HeadingDown:
		return 'D'
	default:
		return '?'
	}
}

// HeadingFromLetter parses a code produced by Letter.
func HeadingFromLetter(b byte) (Heading, bool) {
	switch b {
	case 'L':
		return HeadingLeft, true
	case 'R':
		return HeadingRight, true
	case 'U':
		return HeadingUp, true
	case 'D':
		return HeadingDown, true
	}
	return 0, false
}

// Board is the playable area. Width and height are multiples of CellSize.
// A Board is immutable once built.
type Board struct {
	width    int
	height   int
	cellSize int
}

// NewBoard validates the dimensions and returns a board.
func NewBoard(width, height, cellSize int) (Board, error) {
	if cellSize <= 0 {
		return Board{}, fmt.Errorf("%w: cell size %d must be positive", ErrInvalidBoard, cellSize)
	}
	if width <= 0 || height <= 0 {
		return Board{}, fmt.Errorf("%w: size %dx%d must be positive", ErrInvalidBoard, width, height)
	}
	if width%cellSize != 0 || height%cellSize != 0 {
		return Board{}, fmt.Errorf("%w: size %dx%d is not a multiple of cell size %d",
			ErrInvalidBoard, width, height, cellSize)
	}
	return Board{width: width, height: height, cellSize: cellSize}, nil
}

// MustBoard is like NewBoard but panics on invalid dimensions.
func MustBoard(width, height, cellSize int) Board {
	b, err := NewBoard(width, height, cellSize)
	if err != nil {
		panic(err)
	}
	return b
}

// Width returns the board width in units.
func (b Board) Width() int { return b.width }

// Height returns the board height in units.
func (b Board) Height() int { return b.height }

// CellSize returns the edge length of one cell in units.
func (b Board) CellSize() int { return b.cellSize }

// Cols returns the number of cells per row.
func (b Board) Cols() int { return b.width / b.cellSize }

// Rows returns the number of cells per column.
func (b Board) Rows() int { return b.height / b.cellSize }

// Contains reports whether the cell lies within [0, width) x [0, height).
// The far edge is exclusive: a head at x == width has hit the wall.
func (b Board) Contains(c Cell) bool {
	return c.X >= 0 && c.X < b.width && c.Y >= 0 && c.Y < b.height
}

// Snap rounds v down to the nearest multiple of the cell size.
func (b Board) Snap(v int) int {
	return v - v%b.cellSize
}

// Center returns the grid-aligned cell nearest the middle of the board.
func (b Board) Center() Cell {
	return Cell{X: b.Snap(b.width / 2), Y: b.Snap(b.height / 2)}
}

// Fit returns a board no larger than cols x rows cells, keeping the cell size.
func (b Board) Fit(cols, rows int) Board {
	cols = max(1, min(cols, b.Cols()))
	rows = max(1, min(rows, b.Rows()))
	return Board{width: cols * b.cellSize, height: rows * b.cellSize, cellSize: b.cellSize}
}

// String formats the board as WxH/cell.
func (b Board) String() string {
	return fmt.Sprintf("%dx%d/%d", b.width, b.height, b.cellSize)
}

// Rect represents an axis-aligned rectangle on a Screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}
