package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// RNG is the uniform source used for food placement. *math/rand.Rand satisfies it.
type RNG interface {
	Intn(n int) int
}

// Food is the single optional food cell and the running eaten counter.
type Food struct {
	pos     core.Cell
	present bool
	eaten   int
}

// EnsurePlaced puts food on a random grid-aligned cell when none is present.
// The snake body is not consulted, so food may land on it.
// Returns true if food was placed by this call.
func (f *Food) EnsurePlaced(board core.Board, rng RNG) bool {
	if f.present {
		return false
	}
	cell := board.CellSize()
	x := rng.Intn(board.Width() - cell + 1)
	y := rng.Intn(board.Height() - cell + 1)
	f.pos = core.Cell{X: board.Snap(x), Y: board.Snap(y)}
	f.present = true
	return true
}

// Consume removes the food and counts it as eaten.
func (f *Food) Consume() {
	f.present = false
	f.eaten++
}

// Position returns the food cell and whether food is present.
func (f *Food) Position() (core.Cell, bool) {
	return f.pos, f.present
}

// Present reports whether food is on the board.
func (f *Food) Present() bool {
	return f.present
}

// Eaten returns how many times food has been consumed.
func (f *Food) Eaten() int {
	return f.eaten
}
