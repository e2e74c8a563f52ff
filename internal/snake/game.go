package snake

import (
	"github.com/vovakirdan/tui-snake/internal/core"
)

// Status is the state of a game instance.
type Status int

const (
	StatusPlaying Status = iota
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Cause explains why a game ended.
type Cause string

const (
	CauseNone Cause = ""
	CauseWall Cause = "wall-collision"
	CauseSelf Cause = "self-collision"
)

// TickResult reports what happened during one Advance.
type TickResult struct {
	Placed bool  // Food was placed at the start of the tick
	Ate    bool  // Head was on the food at the start of the tick
	Over   bool  // The game ended on this tick
	Cause  Cause // Set when Over is true
}

// Game composes board, snake and food and advances them one tick at a time.
// Once over, a Game never resumes; start a new one instead.
type Game struct {
	board  core.Board
	snake  *Snake
	food   Food
	rng    RNG
	status Status
	cause  Cause
	tick   uint64
}

// New creates a game with the starting snake in the middle of the board.
func New(board core.Board, rng RNG) *Game {
	return NewWithSnake(board, NewSnake(board), rng)
}

// NewWithSnake creates a game around an existing snake.
func NewWithSnake(board core.Board, s *Snake, rng RNG) *Game {
	return &Game{
		board:  board,
		snake:  s,
		rng:    rng,
		status: StatusPlaying,
	}
}

// SetHeading forwards the player's direction to the snake.
func (g *Game) SetHeading(h core.Heading) {
	g.snake.SetHeading(h)
}

// Advance runs one tick: place food if missing, eat if the head is on it,
// move, then check walls and self. Food eaten on a fatal tick still counts.
func (g *Game) Advance() TickResult {
	var res TickResult
	if g.status == StatusGameOver {
		res.Over = true
		res.Cause = g.cause
		return res
	}
	g.tick++

	res.Placed = g.food.EnsurePlaced(g.board, g.rng)

	if pos, ok := g.food.Position(); ok && pos == g.snake.Head() {
		g.food.Consume()
		res.Ate = true
	}

	g.snake.Advance(res.Ate)

	switch {
	case g.snake.IsWallColliding(g.board):
		g.cause = CauseWall
	case g.snake.IsSelfColliding():
		g.cause = CauseSelf
	}
	if g.cause != CauseNone {
		g.status = StatusGameOver
		res.Over = true
		res.Cause = g.cause
	}
	return res
}

// Board returns the board the game is played on.
func (g *Game) Board() core.Board {
	return g.board
}

// Body returns a copy of the snake segments, head first.
func (g *Game) Body() []core.Cell {
	return g.snake.Body()
}

// Head returns the snake head.
func (g *Game) Head() core.Cell {
	return g.snake.Head()
}

// Heading returns the snake heading.
func (g *Game) Heading() core.Heading {
	return g.snake.Heading()
}

// Food returns the food cell and whether it is present.
func (g *Game) Food() (core.Cell, bool) {
	return g.food.Position()
}

// Eaten returns the number of food items consumed this game.
func (g *Game) Eaten() int {
	return g.food.Eaten()
}

// Over reports whether the game has ended.
func (g *Game) Over() bool {
	return g.status == StatusGameOver
}

// Status returns the state machine state.
func (g *Game) Status() Status {
	return g.status
}

// Cause returns why the game ended, or CauseNone.
func (g *Game) Cause() Cause {
	return g.cause
}

// Tick returns how many ticks have been advanced.
func (g *Game) Tick() uint64 {
	return g.tick
}
