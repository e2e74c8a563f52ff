// Package replay records the headings a player chose during a game and
// rebuilds the game from its seed to check the recorded outcome.
package replay

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

var (
	// ErrMismatch is returned by Verify when a simulation diverges from the recording.
	ErrMismatch = errors.New("replay: outcome mismatch")

	// ErrBadMoves is returned for move lists that cannot be parsed.
	ErrBadMoves = errors.New("replay: malformed moves")
)

// Move is a heading that took effect right before the given tick. A move
// for the tick after the last one is a turn made just before the player quit.
type Move struct {
	Tick    uint64
	Heading core.Heading
}

// Recording is everything needed to replay one game.
type Recording struct {
	ID        string
	Mode      string
	Seed      int64
	Width     int
	Height    int
	CellSize  int
	Moves     []Move
	Final     snake.Snapshot
	Player    string
	StartedAt time.Time
	Duration  time.Duration
}

// Board rebuilds the board the recording was played on.
func (r Recording) Board() (core.Board, error) {
	return core.NewBoard(r.Width, r.Height, r.CellSize)
}

// Ticks returns the number of ticks the game ran.
func (r Recording) Ticks() uint64 {
	return r.Final.Tick
}

// Recorder collects heading changes while a game is played.
type Recorder struct {
	rec     Recording
	heading core.Heading
}

// NewRecorder starts a recording for a game created with snake.New from
// the given seed.
func NewRecorder(mode string, seed int64, board core.Board, startedAt time.Time) *Recorder {
	return &Recorder{
		rec: Recording{
			Mode:      mode,
			Seed:      seed,
			Width:     board.Width(),
			Height:    board.Height(),
			CellSize:  board.CellSize(),
			StartedAt: startedAt,
		},
		heading: snake.NewSnake(board).Heading(),
	}
}

// Record notes the heading used for tick. Repeats of the current heading
// are not stored.
func (r *Recorder) Record(tick uint64, h core.Heading) {
	if h == r.heading {
		return
	}
	r.heading = h
	r.rec.Moves = append(r.rec.Moves, Move{Tick: tick, Heading: h})
}

// Moves returns the number of recorded heading changes.
func (r *Recorder) Moves() int {
	return len(r.rec.Moves)
}

// Finish seals the recording with the final game state.
func (r *Recorder) Finish(final snake.Snapshot, endedAt time.Time) Recording {
	out := r.rec
	out.Moves = append([]Move(nil), r.rec.Moves...)
	out.Final = final
	out.Duration = endedAt.Sub(r.rec.StartedAt)
	return out
}

// Simulate replays the recording from its seed and returns the state after
// the recorded number of ticks, or earlier if the game ends first.
func Simulate(rec Recording) (snake.Snapshot, error) {
	board, err := rec.Board()
	if err != nil {
		return snake.Snapshot{}, fmt.Errorf("replay: %w", err)
	}

	g := snake.New(board, rand.New(rand.NewSource(rec.Seed)))
	moves := rec.Moves
	for g.Tick() < rec.Ticks() && !g.Over() {
		next := g.Tick() + 1
		for len(moves) > 0 && moves[0].Tick <= next {
			g.SetHeading(moves[0].Heading)
			moves = moves[1:]
		}
		g.Advance()
	}
	if !g.Over() {
		for _, m := range moves {
			g.SetHeading(m.Heading)
		}
	}
	return g.Snapshot(), nil
}

// Verify simulates the recording and compares the result with its final state.
func Verify(rec Recording) error {
	got, err := Simulate(rec)
	if err != nil {
		return err
	}
	if field, sim, want := got.Diff(rec.Final); field != "" {
		return fmt.Errorf("%w: %s is %s, recorded %s", ErrMismatch, field, sim, want)
	}
	return nil
}

// EncodeMoves renders moves as a compact list such as "12L,30U".
func EncodeMoves(moves []Move) string {
	var b strings.Builder
	for i, m := range moves {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(m.Tick, 10))
		b.WriteByte(m.Heading.Letter())
	}
	return b.String()
}

// ParseMoves reads a list produced by EncodeMoves. Ticks must not decrease.
func ParseMoves(s string) ([]Move, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	moves := make([]Move, 0, len(parts))
	var last uint64
	for _, p := range parts {
		if len(p) < 2 {
			return nil, fmt.Errorf("%w: %q", ErrBadMoves, p)
		}
		h, ok := core.HeadingFromLetter(p[len(p)-1])
		if !ok {
			return nil, fmt.Errorf("%w: unknown heading in %q", ErrBadMoves, p)
		}
		tick, err := strconv.ParseUint(p[:len(p)-1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrBadMoves, p, err)
		}
		if tick < last {
			return nil, fmt.Errorf("%w: tick %d after %d", ErrBadMoves, tick, last)
		}
		last = tick
		moves = append(moves, Move{Tick: tick, Heading: h})
	}
	return moves, nil
}
