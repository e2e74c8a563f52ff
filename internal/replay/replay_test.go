package replay

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

var board = core.MustBoard(200, 200, 10)

// play runs a game the way the session driver does and records it.
func play(seed int64, turns map[uint64]core.Heading, limit uint64) Recording {
	start := time.Unix(1700000000, 0)
	g := snake.New(board, rand.New(rand.NewSource(seed)))
	rec := NewRecorder(snake.ModeClassic, seed, board, start)

	for !g.Over() && g.Tick() < limit {
		next := g.Tick() + 1
		if h, ok := turns[next]; ok {
			g.SetHeading(h)
		}
		rec.Record(next, g.Heading())
		g.Advance()
	}
	return rec.Finish(g.Snapshot(), start.Add(3*time.Second))
}

func TestRecorderKeepsOnlyChanges(t *testing.T) {
	r := NewRecorder(snake.ModeClassic, 1, board, time.Time{})
	r.Record(1, core.HeadingLeft)
	r.Record(2, core.HeadingUp)
	r.Record(3, core.HeadingUp)
	r.Record(4, core.HeadingRight)

	rec := r.Finish(snake.Snapshot{}, time.Time{})
	want := []Move{{2, core.HeadingUp}, {4, core.HeadingRight}}
	if len(rec.Moves) != len(want) {
		t.Fatalf("moves = %v, expected %v", rec.Moves, want)
	}
	for i := range want {
		if rec.Moves[i] != want[i] {
			t.Errorf("move %d = %v, expected %v", i, rec.Moves[i], want[i])
		}
	}
}

func TestFinishCopiesMoves(t *testing.T) {
	r := NewRecorder(snake.ModeClassic, 1, board, time.Time{})
	r.Record(1, core.HeadingUp)
	rec := r.Finish(snake.Snapshot{}, time.Time{})
	r.Record(2, core.HeadingLeft)

	if len(rec.Moves) != 1 {
		t.Errorf("finished recording changed after Finish: %v", rec.Moves)
	}
}

func TestSimulateReproducesGame(t *testing.T) {
	tests := []struct {
		name  string
		seed  int64
		turns map[uint64]core.Heading
		limit uint64
	}{
		{"straight into the wall", 1, nil, 1000},
		{"box pattern", 42, map[uint64]core.Heading{
			3: core.HeadingUp, 6: core.HeadingRight, 9: core.HeadingDown, 12: core.HeadingLeft,
		}, 1000},
		{"reversal", 7, map[uint64]core.Heading{2: core.HeadingRight}, 1000},
		{"abandoned mid-game", 9, map[uint64]core.Heading{2: core.HeadingUp}, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := play(tc.seed, tc.turns, tc.limit)

			got, err := Simulate(rec)
			if err != nil {
				t.Fatalf("Simulate() failed: %v", err)
			}
			if !got.Equal(rec.Final) {
				t.Errorf("Simulate() = %+v, expected %+v", got, rec.Final)
			}
			if err := Verify(rec); err != nil {
				t.Errorf("Verify() = %v", err)
			}
		})
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	rec := play(42, map[uint64]core.Heading{3: core.HeadingUp}, 1000)

	tampered := rec
	tampered.Seed++
	tampered.Final.Eaten += 5
	if err := Verify(tampered); !errors.Is(err, ErrMismatch) {
		t.Errorf("Verify() = %v, expected ErrMismatch", err)
	}

	bad := rec
	bad.Width = 205
	if err := Verify(bad); !errors.Is(err, core.ErrInvalidBoard) {
		t.Errorf("Verify() = %v, expected ErrInvalidBoard", err)
	}
}

func TestTrailingTurnAppliedAfterLastTick(t *testing.T) {
	rec := play(9, nil, 3)
	r := NewRecorder(rec.Mode, rec.Seed, board, rec.StartedAt)
	// The player turned up after tick 3 and quit before tick 4.
	r.Record(4, core.HeadingUp)
	final := rec.Final
	final.Heading = core.HeadingUp.String()
	withTurn := r.Finish(final, rec.StartedAt)

	got, err := Simulate(withTurn)
	if err != nil {
		t.Fatalf("Simulate() failed: %v", err)
	}
	if got.Tick != 3 || got.Heading != core.HeadingUp.String() {
		t.Errorf("Simulate() tick %d heading %s, expected tick 3 heading up", got.Tick, got.Heading)
	}
	if err := Verify(withTurn); err != nil {
		t.Errorf("Verify() = %v", err)
	}

	// Without the trailing move the heading no longer matches.
	if err := Verify(rec); err != nil {
		t.Fatalf("Verify() of the plain recording = %v", err)
	}
	stale := rec
	stale.Final = final
	err = Verify(stale)
	if !errors.Is(err, ErrMismatch) || !strings.Contains(err.Error(), "heading is left, recorded up") {
		t.Errorf("Verify() = %v, expected a heading mismatch", err)
	}
}

func TestRecordingMetadata(t *testing.T) {
	rec := play(3, nil, 1000)
	if rec.Duration != 3*time.Second {
		t.Errorf("Duration = %v, expected 3s", rec.Duration)
	}
	if rec.Ticks() == 0 || rec.Ticks() != rec.Final.Tick {
		t.Errorf("Ticks() = %d, final tick %d", rec.Ticks(), rec.Final.Tick)
	}
	b, err := rec.Board()
	if err != nil || b != board {
		t.Errorf("Board() = %v, %v", b, err)
	}
}

func TestEncodeParseMoves(t *testing.T) {
	moves := []Move{{12, core.HeadingLeft}, {30, core.HeadingUp}, {31, core.HeadingRight}, {99, core.HeadingDown}}

	s := EncodeMoves(moves)
	if s != "12L,30U,31R,99D" {
		t.Errorf("EncodeMoves() = %q", s)
	}

	got, err := ParseMoves(s)
	if err != nil {
		t.Fatalf("ParseMoves() failed: %v", err)
	}
	for i := range moves {
		if got[i] != moves[i] {
			t.Errorf("move %d = %v, expected %v", i, got[i], moves[i])
		}
	}

	if got, err := ParseMoves(""); err != nil || len(got) != 0 {
		t.Errorf("ParseMoves(\"\") = %v, %v", got, err)
	}
}

func TestParseMovesErrors(t *testing.T) {
	for _, in := range []string{"L", "12X", "aL", "12L,,13U", "30U,12L", "-1L"} {
		if _, err := ParseMoves(in); !errors.Is(err, ErrBadMoves) {
			t.Errorf("ParseMoves(%q) = %v, expected ErrBadMoves", in, err)
		}
	}
}
