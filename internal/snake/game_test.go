package snake

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// seqRNG returns queued values in order, then zeros.
type seqRNG struct {
	values []int
}

func (r *seqRNG) Intn(n int) int {
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v % n
}

var classicBoard = core.MustBoard(600, 400, 10)

func rowSnake(head core.Cell, heading core.Heading, cell int) *Snake {
	body := make([]core.Cell, InitialLength)
	for i := range body {
		body[i] = head.Add(i*cell, 0)
	}
	return NewSnakeFromBody(body, heading, cell)
}

func TestInitialSnake(t *testing.T) {
	s := NewSnake(classicBoard)

	if s.Len() != InitialLength {
		t.Fatalf("Len() = %d, expected %d", s.Len(), InitialLength)
	}
	if s.Head() != (core.Cell{X: 300, Y: 200}) {
		t.Errorf("Head() = %v, expected (300,200)", s.Head())
	}
	if s.Heading() != core.HeadingLeft {
		t.Errorf("Heading() = %v, expected left", s.Heading())
	}
	body := s.Body()
	for i := 1; i < len(body); i++ {
		if body[i].X-body[i-1].X != 10 || body[i].Y != body[0].Y {
			t.Errorf("segment %d = %v is not contiguous to the right of %v", i, body[i], body[i-1])
		}
	}
	if s.IsSelfColliding() {
		t.Error("initial body should not self-collide")
	}
	if s.IsWallColliding(classicBoard) {
		t.Error("initial head should be inside the board")
	}
}

func TestFirstTickScenario(t *testing.T) {
	rng := &seqRNG{values: []int{200, 100}}
	g := NewWithSnake(classicBoard, rowSnake(core.Cell{X: 50, Y: 30}, core.HeadingLeft, 10), rng)

	if _, ok := g.Food(); ok {
		t.Fatal("food should start absent")
	}

	res := g.Advance()

	food, ok := g.Food()
	if !ok || !res.Placed {
		t.Fatal("food should be placed on the first tick")
	}
	if !classicBoard.Contains(food) {
		t.Errorf("food %v is outside the board", food)
	}
	if g.Head() != (core.Cell{X: 40, Y: 30}) {
		t.Errorf("Head() = %v, expected (40,30)", g.Head())
	}
	if len(g.Body()) != 5 {
		t.Errorf("length = %d, expected 5", len(g.Body()))
	}
	if g.Body()[4] != (core.Cell{X: 80, Y: 30}) {
		t.Errorf("tail = %v, expected (80,30) after dropping (90,30)", g.Body()[4])
	}
	if res.Ate || res.Over {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestEatScenario(t *testing.T) {
	g := NewWithSnake(classicBoard, rowSnake(core.Cell{X: 50, Y: 30}, core.HeadingLeft, 10), &seqRNG{})
	g.food = Food{pos: core.Cell{X: 50, Y: 30}, present: true}

	res := g.Advance()

	if !res.Ate {
		t.Fatal("head on food should eat")
	}
	if len(g.Body()) != 6 {
		t.Errorf("length = %d, expected 6", len(g.Body()))
	}
	if _, ok := g.Food(); ok {
		t.Error("food should be absent after eating")
	}
	if g.Eaten() != 1 {
		t.Errorf("Eaten() = %d, expected 1", g.Eaten())
	}
	if g.Over() {
		t.Error("eating should not end the game")
	}
}

func TestReversalScenario(t *testing.T) {
	rng := &seqRNG{values: []int{500, 300}}
	g := NewWithSnake(classicBoard, rowSnake(core.Cell{X: 50, Y: 30}, core.HeadingLeft, 10), rng)
	second := g.Body()[1]

	g.SetHeading(core.HeadingRight)
	res := g.Advance()

	if g.Head() != second {
		t.Errorf("Head() = %v, expected former second segment %v", g.Head(), second)
	}
	if !res.Over || res.Cause != CauseSelf {
		t.Errorf("result = %+v, expected self-collision game over", res)
	}
	if g.Status() != StatusGameOver {
		t.Errorf("Status() = %v, expected game_over", g.Status())
	}
}

func TestWallScenario(t *testing.T) {
	tests := []struct {
		name  string
		board core.Board
		head  core.Cell
		cell  int
	}{
		{"unit cells to x=-1", core.MustBoard(60, 40, 1), core.Cell{X: 0, Y: 5}, 1},
		{"ten unit cells to x=-10", classicBoard, core.Cell{X: 0, Y: 30}, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := NewWithSnake(tc.board, rowSnake(tc.head, core.HeadingLeft, tc.cell), &seqRNG{values: []int{30, 30}})
			res := g.Advance()
			if g.Head().X >= 0 {
				t.Fatalf("head %v should be left of the board", g.Head())
			}
			if !res.Over || res.Cause != CauseWall {
				t.Errorf("result = %+v, expected wall game over", res)
			}
		})
	}
}

func TestFarEdgeIsWall(t *testing.T) {
	g := NewWithSnake(classicBoard, NewSnakeFromBody([]core.Cell{{X: 590, Y: 0}}, core.HeadingRight, 10), &seqRNG{})
	res := g.Advance()
	if !res.Over || g.Head().X != 600 {
		t.Errorf("moving onto x=600 should hit the wall, got %+v head %v", res, g.Head())
	}
}

func TestEatOnFatalTick(t *testing.T) {
	g := NewWithSnake(classicBoard, rowSnake(core.Cell{X: 0, Y: 30}, core.HeadingLeft, 10), &seqRNG{})
	g.food = Food{pos: core.Cell{X: 0, Y: 30}, present: true}

	res := g.Advance()

	if !res.Ate || !res.Over {
		t.Fatalf("result = %+v, expected both eat and game over", res)
	}
	if g.Eaten() != 1 {
		t.Errorf("Eaten() = %d, expected 1", g.Eaten())
	}
	if len(g.Body()) != 6 {
		t.Errorf("length = %d, expected 6", len(g.Body()))
	}
}

func TestAdvanceAfterGameOverIsNoop(t *testing.T) {
	g := NewWithSnake(classicBoard, rowSnake(core.Cell{X: 0, Y: 30}, core.HeadingLeft, 10), &seqRNG{values: []int{300, 300}})
	g.Advance()
	if !g.Over() {
		t.Fatal("expected game over")
	}

	before := g.Snapshot()
	res := g.Advance()
	after := g.Snapshot()

	if !res.Over || res.Ate || res.Placed {
		t.Errorf("result after game over = %+v", res)
	}
	if !before.Equal(after) {
		t.Errorf("state changed after game over: %+v -> %+v", before, after)
	}
}

func TestTickProperties(t *testing.T) {
	headings := []core.Heading{core.HeadingLeft, core.HeadingRight, core.HeadingUp, core.HeadingDown}

	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		// A small board makes eating frequent.
		board := core.MustBoard(100, 100, 10)
		g := New(board, rng)
		inputs := rand.New(rand.NewSource(seed * 7))

		for !g.Over() {
			if inputs.Intn(3) == 0 {
				g.SetHeading(headings[inputs.Intn(len(headings))])
			}

			beforeLen := len(g.Body())
			beforeHead := g.Head()
			beforeEaten := g.Eaten()
			food, present := g.Food()
			heading := g.Heading()

			res := g.Advance()

			// Food placed by this tick was already there when the head was checked.
			if res.Placed {
				food, present = g.food.pos, true
			}
			wantAte := present && food == beforeHead
			if res.Ate != wantAte {
				t.Fatalf("seed %d tick %d: Ate = %v, expected %v", seed, g.Tick(), res.Ate, wantAte)
			}

			if res.Ate {
				if len(g.Body()) != beforeLen+1 {
					t.Fatalf("seed %d: grow tick length %d -> %d", seed, beforeLen, len(g.Body()))
				}
				if g.Eaten() != beforeEaten+1 {
					t.Fatalf("seed %d: eaten %d -> %d", seed, beforeEaten, g.Eaten())
				}
			} else {
				if len(g.Body()) != beforeLen {
					t.Fatalf("seed %d: plain tick length %d -> %d", seed, beforeLen, len(g.Body()))
				}
				if g.Eaten() != beforeEaten {
					t.Fatalf("seed %d: eaten changed without eating", seed)
				}
			}

			dx, dy := heading.Delta()
			want := beforeHead.Add(dx*10, dy*10)
			if g.Head() != want {
				t.Fatalf("seed %d: head %v -> %v, expected %v", seed, beforeHead, g.Head(), want)
			}

			if g.Over() != (g.snake.IsSelfColliding() || !board.Contains(g.Head())) {
				t.Fatalf("seed %d: Over() disagrees with collision checks", seed)
			}

			if g.Tick() > 10000 {
				t.Fatalf("seed %d: game did not end", seed)
			}
		}
	}
}

func TestNewGamesAreIndependent(t *testing.T) {
	g1 := New(classicBoard, rand.New(rand.NewSource(1)))
	g2 := New(classicBoard, rand.New(rand.NewSource(1)))

	g1.SetHeading(core.HeadingUp)
	g1.Advance()

	if g2.Heading() != core.HeadingLeft || g2.Tick() != 0 {
		t.Error("games must not share state")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := New(core.MustBoard(200, 200, 10), rand.New(rand.NewSource(12345)))
		for i := 0; i < 40 && !g.Over(); i++ {
			switch i {
			case 5:
				g.SetHeading(core.HeadingUp)
			case 9:
				g.SetHeading(core.HeadingRight)
			case 20:
				g.SetHeading(core.HeadingDown)
			}
			g.Advance()
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if !a.Equal(b) {
		t.Errorf("same seed and inputs produced different snapshots:\n%+v\n%+v", a, b)
	}
}
