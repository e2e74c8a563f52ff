package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Snapshot captures the complete game state for rendering, spectating and
// replay verification.
type Snapshot struct {
	Tick        uint64      `json:"tick"`
	Body        []core.Cell `json:"body"`
	Heading     string      `json:"heading"`
	FoodPresent bool        `json:"food_present"`
	Food        core.Cell   `json:"food"`
	Eaten       int         `json:"eaten"`
	Status      string      `json:"status"`
	Cause       Cause       `json:"cause,omitempty"`
}

// Snapshot returns a copy of the current game state.
func (g *Game) Snapshot() Snapshot {
	food, present := g.food.Position()
	return Snapshot{
		Tick:        g.tick,
		Body:        g.snake.Body(),
		Heading:     g.snake.Heading().String(),
		FoodPresent: present,
		Food:        food,
		Eaten:       g.food.Eaten(),
		Status:      g.status.String(),
		Cause:       g.cause,
	}
}

// Head returns the first body cell of the snapshot.
func (s Snapshot) Head() core.Cell {
	if len(s.Body) == 0 {
		return core.Cell{}
	}
	return s.Body[0]
}

// Equal compares two snapshots field by field.
func (s Snapshot) Equal(o Snapshot) bool {
	field, _, _ := s.Diff(o)
	return field == ""
}

// Diff names the first field where s and o differ and formats both values.
// It returns an empty field name for equal snapshots.
func (s Snapshot) Diff(o Snapshot) (field, got, want string) {
	switch {
	case s.Tick != o.Tick:
		return "tick", fmt.Sprint(s.Tick), fmt.Sprint(o.Tick)
	case s.Status != o.Status:
		return "status", s.Status, o.Status
	case s.Cause != o.Cause:
		return "cause", string(s.Cause), string(o.Cause)
	case s.Eaten != o.Eaten:
		return "eaten", fmt.Sprint(s.Eaten), fmt.Sprint(o.Eaten)
	case s.Heading != o.Heading:
		return "heading", s.Heading, o.Heading
	case s.FoodPresent != o.FoodPresent || s.Food != o.Food:
		return "food", s.foodString(), o.foodString()
	case len(s.Body) != len(o.Body):
		return "length", fmt.Sprint(len(s.Body)), fmt.Sprint(len(o.Body))
	}
	for i := range s.Body {
		if s.Body[i] != o.Body[i] {
			return fmt.Sprintf("segment %d", i), s.Body[i].String(), o.Body[i].String()
		}
	}
	return "", "", ""
}

func (s Snapshot) foodString() string {
	if !s.FoodPresent {
		return "none"
	}
	return s.Food.String()
}
