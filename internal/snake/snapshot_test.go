package snake

import (
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestSnapshotDiff(t *testing.T) {
	base := Snapshot{
		Tick:        4,
		Body:        []core.Cell{{X: 40, Y: 30}, {X: 50, Y: 30}},
		Heading:     "left",
		FoodPresent: true,
		Food:        core.Cell{X: 70, Y: 10},
		Eaten:       2,
		Status:      StatusPlaying.String(),
	}

	tests := []struct {
		name   string
		mutate func(*Snapshot)
		field  string
		got    string
		want   string
	}{
		{"equal", func(*Snapshot) {}, "", "", ""},
		{"tick", func(s *Snapshot) { s.Tick = 5 }, "tick", "4", "5"},
		{"heading", func(s *Snapshot) { s.Heading = "up" }, "heading", "left", "up"},
		{"food gone", func(s *Snapshot) { s.FoodPresent = false }, "food", "(70,10)", "none"},
		{"segment", func(s *Snapshot) { s.Body = []core.Cell{{X: 40, Y: 30}, {X: 40, Y: 40}} }, "segment 1", "(50,30)", "(40,40)"},
		{"length", func(s *Snapshot) { s.Body = s.Body[:1] }, "length", "2", "1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			other := base
			other.Body = append([]core.Cell(nil), base.Body...)
			tc.mutate(&other)

			field, got, want := base.Diff(other)
			if field != tc.field || got != tc.got || want != tc.want {
				t.Errorf("Diff() = %q %q %q, expected %q %q %q", field, got, want, tc.field, tc.got, tc.want)
			}
			if base.Equal(other) != (tc.field == "") {
				t.Errorf("Equal() = %v, disagrees with Diff", base.Equal(other))
			}
		})
	}
}
