package tui

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/replay"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

func seededStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	start := time.Unix(1700000000, 0)
	modes := []string{snake.ModeClassic, snake.ModeClassic, snake.ModeClassic, snake.ModeRamp}
	for i, mode := range modes {
		_, err := store.SaveReplay(replay.Recording{
			Mode:      mode,
			Seed:      int64(i),
			Width:     200,
			Height:    200,
			CellSize:  10,
			Final:     snake.Snapshot{Tick: uint64(i + 1), Status: snake.StatusPlaying.String()},
			StartedAt: start.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("SaveReplay() failed: %v", err)
		}
	}
	return store
}

func TestReplaysFiltered(t *testing.T) {
	store := seededStore(t)

	tests := []struct {
		name   string
		mode   string
		limit  int
		filter string
		rows   int
	}{
		{"all modes", "", 0, "", 4},
		{"one mode", snake.ModeRamp, 0, snake.ModeRamp, 1},
		{"limit", snake.ModeClassic, 2, snake.ModeClassic, 2},
		{"unknown mode keeps all", "nope", 0, "", 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewReplaysModel(store, 80, 30).Filtered(tc.mode, tc.limit)
			if got := m.filters[m.filter]; got != tc.filter {
				t.Errorf("filter = %q, expected %q", got, tc.filter)
			}
			if len(m.replays) != tc.rows {
				t.Errorf("rows = %d, expected %d", len(m.replays), tc.rows)
			}
		})
	}
}

func TestReplaysLimitSurvivesFilterChange(t *testing.T) {
	store := seededStore(t)
	m := NewReplaysModel(store, 80, 30).Filtered("", 1)

	next, _ := m.Update(runeKey('l'))
	m = next.(ReplaysModel)
	if len(m.replays) != 1 {
		t.Errorf("rows = %d after switching mode, expected the limit of 1", len(m.replays))
	}
}
