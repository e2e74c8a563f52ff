// Package registry provides a global registry of game modes.
// Modes register themselves in init() functions, allowing the CLI and the
// frontends to discover them without hardcoded lists.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownMode is returned by Get for unregistered IDs.
var ErrUnknownMode = errors.New("registry: unknown mode")

// Mode describes one way of timing the game. Rules are identical across
// modes; only the tick interval policy differs.
type Mode struct {
	// ID is the unique identifier used on the command line and in replays.
	ID string

	// Title is a human-readable name for display.
	Title string

	// Description is a one-line summary for listings.
	Description string

	// Ramp enables the score-based speed ramp.
	Ramp bool
}

var (
	modes = make(map[string]Mode)
	mu    sync.RWMutex
)

// Register adds a mode to the registry.
// Typically called from an init() function.
// Panics if a mode with the same ID is already registered.
func Register(m Mode) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := modes[m.ID]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", m.ID))
	}
	modes[m.ID] = m
}

// List returns all registered modes, sorted by ID.
func List() []Mode {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Mode, 0, len(modes))
	for _, m := range modes {
		result = append(result, m)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get looks a mode up by its ID.
func Get(id string) (Mode, error) {
	mu.RLock()
	defer mu.RUnlock()

	m, ok := modes[id]
	if !ok {
		return Mode{}, fmt.Errorf("%w %q", ErrUnknownMode, id)
	}
	return m, nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := modes[id]
	return ok
}
