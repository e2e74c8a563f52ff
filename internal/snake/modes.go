package snake

import "github.com/vovakirdan/tui-snake/internal/registry"

// Mode IDs.
const (
	ModeClassic = "classic"
	ModeRamp    = "ramp"
)

func init() {
	registry.Register(registry.Mode{
		ID:          ModeClassic,
		Title:       "Snake",
		Description: "fixed tick interval",
	})
	registry.Register(registry.Mode{
		ID:          ModeRamp,
		Title:       "Snake (Ramp)",
		Description: "ticks speed up as the snake eats, down to a floor",
		Ramp:        true,
	})
}
