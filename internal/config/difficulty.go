package config

import "fmt"

// SpeedPreset names a base interval. Presets change pacing only, never rules.
type SpeedPreset string

const (
	SpeedEasy   SpeedPreset = "easy"
	SpeedNormal SpeedPreset = "normal"
	SpeedHard   SpeedPreset = "hard"
)

// BaseIntervalForPreset returns the base interval in milliseconds for a preset.
func BaseIntervalForPreset(preset SpeedPreset) (int, bool) {
	switch preset {
	case SpeedEasy:
		return 80, true
	case SpeedNormal:
		return 50, true
	case SpeedHard:
		return 35, true
	default:
		return 0, false
	}
}

// ApplyPreset modifies the config based on a speed preset.
// The ramp cap is clamped so the fastest interval stays positive.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *Config, preset SpeedPreset) error {
	if preset == "" {
		return nil
	}
	base, ok := BaseIntervalForPreset(preset)
	if !ok {
		return fmt.Errorf("config: unknown speed preset %q", preset)
	}
	cfg.Timing.BaseIntervalMS = base
	if cfg.Timing.RampCap >= base {
		cfg.Timing.RampCap = base - 1
	}
	return nil
}
