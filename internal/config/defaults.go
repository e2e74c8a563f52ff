package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Width:    600,
			Height:   400,
			CellSize: 10,
		},
		Timing: TimingConfig{
			BaseIntervalMS: 50,
			RampCap:        30,
			RestartDelayMS: 1500,
		},
		Storage: StorageConfig{
			DBPath: "~/.snake/replays.db",
		},
		Log: LogConfig{
			Level:      "info",
			File:       "~/.snake/snake.log",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		Serve: ServeConfig{
			SSHAddr:        ":23234",
			IdleTimeoutMin: 30,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
