// Package config provides YAML-based configuration loading and speed presets
// for the snake game.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// ErrInvalidBoard is returned for boards whose size is not a multiple of the cell size.
var ErrInvalidBoard = core.ErrInvalidBoard

// ErrInvalidTiming is returned for intervals that would stop or reverse time.
var ErrInvalidTiming = errors.New("invalid timing")

// Config contains all configuration for the game and its frontends.
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Timing  TimingConfig  `yaml:"timing"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Serve   ServeConfig   `yaml:"serve"`
}

// BoardConfig defines the play area in board units.
type BoardConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	CellSize int `yaml:"cell_size"`
}

// TimingConfig defines the tick interval and restart behaviour.
type TimingConfig struct {
	BaseIntervalMS int `yaml:"base_interval_ms"`
	RampCap        int `yaml:"ramp_cap"`         // Max ms the ramp removes from the base interval
	RestartDelayMS int `yaml:"restart_delay_ms"` // Pause between game over and the next game
}

// StorageConfig locates the replay journal.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LogConfig defines the log sink.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"` // Empty logs to stderr
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// ServeConfig defines the SSH server and the spectator feed.
type ServeConfig struct {
	SSHAddr        string `yaml:"ssh_addr"`
	HostKey        string `yaml:"host_key"`
	IdleTimeoutMin int    `yaml:"idle_timeout_min"`
	SpectateAddr   string `yaml:"spectate_addr"` // Empty disables the feed
}

// NewBoard builds the configured board.
func (c Config) NewBoard() (core.Board, error) {
	return core.NewBoard(c.Board.Width, c.Board.Height, c.Board.CellSize)
}

// Policy returns the speed policy for a mode.
func (c Config) Policy(m registry.Mode) snake.SpeedPolicy {
	return snake.SpeedPolicy{
		Base: time.Duration(c.Timing.BaseIntervalMS) * time.Millisecond,
		Ramp: m.Ramp,
		Cap:  c.Timing.RampCap,
	}
}

// RestartDelay returns the pause after game over.
func (c Config) RestartDelay() time.Duration {
	return time.Duration(c.Timing.RestartDelayMS) * time.Millisecond
}

// IdleTimeout returns the SSH idle timeout.
func (c Config) IdleTimeout() time.Duration {
	return time.Duration(c.Serve.IdleTimeoutMin) * time.Minute
}

// Validate checks the invariants the game relies on.
func (c Config) Validate() error {
	board, err := c.NewBoard()
	if err != nil {
		return err
	}
	if board.Cols() < snake.MinCols {
		return fmt.Errorf("%w: %d columns, the starting snake needs %d", ErrInvalidBoard, board.Cols(), snake.MinCols)
	}
	t := c.Timing
	if t.BaseIntervalMS <= 0 {
		return fmt.Errorf("%w: base interval %dms must be positive", ErrInvalidTiming, t.BaseIntervalMS)
	}
	if t.RampCap < 0 || t.RampCap >= t.BaseIntervalMS {
		return fmt.Errorf("%w: ramp cap %d must be in [0, %d)", ErrInvalidTiming, t.RampCap, t.BaseIntervalMS)
	}
	if t.RestartDelayMS < 0 {
		return fmt.Errorf("%w: restart delay %dms must not be negative", ErrInvalidTiming, t.RestartDelayMS)
	}
	return nil
}
