package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/logging"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// env is the state every command builds from flags and config.
type env struct {
	cfg    config.Config
	board  core.Board
	logger *log.Logger
	closer io.Closer
}

// loadConfig resolves the config file and applies the global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyPreset(&cfg, config.SpeedPreset(flagSpeed)); err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}
	return cfg, cfg.Validate()
}

// setup loads configuration and builds the logger. The terminal frontends
// own the screen, so fileLog forces logging into the configured file.
// Any error is fatal: an invalid board cannot be played.
func setup(fileLog bool) *env {
	cfg, err := loadConfig()
	if err != nil {
		fatal("Error: %v", err)
	}

	board, err := cfg.NewBoard()
	if err != nil {
		fatal("Error: %v", err)
	}

	file := cfg.Log.File
	if !fileLog && flagLogFile == "" {
		file = ""
	}
	logger, closer, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		File:       file,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Prefix:     "snake",
	})
	if err != nil {
		fatal("Error: %v", err)
	}

	return &env{cfg: cfg, board: board, logger: logger, closer: closer}
}

func (e *env) Close() {
	//nolint:errcheck // Best-effort flush on exit
	e.closer.Close()
}

// sessionConfig builds the driver configuration for a mode.
func (e *env) sessionConfig(mode registry.Mode, seed int64) session.Config {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return session.Config{
		Board:        e.board,
		Mode:         mode,
		Policy:       e.cfg.Policy(mode),
		RestartDelay: e.cfg.RestartDelay(),
		Seed:         seed,
		Player:       os.Getenv("USER"),
		Logger:       e.logger,
	}
}

// openStore opens the replay journal. A missing database never stops play,
// so failures only warn.
func (e *env) openStore() *storage.Store {
	store, err := storage.Open(e.cfg.Storage.DBPath)
	if err != nil {
		e.logger.Warn("could not open replay database", "error", err)
		return nil
	}
	return store
}

// mustStore opens the replay journal for commands that need it.
func (e *env) mustStore() *storage.Store {
	store, err := storage.Open(e.cfg.Storage.DBPath)
	if err != nil {
		fatal("Error opening replay database: %v", err)
	}
	return store
}

// modeArg returns the mode named by args, or the classic mode.
func modeArg(args []string) registry.Mode {
	id := snake.ModeClassic
	if len(args) > 0 {
		id = args[0]
	}
	mode, err := registry.Get(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'snake list' to see available modes.")
		os.Exit(1)
	}
	return mode
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
