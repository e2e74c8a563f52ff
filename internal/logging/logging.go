// Package logging builds the charmbracelet logger used by every command.
// When a file is configured, records go to a size-rotated file so they do
// not tear the terminal UI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	Level      string
	File       string // Empty writes to Stderr
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Prefix     string
	Stderr     io.Writer // Defaults to os.Stderr
}

// New returns a logger and a closer for its sink. The closer is a no-op
// when logging to stderr.
func New(opts Options) (*log.Logger, io.Closer, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, nil, fmt.Errorf("logging: %w", err)
		}
		level = parsed
	}

	if opts.File == "" {
		w := opts.Stderr
		if w == nil {
			w = os.Stderr
		}
		logger := log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			Prefix:          opts.Prefix,
			Level:           level,
		})
		return logger, nopCloser{}, nil
	}

	path, err := expandHome(opts.File)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("logging: cannot create directory: %w", err)
	}

	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}
	logger := log.NewWithOptions(lj, log.Options{
		ReportTimestamp: true,
		Prefix:          opts.Prefix,
		Level:           level,
		Formatter:       log.LogfmtFormatter,
	})
	return logger, lj, nil
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("logging: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
