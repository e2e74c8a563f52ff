package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewStderr(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(Options{Level: "warn", Stderr: &buf, Prefix: "snake"})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer closer.Close()

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info record written at warn level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "snake") {
		t.Errorf("output = %q", out)
	}
}

func TestNewFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	logger, closer, err := New(Options{Level: "DEBUG", File: "~/logs/snake.log", MaxSizeMB: 1})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	logger.Debug("game over", "eaten", 3)
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(home, "logs", "snake.log"))
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "eaten=3") {
		t.Errorf("log file = %q, expected logfmt record", data)
	}
}

func TestNewBadLevel(t *testing.T) {
	if _, _, err := New(Options{Level: "loud"}); err == nil {
		t.Error("New() should reject unknown levels")
	}
}
