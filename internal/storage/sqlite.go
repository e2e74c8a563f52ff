// Package storage provides the SQLite replay journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-snake/internal/replay"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// ErrNotFound is returned when no replay has the requested ID.
var ErrNotFound = errors.New("storage: replay not found")

// Store manages the SQLite database connection for recorded games.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			seed INTEGER NOT NULL,
			board_width INTEGER NOT NULL,
			board_height INTEGER NOT NULL,
			cell_size INTEGER NOT NULL,
			moves TEXT NOT NULL DEFAULT '',
			final TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			eaten INTEGER NOT NULL DEFAULT 0,
			cause TEXT NOT NULL DEFAULT '',
			player TEXT NOT NULL DEFAULT '',
			started_at INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_mode ON replays(mode);
		CREATE INDEX IF NOT EXISTS idx_replays_started ON replays(started_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveReplay stores a recording and returns its ID. A new UUID is
// assigned when the recording has none.
func (s *Store) SaveReplay(rec replay.Recording) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	final, err := json.Marshal(rec.Final)
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode final state: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO replays (id, mode, seed, board_width, board_height, cell_size,
		                      moves, final, ticks, eaten, cause, player, started_at, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Mode, rec.Seed, rec.Width, rec.Height, rec.CellSize,
		replay.EncodeMoves(rec.Moves), string(final), int64(rec.Final.Tick), rec.Final.Eaten,
		string(rec.Final.Cause), rec.Player, rec.StartedAt.UnixMilli(), rec.Duration.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save replay: %w", err)
	}

	return rec.ID, nil
}

const replayColumns = `id, mode, seed, board_width, board_height, cell_size,
		        moves, final, player, started_at, duration_ms`

type scanner interface {
	Scan(dest ...any) error
}

func scanReplay(row scanner) (replay.Recording, error) {
	var rec replay.Recording
	var moves, final string
	var startedAt, durationMS int64

	if err := row.Scan(
		&rec.ID,
		&rec.Mode,
		&rec.Seed,
		&rec.Width,
		&rec.Height,
		&rec.CellSize,
		&moves,
		&final,
		&rec.Player,
		&startedAt,
		&durationMS,
	); err != nil {
		return rec, err
	}

	parsed, err := replay.ParseMoves(moves)
	if err != nil {
		return rec, fmt.Errorf("storage: replay %s: %w", rec.ID, err)
	}
	rec.Moves = parsed

	var snap snake.Snapshot
	if err := json.Unmarshal([]byte(final), &snap); err != nil {
		return rec, fmt.Errorf("storage: replay %s: cannot decode final state: %w", rec.ID, err)
	}
	rec.Final = snap
	rec.StartedAt = time.UnixMilli(startedAt)
	rec.Duration = time.Duration(durationMS) * time.Millisecond

	return rec, nil
}

// ReplayByID retrieves a replay. Returns ErrNotFound for unknown IDs.
func (s *Store) ReplayByID(id string) (replay.Recording, error) {
	rec, err := scanReplay(s.db.QueryRow(
		`SELECT `+replayColumns+`
		 FROM replays
		 WHERE id = ?`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return replay.Recording{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return replay.Recording{}, fmt.Errorf("storage: cannot query replay: %w", err)
	}
	return rec, nil
}

// RecentReplays retrieves the most recent replays, newest first.
// An empty mode returns replays of every mode.
func (s *Store) RecentReplays(mode string, limit int) ([]replay.Recording, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+replayColumns+`
		 FROM replays
		 WHERE ? = '' OR mode = ?
		 ORDER BY started_at DESC, created_at DESC
		 LIMIT ?`,
		mode, mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var recs []replay.Recording
	for rows.Next() {
		rec, err := scanReplay(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return recs, nil
}

// CountReplays returns how many replays are stored for a mode, or for all
// modes when mode is empty.
func (s *Store) CountReplays(mode string) (int, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM replays WHERE ? = '' OR mode = ?",
		mode, mode,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count replays: %w", err)
	}
	return n, nil
}

// DeleteReplay removes a replay. Returns ErrNotFound for unknown IDs.
func (s *Store) DeleteReplay(id string) error {
	res, err := s.db.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
