// Package history persists performance events across sessions. The journal
// is append-only, mirroring the in-memory log: rows are inserted and read,
// never updated.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"

	"github.com/inferahq/infera/internal/practice"
)

// Journal is the on-disk event log.
type Journal struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS performance_events (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id  TEXT NOT NULL,
	ts_millis   INTEGER NOT NULL,
	correct     INTEGER NOT NULL,
	accuracy    REAL NOT NULL,
	streak      INTEGER NOT NULL,
	subject_id  TEXT NOT NULL DEFAULT '',
	chapter_id  TEXT NOT NULL DEFAULT '',
	topic_id    TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_performance_events_ts ON performance_events (ts_millis);
`

// Open creates a Journal backed by the SQLite database at dsn. It applies
// recommended pragmas and creates the schema.
func Open(dsn string) (*Journal, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Append inserts one event for the session.
func (j *Journal) Append(ctx context.Context, sessionID string, ev practice.PerformanceEvent) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO performance_events
			(session_id, ts_millis, correct, accuracy, streak, subject_id, chapter_id, topic_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, ev.Timestamp, boolToInt(ev.Correct), ev.Accuracy, ev.Streak,
		ev.SubjectID, ev.ChapterID, ev.TopicID,
	)
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// Events returns all persisted events in timestamp order.
func (j *Journal) Events(ctx context.Context) ([]practice.PerformanceEvent, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT ts_millis, correct, accuracy, streak, subject_id, chapter_id, topic_id
		FROM performance_events
		ORDER BY ts_millis ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []practice.PerformanceEvent
	for rows.Next() {
		var (
			ev      practice.PerformanceEvent
			correct int
		)
		if err := rows.Scan(&ev.Timestamp, &correct, &ev.Accuracy, &ev.Streak,
			&ev.SubjectID, &ev.ChapterID, &ev.TopicID); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Correct = correct != 0
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}

// Count returns the number of persisted events.
func (j *Journal) Count(ctx context.Context) (int, error) {
	var n int
	if err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM performance_events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

// Reset deletes all persisted events.
func (j *Journal) Reset(ctx context.Context) error {
	if _, err := j.db.ExecContext(ctx, `DELETE FROM performance_events`); err != nil {
		return fmt.Errorf("reset journal: %w", err)
	}
	return nil
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultPath resolves the database file path in priority order:
// 1. INFERA_DB environment variable
// 2. $XDG_DATA_HOME/infera/infera.db
// 3. ~/.local/share/infera/infera.db
func DefaultPath() (string, error) {
	if p := os.Getenv("INFERA_DB"); p != "" {
		return p, ensureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "infera", "infera.db")
	return p, ensureDir(p)
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
