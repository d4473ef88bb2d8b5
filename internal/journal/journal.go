// Package journal provides SQLite-backed local bookkeeping of completed
// time entries. The backend remains the source of truth; the journal only
// powers the offline history view.
package journal

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/shopfloor-dev/shopfloor/internal/timer"
)

// Entry is one completed time entry as recorded locally.
type Entry struct {
	ID        string
	SessionID string
	ProjectID string
	Process   string
	TaskID    string
	Comments  string
	StartedAt time.Time
	StoppedAt time.Time
	Hours     float64
}

// Store provides SQLite-backed persistence for the journal.
type Store struct {
	db *sql.DB
}

// NewStore opens the SQLite database at dbPath and creates tables if they
// don't exist.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		project_id TEXT,
		process TEXT NOT NULL,
		task_id TEXT,
		comments TEXT,
		started_at DATETIME NOT NULL,
		stopped_at DATETIME NOT NULL,
		hours REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_entries_stopped_at ON entries(stopped_at);
	`
	_, err := db.Exec(schema)
	return err
}

// Record stores a stop record as a new journal entry. Implements
// timer.Recorder.
func (s *Store) Record(rec timer.StopRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO entries (id, session_id, project_id, process, task_id, comments, started_at, stopped_at, hours)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), rec.SessionID, rec.ProjectID, rec.Process,
		rec.TaskID, rec.Comments, rec.StartedAt, rec.StoppedAt, rec.Hours,
	)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

// ListSince returns entries stopped at or after the given time, newest
// first.
func (s *Store) ListSince(since time.Time) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, project_id, process, task_id, comments, started_at, stopped_at, hours
		 FROM entries WHERE stopped_at >= ? ORDER BY stopped_at DESC`,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.SessionID, &e.ProjectID, &e.Process,
			&e.TaskID, &e.Comments, &e.StartedAt, &e.StoppedAt, &e.Hours); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// HoursSince sums logged hours for entries stopped at or after the given
// time.
func (s *Store) HoursSince(since time.Time) (float64, error) {
	var total sql.NullFloat64
	err := s.db.QueryRow(
		`SELECT SUM(hours) FROM entries WHERE stopped_at >= ?`, since,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum hours: %w", err)
	}
	return total.Float64, nil
}
