// Package history keeps a local audit trail of submitted days in SQLite.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Record is one successfully submitted day.
type Record struct {
	Time    time.Time
	Date    string
	DayOff  bool
	Seconds int
	Issues  []string
}

// Store writes and reads submission records at a specific DB path.
type Store struct {
	Path string
}

// NewStore returns a Store bound to the given database file.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Append writes one record. The schema is created on first use.
func (s *Store) Append(rec Record) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	issuesJSON, err := json.Marshal(rec.Issues)
	if err != nil {
		return fmt.Errorf("marshal issues: %w", err)
	}

	_, err = db.Exec(
		"INSERT INTO submissions (ts, date, day_off, seconds, issues_json) VALUES (?, ?, ?, ?, ?)",
		rec.Time.UTC().Format(time.RFC3339),
		rec.Date,
		rec.DayOff,
		rec.Seconds,
		string(issuesJSON),
	)
	if err != nil {
		return fmt.Errorf("insert submission record: %w", err)
	}
	return nil
}

// List returns up to limit records, newest first. limit <= 0 means all.
func (s *Store) List(limit int) ([]Record, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = db.Close()
	}()

	query := "SELECT ts, date, day_off, seconds, issues_json FROM submissions ORDER BY id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query submission history: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []Record
	for rows.Next() {
		var rec Record
		var ts, issuesJSON string
		if err := rows.Scan(&ts, &rec.Date, &rec.DayOff, &rec.Seconds, &issuesJSON); err != nil {
			return nil, err
		}
		rec.Time, err = time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, fmt.Errorf("corrupt timestamp %q: %w", ts, err)
		}
		if err := json.Unmarshal([]byte(issuesJSON), &rec.Issues); err != nil {
			return nil, fmt.Errorf("corrupt issues column: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Store) open() (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return nil, fmt.Errorf("ensure history dir: %w", err)
	}

	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS submissions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ts TEXT NOT NULL,
			date TEXT NOT NULL,
			day_off INTEGER NOT NULL,
			seconds INTEGER NOT NULL,
			issues_json TEXT NOT NULL
		)
	`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return db, nil
}
