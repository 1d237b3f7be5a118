// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// =============================================================================
// ENTRY TYPES
// =============================================================================

// Action is the kind of mutation attempted.
type Action string

const (
	ActionSignup     Action = "signup"
	ActionUnregister Action = "unregister"
)

// Outcome is how a mutation attempt ended.
type Outcome string

const (
	// OutcomeAccepted means the server answered 2xx.
	OutcomeAccepted Outcome = "accepted"
	// OutcomeRejected means the server refused with a structured error.
	OutcomeRejected Outcome = "rejected"
	// OutcomeFailed means the request did not complete or the reply was
	// unreadable.
	OutcomeFailed Outcome = "failed"
	// OutcomeDeclined means the user declined the confirmation.
	OutcomeDeclined Outcome = "declined"
)

// Entry is one journal row.
type Entry struct {
	ID       string
	At       time.Time
	Action   Action
	Activity string
	Email    string
	Outcome  Outcome
	Status   int
	// Text is the notification shown to the user, if any.
	Text string
}

// ErrClosed is returned by operations on a closed journal.
var ErrClosed = errors.New("journal is closed")

const schema = `
CREATE TABLE IF NOT EXISTS mutations (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    at INTEGER NOT NULL,        -- Unix nanoseconds
    action TEXT NOT NULL,
    activity TEXT NOT NULL,
    email TEXT NOT NULL,
    outcome TEXT NOT NULL,
    status INTEGER NOT NULL DEFAULT 0,
    text TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_mutations_activity ON mutations(activity);
`

// =============================================================================
// JOURNAL
// =============================================================================

// Journal is a SQLite-backed mutation log. Record and Recent may be called
// concurrently; Close may not.
type Journal struct {
	db   *sql.DB
	path string

	// now is the clock used to stamp entries without a time.
	now func() time.Time
}

// DefaultPath returns ~/.rosterboard/journal.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".rosterboard", "journal.db"), nil
}

// Open opens or creates the journal at path. ":memory:" gives a private
// in-memory journal.
func Open(path string) (*Journal, error) {
	if path == "" {
		return nil, errors.New("journal path cannot be empty")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	// One connection: SQLite has a single writer, and ":memory:" databases
	// are per connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Journal{db: db, path: path, now: time.Now}, nil
}

// Path returns the database location.
func (j *Journal) Path() string {
	return j.path
}

// Close releases the database.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}

// Record appends e, assigning an ID and timestamp when missing, and returns
// the stored entry.
func (j *Journal) Record(ctx context.Context, e Entry) (Entry, error) {
	if j == nil || j.db == nil {
		return e, ErrClosed
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.At.IsZero() {
		e.At = j.now()
	}

	_, err := j.db.ExecContext(ctx,
		`INSERT INTO mutations (id, at, action, activity, email, outcome, status, text)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.At.UnixNano(), string(e.Action), e.Activity, e.Email,
		string(e.Outcome), e.Status, e.Text)
	if err != nil {
		return e, fmt.Errorf("failed to record %s: %w", e.Action, err)
	}
	return e, nil
}

// Recent returns up to limit entries, newest first. A limit <= 0 returns
// every entry.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if j == nil || j.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := j.db.QueryContext(ctx,
		`SELECT id, at, action, activity, email, outcome, status, text
		 FROM mutations ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			at      int64
			action  string
			outcome string
		)
		if err := rows.Scan(&e.ID, &at, &action, &e.Activity, &e.Email, &outcome, &e.Status, &e.Text); err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		e.At = time.Unix(0, at)
		e.Action = Action(action)
		e.Outcome = Outcome(outcome)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns how many entries the journal holds.
func (j *Journal) Count(ctx context.Context) (int, error) {
	if j == nil || j.db == nil {
		return 0, ErrClosed
	}
	var n int
	err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM mutations`).Scan(&n)
	return n, err
}
