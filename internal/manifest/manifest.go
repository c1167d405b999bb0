// Package manifest records provenance for corpus runs in a SQLite file next
// to the output: which runs happened, and which documents each preprocessing
// run routed where. Output directories left behind by an aborted run have no
// finished timestamp, which is how an operator tells stale output from
// complete output.
package manifest

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// FileName is the manifest database filename inside an output root.
const FileName = "manifest.db"

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	kind        TEXT NOT NULL,
	target      TEXT NOT NULL DEFAULT '',
	started_at  TEXT NOT NULL,
	finished_at TEXT
);
CREATE TABLE IF NOT EXISTS documents (
	run_id    TEXT NOT NULL REFERENCES runs(id),
	partition TEXT NOT NULL,
	seq       INTEGER NOT NULL,
	filename  TEXT NOT NULL,
	veracity  TEXT NOT NULL DEFAULT '',
	uri       TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (run_id, partition, seq)
);
`

// Store is an open manifest database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the manifest at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open manifest %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize manifest %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// BeginRun records a new run of the given kind ("preprocess" or "extract")
// and returns its identifier.
func (s *Store) BeginRun(kind, target string) (string, error) {
	id := ulid.Make().String()
	_, err := s.db.Exec(
		`INSERT INTO runs (id, kind, target, started_at) VALUES (?, ?, ?, ?)`,
		id, kind, target, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}
	return id, nil
}

// FinishRun marks a run complete.
func (s *Store) FinishRun(id string) error {
	_, err := s.db.Exec(
		`UPDATE runs SET finished_at = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", id, err)
	}
	return nil
}

// RecordDocument records one routed document.
func (s *Store) RecordDocument(runID, partition string, seq int, filename, veracity, uri string) error {
	_, err := s.db.Exec(
		`INSERT INTO documents (run_id, partition, seq, filename, veracity, uri) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, partition, seq, filename, veracity, uri,
	)
	if err != nil {
		return fmt.Errorf("record document %s/%s: %w", partition, filename, err)
	}
	return nil
}

// DocumentCount returns how many documents a run routed in total.
func (s *Store) DocumentCount(runID string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM documents WHERE run_id = ?`, runID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count documents for run %s: %w", runID, err)
	}
	return n, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
