// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive persists finished reports to a local SQLite database.
// The archive is an append-only audit log: research turns write to it and
// the history command reads from it, but the pipeline itself never does, so
// each turn stays self-contained.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/deep-research/pkg/types"
)

const dbFile = "reports.db"

// Store manages the report archive database.
type Store struct {
	db *sql.DB
}

// Open creates cfg.Dir if needed and opens (or creates) the archive
// database inside it.
func Open(cfg types.ArchiveConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "archive"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TEXT NOT NULL,
		query TEXT NOT NULL,
		input_type TEXT NOT NULL,
		resolved_name TEXT NOT NULL,
		title TEXT NOT NULL,
		report_json TEXT NOT NULL
	)`)
	return err
}

// Entry is one archived research turn. Report is populated by Get and left
// nil by List.
type Entry struct {
	ID           int64
	CreatedAt    time.Time
	Query        string
	InputType    types.InputType
	ResolvedName string
	Title        string
	Report       *types.Report
}

// Save appends one finished turn and returns its row ID.
func (s *Store) Save(ctx context.Context, query string, c types.Classification, r *types.Report) (int64, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return 0, fmt.Errorf("marshaling report: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (created_at, query, input_type, resolved_name, title, report_json)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339), query, string(c.InputType), c.ResolvedName, r.Title, string(payload))
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	return res.LastInsertId()
}

// List returns the most recent entries, newest first, without report payloads.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, query, input_type, resolved_name, title
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created, inputType string
		if err := rows.Scan(&e.ID, &created, &e.Query, &inputType, &e.ResolvedName, &e.Title); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, created)
		e.InputType = types.InputType(inputType)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns one entry by ID, including the full report.
func (s *Store) Get(ctx context.Context, id int64) (*Entry, error) {
	var e Entry
	var created, inputType, payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, query, input_type, resolved_name, title, report_json
		 FROM runs WHERE id = ?`, id).
		Scan(&e.ID, &created, &e.Query, &inputType, &e.ResolvedName, &e.Title, &payload)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying run %d: %w", id, err)
	}

	e.CreatedAt, _ = time.Parse(time.RFC3339, created)
	e.InputType = types.InputType(inputType)

	var report types.Report
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return nil, fmt.Errorf("decoding archived report %d: %w", id, err)
	}
	e.Report = &report
	return &e, nil
}
