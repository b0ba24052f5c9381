// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library keeps normalized InspireHEP records in a local SQLite
// database so search results can be revisited and exported later.
package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/inspirehep-engine/pkg/types"
)

// ErrNotFound is returned by Get when no record has the requested id.
var ErrNotFound = errors.New("record not found")

const defaultListLimit = 50

// Entry is a saved record with the query that found it.
type Entry struct {
	Record  types.NormalizedRecord `json:"record" yaml:"record"`
	Query   string                 `json:"query" yaml:"query"`
	SavedAt time.Time              `json:"saved_at" yaml:"saved_at"`
}

// Store manages the record library database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the library database at path, creating the parent
// directory and the schema when missing.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating library directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
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
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			doi TEXT,
			arxiv_id TEXT,
			citation_count INTEGER NOT NULL DEFAULT 0,
			query TEXT,
			record TEXT NOT NULL,
			saved_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_saved_at ON records(saved_at)`,
		`CREATE INDEX IF NOT EXISTS idx_records_doi ON records(doi)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save upserts records found by query and returns how many were written.
// Records without an id cannot be addressed later and are skipped.
func (s *Store) Save(ctx context.Context, query string, records []types.NormalizedRecord) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO records
		(id, title, doi, arxiv_id, citation_count, query, record, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			doi = excluded.doi,
			arxiv_id = excluded.arxiv_id,
			citation_count = excluded.citation_count,
			query = excluded.query,
			record = excluded.record,
			saved_at = excluded.saved_at`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	savedAt := s.now().UTC().Format(time.RFC3339Nano)
	n := 0
	for _, rec := range records {
		if rec.ID == "" {
			continue
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return 0, fmt.Errorf("marshaling record %s: %w", rec.ID, err)
		}
		var arxivID string
		if rec.PreprintInfo != nil {
			arxivID = rec.PreprintInfo.ArxivID
		}
		if _, err := stmt.ExecContext(ctx,
			rec.ID, rec.Title, nullString(rec.DOI), nullString(arxivID),
			rec.CitationCount, query, string(data), savedAt,
		); err != nil {
			return 0, fmt.Errorf("saving record %s: %w", rec.ID, err)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return n, nil
}

// Get returns the saved record with the given id.
func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT record, query, saved_at FROM records WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return e, err
}

// List returns up to limit saved records, most recently saved first.
// A non-positive limit uses the default.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT record, query, saved_at FROM records
		ORDER BY saved_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (Entry, error) {
	var (
		data    string
		query   sql.NullString
		savedAt string
	)
	if err := sc.Scan(&data, &query, &savedAt); err != nil {
		return Entry{}, err
	}
	var e Entry
	if err := json.Unmarshal([]byte(data), &e.Record); err != nil {
		return Entry{}, fmt.Errorf("decoding stored record: %w", err)
	}
	e.Query = query.String
	t, err := time.Parse(time.RFC3339Nano, savedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("parsing saved_at: %w", err)
	}
	e.SavedAt = t
	return e, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
