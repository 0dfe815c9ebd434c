// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists transition matrices in a SQLite database. Cell
// values are stored as raw text so a matrix loads back exactly as it was
// read, with state and row order preserved.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/A1-3x/Markov-viz/pkg/types"
)

// ErrNotFound is returned when no matrix has the requested name.
var ErrNotFound = errors.New("matrix not found")

// Store manages the matrix SQLite database.
type Store struct {
	db *sql.DB
}

// Summary describes one stored matrix.
type Summary struct {
	Name       string
	Source     string
	States     int
	Rows       int
	ImportedAt time.Time
}

// Open opens or creates the database at cfg.Path and creates the schema if
// it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = types.DefaultStorePath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
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

// OpenExisting opens the database at cfg.Path like Open, but fails with an
// error wrapping fs.ErrNotExist instead of creating a missing file.
func OpenExisting(cfg types.StoreConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = types.DefaultStorePath
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}
	return Open(types.StoreConfig{Path: path})
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS matrices (
			name TEXT PRIMARY KEY,
			label_column TEXT NOT NULL,
			source TEXT,
			imported_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS states (
			matrix TEXT NOT NULL REFERENCES matrices(name) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			PRIMARY KEY (matrix, position)
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			matrix TEXT NOT NULL REFERENCES matrices(name) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			label TEXT NOT NULL,
			PRIMARY KEY (matrix, position)
		)`,
		`CREATE TABLE IF NOT EXISTS cells (
			matrix TEXT NOT NULL REFERENCES matrices(name) ON DELETE CASCADE,
			row_pos INTEGER NOT NULL,
			state_pos INTEGER NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (matrix, row_pos, state_pos)
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save stores m under name, replacing any matrix already stored with that
// name. The write happens in one transaction.
func (s *Store) Save(ctx context.Context, name, source string, m types.Matrix) error {
	if name == "" {
		return errors.New("matrix name is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM matrices WHERE name = ?`, name); err != nil {
		return fmt.Errorf("deleting old matrix: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO matrices (name, label_column, source, imported_at) VALUES (?, ?, ?, ?)`,
		name, m.LabelColumn, source, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting matrix: %w", err)
	}

	for i, state := range m.States {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO states (matrix, position, name) VALUES (?, ?, ?)`, name, i, state); err != nil {
			return fmt.Errorf("inserting state %q: %w", state, err)
		}
	}

	cellStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO cells (matrix, row_pos, state_pos, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer cellStmt.Close()

	for r, rec := range m.Records {
		if len(rec.Values) != len(m.States) {
			return fmt.Errorf("row %d has %d values, want %d", r+1, len(rec.Values), len(m.States))
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO records (matrix, position, label) VALUES (?, ?, ?)`, name, r, rec.Label); err != nil {
			return fmt.Errorf("inserting row %d: %w", r+1, err)
		}
		for c, v := range rec.Values {
			if _, err := cellStmt.ExecContext(ctx, name, r, c, v); err != nil {
				return fmt.Errorf("inserting cell (%d, %d): %w", r+1, c+1, err)
			}
		}
	}

	return tx.Commit()
}

// Load returns the matrix stored under name, or ErrNotFound.
func (s *Store) Load(ctx context.Context, name string) (types.Matrix, error) {
	var m types.Matrix
	err := s.db.QueryRowContext(ctx,
		`SELECT label_column FROM matrices WHERE name = ?`, name).Scan(&m.LabelColumn)
	if err == sql.ErrNoRows {
		return types.Matrix{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return types.Matrix{}, fmt.Errorf("querying matrix: %w", err)
	}

	m.States, err = s.queryStrings(ctx,
		`SELECT name FROM states WHERE matrix = ? ORDER BY position`, name)
	if err != nil {
		return types.Matrix{}, fmt.Errorf("querying states: %w", err)
	}

	labels, err := s.queryStrings(ctx,
		`SELECT label FROM records WHERE matrix = ? ORDER BY position`, name)
	if err != nil {
		return types.Matrix{}, fmt.Errorf("querying records: %w", err)
	}

	m.Records = make([]types.Record, len(labels))
	for i, label := range labels {
		m.Records[i] = types.Record{Label: label, Values: make([]string, len(m.States))}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT row_pos, state_pos, value FROM cells WHERE matrix = ?`, name)
	if err != nil {
		return types.Matrix{}, fmt.Errorf("querying cells: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r, c int
		var v string
		if err := rows.Scan(&r, &c, &v); err != nil {
			return types.Matrix{}, fmt.Errorf("scanning cell: %w", err)
		}
		if r < 0 || r >= len(m.Records) || c < 0 || c >= len(m.States) {
			return types.Matrix{}, fmt.Errorf("cell (%d, %d) out of range", r, c)
		}
		m.Records[r].Values[c] = v
	}
	if err := rows.Err(); err != nil {
		return types.Matrix{}, err
	}
	return m, nil
}

// List returns a summary of every stored matrix, sorted by name.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.name, COALESCE(m.source, ''), m.imported_at,
			(SELECT COUNT(*) FROM states WHERE matrix = m.name),
			(SELECT COUNT(*) FROM records WHERE matrix = m.name)
		FROM matrices m
		ORDER BY m.name`)
	if err != nil {
		return nil, fmt.Errorf("listing matrices: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var imported string
		if err := rows.Scan(&sum.Name, &sum.Source, &imported, &sum.States, &sum.Rows); err != nil {
			return nil, fmt.Errorf("scanning matrix: %w", err)
		}
		sum.ImportedAt, err = time.Parse(time.RFC3339, imported)
		if err != nil {
			return nil, fmt.Errorf("parsing imported_at of %s: %w", sum.Name, err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Delete removes the matrix stored under name, or returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM matrices WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting matrix: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

func (s *Store) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
