// Package sqlite provides a catalog snapshot store backed by SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/promptfeed-cli/internal/core/domain"
	"github.com/custodia-labs/promptfeed-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.CatalogSnapshotStore = (*Store)(nil)

// schema holds one row per catalog record, keyed by catalog position so
// a load replays records in exactly the stored order.
const schema = `
CREATE TABLE IF NOT EXISTS catalog (
	position INTEGER PRIMARY KEY,
	id       TEXT NOT NULL,
	record   TEXT NOT NULL
);
`

// Store persists the catalog in a SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a SQLite snapshot store under dataDir. If dataDir is
// empty, defaults to ~/.promptfeed/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".promptfeed", "data")
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "catalog.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the stored catalog in position order. An empty table means
// an empty catalog.
func (s *Store) Load(ctx context.Context) ([]domain.ContentRecord, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT record FROM catalog ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	var records []domain.ContentRecord
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		var rec domain.ContentRecord
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, fmt.Errorf("%w: decode record at position %d: %w",
				domain.ErrCatalogCorrupt, len(records), err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return records, nil
}

// Save replaces the stored catalog with the given records, in order,
// inside one transaction.
func (s *Store) Save(ctx context.Context, records []domain.ContentRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM catalog"); err != nil {
		return fmt.Errorf("clear catalog: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO catalog (position, id, record) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for pos := range records {
		payload, err := json.Marshal(&records[pos])
		if err != nil {
			return fmt.Errorf("encode record %d: %w", pos, err)
		}
		if _, err := stmt.ExecContext(ctx, pos, records[pos].ID, string(payload)); err != nil {
			return fmt.Errorf("insert record %d: %w", pos, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
