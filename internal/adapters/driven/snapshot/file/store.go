// Package file provides a catalog snapshot store backed by a single
// JSON file.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/promptfeed-cli/internal/core/domain"
	"github.com/custodia-labs/promptfeed-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.CatalogSnapshotStore = (*Store)(nil)

// SnapshotFile is the catalog file name inside the data directory.
const SnapshotFile = "catalog.json"

// Store persists the whole catalog as one JSON document. Record order
// in the file is catalog order; replaying it rebuilds the vector index
// position for position.
type Store struct {
	path string
}

// NewStore creates a file snapshot store under dataDir. If dataDir is
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
	return &Store{path: filepath.Join(dataDir, SnapshotFile)}, nil
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the stored catalog. A missing file means an empty catalog,
// not an error.
func (s *Store) Load(_ context.Context) ([]domain.ContentRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var records []domain.ContentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: decode snapshot: %w", domain.ErrCatalogCorrupt, err)
	}
	return records, nil
}

// Save writes the catalog atomically: to a temp file first, then a
// rename over the old snapshot. A crash mid-write leaves the previous
// snapshot intact.
func (s *Store) Save(_ context.Context, records []domain.ContentRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}
