package driven

import (
	"context"

	"github.com/custodia-labs/promptfeed-cli/internal/core/domain"
)

// CatalogSnapshotStore persists the full ordered record list (including
// embeddings) as one blob per persistence cycle. On restart the blob is
// read back and the entry order re-establishes the catalog/index pairing.
type CatalogSnapshotStore interface {
	// Load reads the most recent snapshot. A missing snapshot is not an
	// error: it returns (nil, nil) and the catalog starts empty.
	Load(ctx context.Context) ([]domain.ContentRecord, error)

	// Save writes the complete record list, replacing any previous
	// snapshot. Records must be written in catalog order.
	Save(ctx context.Context, records []domain.ContentRecord) error

	// Close releases resources.
	Close() error
}
