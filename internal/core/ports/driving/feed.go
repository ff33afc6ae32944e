package driving

import (
	"context"

	"github.com/custodia-labs/promptfeed-cli/internal/core/domain"
)

// Ingestor is the single ingestion operation external collaborators use
// to feed content into the catalog (the scraping subsystem and the
// administrative bulk-load path).
type Ingestor interface {
	// Ingest converts raw items into content records: computes ids,
	// skips duplicates, embeds, appends to catalog and index as one
	// unit, and persists the catalog. Item-level failures are reported
	// in the IngestReport and do not abort the batch.
	Ingest(ctx context.Context, items []domain.RawItem) (domain.IngestReport, error)
}

// FeedService is the single query operation external collaborators use
// to obtain a ranked feed.
type FeedService interface {
	// Query embeds the prompt, searches the vector index and returns up
	// to k records in ascending-distance order, filtered by attributes.
	// Fewer than k records is not an error; embedding failure is.
	// Returned records have their embeddings stripped.
	Query(ctx context.Context, prompt string, k int, filters domain.FilterConfig) ([]domain.ContentRecord, error)
}
