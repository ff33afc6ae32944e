package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/promptfeed-cli/internal/core/domain"
	"github.com/custodia-labs/promptfeed-cli/internal/core/ports/driven"
	"github.com/custodia-labs/promptfeed-cli/internal/core/ports/driving"
	"github.com/custodia-labs/promptfeed-cli/internal/logger"
)

// Ensure Library implements the ingestion interface.
var _ driving.Ingestor = (*Library)(nil)

// Library is the content catalog: an append-only, ordered sequence of
// content records paired positionally with a vector index. The record
// at position i always owns the vector at position i; that pairing is
// the structural invariant everything else leans on.
//
// A single RWMutex guards the (records, index) pair as one unit:
// ingestion takes the write lock for the whole batch (including the
// persistence step), queries take the read lock. The index itself has
// no locking of its own.
type Library struct {
	mu        sync.RWMutex
	embedder  driven.EmbeddingService
	index     driven.VectorIndex
	snapshots driven.CatalogSnapshotStore

	records []domain.ContentRecord
	byID    map[string]int
}

// RecordHit pairs a catalog record with its distance to a query vector.
type RecordHit struct {
	Record   domain.ContentRecord
	Distance float64
}

// NewLibrary creates an empty catalog. The embedder and index must
// agree on the embedding dimension.
func NewLibrary(
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	snapshots driven.CatalogSnapshotStore,
) (*Library, error) {
	if embedder.Dimensions() != index.Dimensions() {
		return nil, fmt.Errorf("%w: embedder produces %d dimensions, index wants %d",
			domain.ErrDimensionMismatch, embedder.Dimensions(), index.Dimensions())
	}
	return &Library{
		embedder:  embedder,
		index:     index,
		snapshots: snapshots,
		byID:      make(map[string]int),
	}, nil
}

// Load restores the catalog from the snapshot store, replaying records
// in stored order so the catalog/index pairing is re-established
// exactly. A missing snapshot is not an error; the catalog starts
// empty. Corrupt state (bad dimension, divergent lengths) is fatal:
// there is no safe way to rebuild from it.
func (l *Library) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.snapshots.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if len(records) == 0 {
		logger.Debug("No snapshot found, starting with empty catalog")
		return nil
	}

	for pos := range records {
		rec := &records[pos]
		if len(rec.Embedding) != l.index.Dimensions() {
			return fmt.Errorf("%w: record %q at position %d has %d dimensions, index wants %d",
				domain.ErrCatalogCorrupt, rec.ID, pos, len(rec.Embedding), l.index.Dimensions())
		}
		if err := l.index.Add(rec.Embedding); err != nil {
			return fmt.Errorf("%w: replay position %d: %w", domain.ErrCatalogCorrupt, pos, err)
		}
		l.byID[rec.ID] = pos
	}
	l.records = records

	if l.index.Len() != len(l.records) {
		return fmt.Errorf("%w: %d records but %d vectors after replay",
			domain.ErrCatalogCorrupt, len(l.records), l.index.Len())
	}

	logger.Info("Catalog loaded: %d records", len(l.records))
	return nil
}

// Ingest converts raw items into content records. Re-ingesting an
// already-seen URL is a no-op reported as a duplicate skip; embedding
// failures and dimension mismatches drop the affected item only. The
// vector is appended to the index first and the record committed only
// on success, so the pairing can never be observed torn.
//
// The snapshot is written after the batch under the same write lock.
// A persistence failure is reported but does not lose in-memory state;
// the next successful snapshot includes all pending records.
func (l *Library) Ingest(ctx context.Context, items []domain.RawItem) (domain.IngestReport, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var report domain.IngestReport

	for i := range items {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		raw := &items[i]
		key := raw.Key()
		id := domain.Fingerprint(key)

		if _, exists := l.byID[id]; exists {
			report.Duplicates++
			logger.Debug("Skipping duplicate %s (%s)", id, key)
			continue
		}

		rec := recordFromRaw(raw, id)

		vec, err := l.embedder.Embed(ctx, rec.EmbeddingText())
		if err != nil {
			report.Failures = append(report.Failures, domain.ItemFailure{
				Key:    key,
				Reason: fmt.Sprintf("embed: %v", err),
			})
			logger.Warn("Embedding failed for %s: %v", key, err)
			continue
		}

		if err := l.index.Add(vec); err != nil {
			report.Failures = append(report.Failures, domain.ItemFailure{
				Key:    key,
				Reason: fmt.Sprintf("index: %v", err),
			})
			logger.Warn("Index append failed for %s: %v", key, err)
			continue
		}

		rec.Embedding = vec
		l.records = append(l.records, rec)
		l.byID[id] = len(l.records) - 1
		report.Ingested++
	}

	if report.Ingested > 0 {
		if err := l.snapshots.Save(ctx, l.records); err != nil {
			report.PersistErr = err.Error()
			logger.Warn("Snapshot write failed (state kept in memory): %v", err)
		}
	}

	logger.Info("Ingested %d new, %d duplicates, %d failures",
		report.Ingested, report.Duplicates, len(report.Failures))
	return report, nil
}

// Candidates searches the vector index and resolves the matching
// records, holding the read lock across both steps so the positional
// pairing cannot be observed mid-write. Results come back in
// ascending-distance order, at most min(k, Size()).
func (l *Library) Candidates(query []float32, k int) ([]RecordHit, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if k > len(l.records) {
		k = len(l.records)
	}
	candidates, err := l.index.Search(query, k)
	if err != nil {
		return nil, fmt.Errorf("index search: %w", err)
	}

	hits := make([]RecordHit, 0, len(candidates))
	for _, c := range candidates {
		hits = append(hits, RecordHit{
			Record:   l.records[c.Position],
			Distance: c.Distance,
		})
	}
	return hits, nil
}

// Size returns the number of records in the catalog.
func (l *Library) Size() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Dimensions returns the catalog's fixed embedding dimension.
func (l *Library) Dimensions() int {
	return l.index.Dimensions()
}

// Flush persists the current catalog state. Called at shutdown so a
// snapshot write that failed during ingestion gets another chance.
func (l *Library) Flush(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.records) == 0 {
		return nil
	}
	if err := l.snapshots.Save(ctx, l.records); err != nil {
		return fmt.Errorf("flush snapshot: %w", err)
	}
	return nil
}

// recordFromRaw builds the canonical record for a raw item. The preview
// bound is enforced again here in case an item arrived through the
// bulk-load path rather than an adapter.
func recordFromRaw(raw *domain.RawItem, id string) domain.ContentRecord {
	createdAt := raw.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return domain.ContentRecord{
		ID:          id,
		Title:       raw.Title,
		URL:         raw.URL,
		Thumbnail:   raw.Thumbnail,
		Source:      raw.Source,
		ContentType: raw.ContentType,
		Preview:     domain.TruncatePreview(raw.Preview),
		Tags:        raw.Tags,
		CreatedAt:   createdAt,
	}
}
