package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/promptfeed-cli/internal/core/domain"
	"github.com/custodia-labs/promptfeed-cli/internal/core/ports/driven"
	"github.com/custodia-labs/promptfeed-cli/internal/core/ports/driving"
	"github.com/custodia-labs/promptfeed-cli/internal/logger"
)

// Ensure FeedService implements the interface.
var _ driving.FeedService = (*FeedService)(nil)

// FeedService is the retrieval engine: it embeds a prompt, searches the
// catalog's vector index and returns the nearest records after attribute
// filtering. It is the single entry point collaborators use to obtain a
// ranked feed.
type FeedService struct {
	embedder driven.EmbeddingService
	library  *Library
}

// NewFeedService creates a feed service over a catalog.
func NewFeedService(embedder driven.EmbeddingService, library *Library) *FeedService {
	return &FeedService{
		embedder: embedder,
		library:  library,
	}
}

// Query returns up to k records nearest to the prompt, in ascending
// distance order. Filtering never re-ranks: a record either passes and
// keeps its similarity position, or is dropped.
//
// The candidate superset is 2*k (capped at catalog size) to compensate
// for candidates lost to filters. When filters are more selective than
// that oversampling allows for, fewer than k records come back; the
// engine does not search deeper. Embedding failure is the one error a
// caller can see here; an empty catalog or over-selective filters just
// yield a short (possibly empty) result.
func (s *FeedService) Query(
	ctx context.Context, prompt string, k int, filters domain.FilterConfig,
) ([]domain.ContentRecord, error) {
	logger.Section("Feed Query")
	logger.Debug("Prompt: %q, k=%d", prompt, k)

	if k <= 0 {
		return []domain.ContentRecord{}, nil
	}

	queryVec, err := s.embedder.Embed(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}

	hits, err := s.library.Candidates(queryVec, 2*k)
	if err != nil {
		return nil, fmt.Errorf("search candidates: %w", err)
	}
	logger.Debug("Candidates: %d (requested %d)", len(hits), 2*k)

	results := make([]domain.ContentRecord, 0, k)
	for i := range hits {
		rec := &hits[i].Record
		if !filters.Matches(rec) {
			continue
		}
		results = append(results, rec.WithoutEmbedding())
		if len(results) == k {
			break
		}
	}

	if len(results) < k && !filters.IsZero() && len(hits) > 0 {
		// Known limitation: the 2k oversampling can under-fill when
		// filters are selective; we return what passed rather than
		// widening the search.
		logger.Debug("Filters left %d of %d requested results", len(results), k)
	}

	logger.Info("Feed query returned %d records", len(results))
	return results, nil
}
