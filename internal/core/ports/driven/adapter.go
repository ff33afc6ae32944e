package driven

import (
	"context"

	"github.com/custodia-labs/promptfeed-cli/internal/core/domain"
)

// SourceAdapter fetches raw items from one external content source and
// normalises them into the common RawItem shape. Each source variant
// (reddit, youtube, medium, podcast, github) implements this interface.
//
// Failure policy: a fetch that goes wrong upstream (network error,
// malformed response, timeout) returns an error; the aggregation
// pipeline treats an error and an empty result identically: zero items,
// reported, no effect on sibling adapters. Adapters must honour context
// cancellation so abandoned tasks stop promptly.
type SourceAdapter interface {
	// Source returns the adapter variant identifier (domain.Source*).
	Source() string

	// Fetch retrieves and normalises items for the given parameters.
	Fetch(ctx context.Context, params domain.FetchParams) ([]domain.RawItem, error)

	// Close releases resources. Fetch after Close fails with
	// domain.ErrAdapterClosed.
	Close() error
}

// AdapterFactory creates source adapters by variant name.
// Returns domain.ErrUnsupportedSource for unknown variants.
type AdapterFactory interface {
	Create(source string) (SourceAdapter, error)
}
