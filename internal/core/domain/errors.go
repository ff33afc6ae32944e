package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedSource indicates an unknown source adapter variant.
	ErrUnsupportedSource = errors.New("unsupported source")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or cannot be reached. Queries cannot be answered
	// without a prompt embedding.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrDimensionMismatch indicates a vector does not match the
	// catalog's fixed embedding dimension. Fatal for the affected
	// record, not for the batch.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrCatalogCorrupt indicates persisted state that cannot be
	// replayed safely (store/index divergence). Fatal at startup.
	ErrCatalogCorrupt = errors.New("catalog state corrupt")

	// ErrAdapterClosed indicates the source adapter has been closed.
	ErrAdapterClosed = errors.New("source adapter closed")

	// ErrRateLimited indicates an upstream API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
