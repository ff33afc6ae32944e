// Package flat provides an exact, append-only vector index using
// squared Euclidean distance over a flat slice of embeddings.
package flat

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/promptfeed-cli/internal/core/domain"
	"github.com/custodia-labs/promptfeed-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index is a flat (brute-force) vector index. Vectors are stored in
// insertion order; position i in the index pairs with position i in the
// content catalog. There is no delete or update.
//
// Index performs no locking of its own; the catalog serialises access
// to the (records, index) pair.
type Index struct {
	dim  int
	vecs [][]float32
}

// New creates an empty index with a fixed vector dimension.
func New(dimensions int) (*Index, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive, got %d", domain.ErrInvalidInput, dimensions)
	}
	return &Index{dim: dimensions}, nil
}

// Add appends one embedding.
func (i *Index) Add(vec []float32) error {
	if len(vec) != i.dim {
		return fmt.Errorf("%w: got %d, index wants %d", domain.ErrDimensionMismatch, len(vec), i.dim)
	}
	i.vecs = append(i.vecs, vec)
	return nil
}

// Search returns up to min(k, Len()) candidates ordered by ascending
// squared-L2 distance. Equal distances break by ascending position, so
// results are fully deterministic and the first-added vector wins ties.
func (i *Index) Search(query []float32, k int) ([]driven.Candidate, error) {
	if len(query) != i.dim {
		return nil, fmt.Errorf("%w: query has %d, index wants %d", domain.ErrDimensionMismatch, len(query), i.dim)
	}
	if k <= 0 || len(i.vecs) == 0 {
		return nil, nil
	}

	candidates := make([]driven.Candidate, len(i.vecs))
	for pos, vec := range i.vecs {
		candidates[pos] = driven.Candidate{
			Position: pos,
			Distance: squaredL2(query, vec),
		}
	}

	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].Distance != candidates[b].Distance {
			return candidates[a].Distance < candidates[b].Distance
		}
		return candidates[a].Position < candidates[b].Position
	})

	if k > len(candidates) {
		k = len(candidates)
	}
	return candidates[:k], nil
}

// Len returns the number of stored vectors.
func (i *Index) Len() int {
	return len(i.vecs)
}

// Dimensions returns the fixed vector size.
func (i *Index) Dimensions() int {
	return i.dim
}

// squaredL2 computes the squared Euclidean distance between two vectors
// of equal length. Squared distance preserves nearest-neighbour order
// and skips the sqrt.
func squaredL2(a, b []float32) float64 {
	var sum float64
	for n := range a {
		d := float64(a[n]) - float64(b[n])
		sum += d * d
	}
	return sum
}
