package driven

// VectorIndex is an append-only nearest-neighbour structure over
// embeddings, synchronised positionally with the content catalog:
// the vector at position i always belongs to the record at position i.
//
// There is no delete or update (content is append-only) and no
// internal locking: the catalog guards the (records, index) pair with
// a single lock, so the index is a plain data structure.
type VectorIndex interface {
	// Add appends one embedding. Fails with domain.ErrDimensionMismatch
	// when the vector does not match the index dimension.
	Add(vec []float32) error

	// Search returns up to min(k, Len()) candidates ordered by ascending
	// distance; ties break by ascending position (first added wins).
	Search(query []float32, k int) ([]Candidate, error)

	// Len returns the number of stored vectors.
	Len() int

	// Dimensions returns the fixed vector size.
	Dimensions() int
}

// Candidate is one nearest-neighbour search result.
type Candidate struct {
	// Position is the vector's insertion position, which is also the
	// position of the matching record in the catalog.
	Position int

	// Distance is the squared Euclidean distance to the query.
	// Smaller means more similar.
	Distance float64
}
