package driven

import "context"

// VectorIndex ranks chunk vectors by cosine similarity to a query.
// An index is built once per document: the pipeline Adds every chunk
// vector, then treats the index as read-only. Search is safe to call
// concurrently after the build completes. Re-indexing means building a
// fresh instance, never mutating an exposed one.
type VectorIndex interface {
	// Add inserts a vector for the given chunk ordinal. The vector
	// length must match Dimensions, and each ordinal may appear once.
	Add(ctx context.Context, ordinal int, embedding []float32) error

	// Search finds the k most similar vectors to the query. k must be
	// at least 1 and acts as a ceiling: at most min(k, Len) hits come
	// back, ordered by descending similarity with ties broken by
	// ascending ordinal.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Len returns the number of indexed vectors.
	Len() int

	// Dimensions returns the vector size the index was created with.
	Dimensions() int

	// Close releases resources.
	Close() error
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// Ordinal is the matched chunk's ordinal.
	Ordinal int

	// Score is the cosine similarity against the query.
	Score float64
}
