package driven

import "context"

// EmbeddingCache stores embedding vectors keyed by content address.
// Keys incorporate the provider, model, dimensionality, and exact text,
// so a changed embedder configuration can never serve stale vectors.
// The cache is consulted explicitly by the pipeline; it is an
// optimisation, never a source of truth, and a miss is not an error.
type EmbeddingCache interface {
	// Get returns the cached vector for the key, and whether it exists.
	Get(ctx context.Context, key string) ([]float32, bool, error)

	// Put stores a vector under the key, replacing any previous value.
	Put(ctx context.Context, key string, embedding []float32) error

	// Purge removes every cached vector.
	Purge(ctx context.Context) error

	// Close releases resources.
	Close() error
}
