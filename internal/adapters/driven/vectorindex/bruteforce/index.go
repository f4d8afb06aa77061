// Package bruteforce provides an exact in-memory vector index.
package bruteforce

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// entry is one indexed vector. Vectors are stored L2-normalised, so
// similarity reduces to a dot product.
type entry struct {
	ordinal int
	vector  []float32
}

// Index is an exact brute-force cosine similarity index. A single
// document produces at most a few thousand chunks, so a linear scan is
// both simpler and faster than an approximate structure, and its
// ranking is exactly reproducible: descending similarity, ties broken
// by ascending ordinal.
//
// The pipeline Adds every vector during a build and never mutates the
// index afterwards; Search is safe for concurrent use.
type Index struct {
	mu       sync.RWMutex
	dims     int
	entries  []entry
	ordinals map[int]struct{}
}

// New creates an empty index for vectors of the given dimensionality.
func New(dims int) (*Index, error) {
	if dims <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive, got %d", domain.ErrInvalidConfig, dims)
	}
	return &Index{
		dims:     dims,
		ordinals: make(map[int]struct{}),
	}, nil
}

// Add inserts a vector for the given chunk ordinal.
// The vector is copied and normalised; the caller's slice is not retained.
func (idx *Index) Add(_ context.Context, ordinal int, embedding []float32) error {
	if len(embedding) != idx.dims {
		return fmt.Errorf("%w: vector has %d dimensions, index expects %d", domain.ErrDimensionMismatch, len(embedding), idx.dims)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, exists := idx.ordinals[ordinal]; exists {
		return fmt.Errorf("%w: ordinal %d already indexed", domain.ErrAlreadyExists, ordinal)
	}

	idx.ordinals[ordinal] = struct{}{}
	idx.entries = append(idx.entries, entry{
		ordinal: ordinal,
		vector:  normalise(embedding),
	})
	return nil
}

// Search finds the k most similar vectors to the query.
// Returns at most min(k, Len) hits ordered by descending similarity,
// ties broken by ascending ordinal.
func (idx *Index) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be at least 1, got %d", domain.ErrInvalidConfig, k)
	}
	if len(query) != idx.dims {
		return nil, fmt.Errorf("%w: query has %d dimensions, index expects %d", domain.ErrDimensionMismatch, len(query), idx.dims)
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	q := normalise(query)

	hits := make([]driven.VectorHit, 0, len(idx.entries))
	for _, e := range idx.entries {
		hits = append(hits, driven.VectorHit{
			Ordinal: e.ordinal,
			Score:   dot(q, e.vector),
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Ordinal < hits[j].Ordinal
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Len returns the number of indexed vectors.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// Dimensions returns the vector size the index was created with.
func (idx *Index) Dimensions() int {
	return idx.dims
}

// Close releases resources.
func (idx *Index) Close() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.entries = nil
	idx.ordinals = nil
	return nil
}

// dot computes the dot product, accumulating in float64 so long vectors
// do not lose precision to float32 rounding.
func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// normalise returns a copied, L2-normalised vector. A zero vector is
// returned as a copy unchanged; it scores 0 against everything.
func normalise(v []float32) []float32 {
	var sumSquares float64
	for _, x := range v {
		sumSquares += float64(x) * float64(x)
	}

	out := make([]float32, len(v))
	if sumSquares == 0 {
		copy(out, v)
		return out
	}

	norm := math.Sqrt(sumSquares)
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}
