// Package memory provides an in-memory embedding cache for tests and
// ephemeral runs where persistence is not wanted.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.EmbeddingCache = (*Cache)(nil)

// Cache is an in-memory implementation of driven.EmbeddingCache.
type Cache struct {
	mu         sync.RWMutex
	embeddings map[string][]float32
}

// NewCache creates a new in-memory embedding cache.
func NewCache() *Cache {
	return &Cache{
		embeddings: make(map[string][]float32),
	}
}

// Get returns the cached vector for the key, and whether it exists.
func (c *Cache) Get(_ context.Context, key string) ([]float32, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	vec, ok := c.embeddings[key]
	if !ok {
		return nil, false, nil
	}
	// Copy so callers cannot mutate the cached vector.
	out := make([]float32, len(vec))
	copy(out, vec)
	return out, true, nil
}

// Put stores a vector under the key, replacing any previous value.
func (c *Cache) Put(_ context.Context, key string, embedding []float32) error {
	stored := make([]float32, len(embedding))
	copy(stored, embedding)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.embeddings[key] = stored
	return nil
}

// Purge removes every cached vector.
func (c *Cache) Purge(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.embeddings = make(map[string][]float32)
	return nil
}

// Close releases resources. No-op for the in-memory cache.
func (c *Cache) Close() error {
	return nil
}
