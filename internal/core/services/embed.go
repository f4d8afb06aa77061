package services

import (
	"context"

	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdoc-cli/internal/logger"
)

// cachedEmbedder embeds text through an optional content-addressed
// cache. The cache is consulted explicitly per call; a miss or a cache
// failure is never an error, it just costs one provider call.
type cachedEmbedder struct {
	embedder driven.Embedder
	cache    driven.EmbeddingCache // nil disables caching
	provider string
}

// embed returns the vector for text, from cache when possible.
func (c *cachedEmbedder) embed(ctx context.Context, text string) ([]float32, error) {
	var key string
	if c.cache != nil {
		key = embeddingCacheKey(c.provider, c.embedder.ModelName(), c.embedder.Dimensions(), text)

		vector, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			logger.Warn("Embedding cache read failed: %v", err)
		} else if ok {
			return vector, nil
		}
	}

	vector, err := c.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, key, vector); err != nil {
			logger.Warn("Embedding cache write failed: %v", err)
		}
	}

	return vector, nil
}
