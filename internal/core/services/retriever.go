package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/logger"
)

// Retriever embeds a question and ranks the document's chunks against
// it. Ranking itself is delegated to the vector index; the retriever
// validates the question, guards against embedder drift, and hydrates
// the ranked ordinals back into chunks.
type Retriever struct {
	embed *cachedEmbedder
}

// NewRetriever creates a retriever using the given embedder and
// optional cache. The embedder must be the one the queried indexes
// were built with.
func NewRetriever(embed *cachedEmbedder) *Retriever {
	return &Retriever{embed: embed}
}

// Retrieve returns the topK chunks most similar to the question.
// topK is a ceiling: a smaller index yields fewer chunks, never an
// error. The result order is exactly the index ranking: descending
// score, ties broken by ascending ordinal.
func (r *Retriever) Retrieve(ctx context.Context, idx *DocumentIndex, question string, topK int) (domain.RetrievalResult, error) {
	// Reject degenerate questions before any embedding work.
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.RetrievalResult{}, fmt.Errorf("%w: question is empty", domain.ErrInvalidQuery)
	}
	if topK < 1 {
		return domain.RetrievalResult{}, fmt.Errorf("%w: top_k must be at least 1, got %d", domain.ErrInvalidConfig, topK)
	}

	// An index built with a different embedder cannot be queried;
	// rebuilding is the only remedy.
	if dims := r.embed.embedder.Dimensions(); dims != idx.vector.Dimensions() {
		return domain.RetrievalResult{}, fmt.Errorf(
			"%w: embedder produces %d dimensions but index was built with %d; rebuild the index",
			domain.ErrInvalidConfig, dims, idx.vector.Dimensions())
	}

	logger.Debug("Retrieving top %d chunks for question: %q", topK, question)

	vector, err := r.embed.embed(ctx, question)
	if err != nil {
		return domain.RetrievalResult{}, fmt.Errorf("embed question: %w", err)
	}

	hits, err := idx.vector.Search(ctx, vector, topK)
	if err != nil {
		return domain.RetrievalResult{}, fmt.Errorf("search index: %w", err)
	}

	result := domain.RetrievalResult{
		Query:  question,
		Chunks: make([]domain.ScoredChunk, len(hits)),
	}
	for i, hit := range hits {
		chunk, err := idx.chunk(hit.Ordinal)
		if err != nil {
			return domain.RetrievalResult{}, fmt.Errorf("hydrate hit %d: %w", i, err)
		}
		result.Chunks[i] = domain.ScoredChunk{Chunk: chunk, Score: hit.Score}
	}

	logger.Debug("Retrieved %d chunks (ordinals %v)", len(result.Chunks), result.Ordinals())
	return result, nil
}
