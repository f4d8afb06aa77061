package domain

// ScoredChunk pairs a chunk with its similarity to a query.
type ScoredChunk struct {
	// Chunk is the retrieved chunk.
	Chunk Chunk

	// Score is the cosine similarity against the query vector.
	Score float64
}

// RetrievalResult holds the ranked chunks retrieved for one question.
// Chunks are ordered by descending score; equal scores appear in
// ascending ordinal order. The ordering is deterministic for identical
// index contents and query vector.
type RetrievalResult struct {
	// Query is the trimmed question text that was embedded.
	Query string

	// Chunks are the retrieved chunks in rank order.
	Chunks []ScoredChunk
}

// Empty reports whether nothing was retrieved.
func (r RetrievalResult) Empty() bool {
	return len(r.Chunks) == 0
}

// Ordinals returns the retrieved chunk ordinals in rank order.
func (r RetrievalResult) Ordinals() []int {
	out := make([]int, len(r.Chunks))
	for i, sc := range r.Chunks {
		out[i] = sc.Chunk.Ordinal
	}
	return out
}
