package domain

// Prompt is a composed generation prompt with a bounded context section.
// Composition is pure: the same question, retrieval result, and budget
// always produce byte-identical Text.
type Prompt struct {
	// Text is the full prompt sent to the generator.
	Text string

	// Truncated is true when not even the best-ranked chunk fit the
	// context budget whole, and a single cut-down chunk was included
	// instead.
	Truncated bool

	// Ordinals lists the chunks whose text appears in the prompt, in
	// the order they appear.
	Ordinals []int

	// ContextChars is the total rune count of chunk text included.
	ContextChars int
}

// Answer is the outcome of one question against one document.
type Answer struct {
	// Text is the generated answer.
	Text string

	// Retrieval is the ranked evidence the answer was grounded on.
	Retrieval RetrievalResult

	// Prompt is the exact prompt that produced the answer.
	Prompt Prompt

	// Stats describes the pipeline run that produced the answer.
	Stats AnswerStats
}

// AnswerStats carries run diagnostics for display and logging.
type AnswerStats struct {
	// DocumentChars is the rune count of the normalised document.
	DocumentChars int

	// RawChars is the rune count before normalisation.
	RawChars int

	// ChunkCount is the number of chunks in the index.
	ChunkCount int

	// ChunksUsed is the number of chunks included in the prompt.
	ChunksUsed int

	// EmbeddingModel is the model that produced the vectors.
	EmbeddingModel string

	// GenerationModel is the model that produced the answer.
	GenerationModel string

	// ElapsedMS is the wall time of the answer call in milliseconds.
	ElapsedMS int64
}
