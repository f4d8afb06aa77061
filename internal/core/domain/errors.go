package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors. Layers add provenance
// (stage, chunk ordinal) by wrapping with fmt.Errorf and %w, so callers
// can always classify a failure with errors.Is.
var (
	// ErrInvalidConfig indicates an invalid parameter or parameter
	// combination: chunk size, overlap, top_k, context budget, or an
	// embedder whose dimensionality disagrees with the index it is
	// queried against.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmbedding indicates the embedding provider failed.
	// Index builds are all-or-nothing: one failed chunk aborts the build.
	ErrEmbedding = errors.New("embedding failed")

	// ErrGeneration indicates the text generation call failed.
	ErrGeneration = errors.New("generation failed")

	// ErrGenerationTimeout indicates the generation call exceeded its
	// deadline. Kept distinct from ErrGeneration so callers can retry
	// with a larger budget if they choose to.
	ErrGenerationTimeout = errors.New("generation timed out")

	// ErrInvalidQuery indicates an empty or whitespace-only question.
	// Rejected before any embedding work happens.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrDimensionMismatch indicates a vector whose length disagrees
	// with the index dimensionality.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrInvalidInput indicates malformed or invalid input, such as an
	// empty document or an unreadable source.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrLLMUnavailable indicates the LLM service is not configured or
	// not reachable. Answering and summarising need a working LLM.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or not reachable. Indexing needs working embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrUnsupportedType indicates no document source can load the
	// given location.
	ErrUnsupportedType = errors.New("unsupported type")
)
