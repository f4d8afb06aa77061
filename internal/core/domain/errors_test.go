package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrInvalidConfig", ErrInvalidConfig},
		{"ErrEmbedding", ErrEmbedding},
		{"ErrGeneration", ErrGeneration},
		{"ErrGenerationTimeout", ErrGenerationTimeout},
		{"ErrInvalidQuery", ErrInvalidQuery},
		{"ErrDimensionMismatch", ErrDimensionMismatch},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNotFound", ErrNotFound},
		{"ErrAlreadyExists", ErrAlreadyExists},
		{"ErrLLMUnavailable", ErrLLMUnavailable},
		{"ErrEmbeddingUnavailable", ErrEmbeddingUnavailable},
		{"ErrUnsupportedType", ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Distinct tests that the timeout error never matches the
// plain generation error, so callers can tell them apart.
func TestErrors_Distinct(t *testing.T) {
	assert.False(t, errors.Is(ErrGenerationTimeout, ErrGeneration))
	assert.False(t, errors.Is(ErrGeneration, ErrGenerationTimeout))
	assert.False(t, errors.Is(ErrEmbedding, ErrGeneration))
	assert.False(t, errors.Is(ErrInvalidQuery, ErrInvalidInput))
}

// TestErrors_WrappedClassification tests errors.Is through provenance wrapping
func TestErrors_WrappedClassification(t *testing.T) {
	wrapped := fmt.Errorf("embed chunk 7: %w", ErrEmbedding)
	assert.True(t, errors.Is(wrapped, ErrEmbedding))
	assert.Contains(t, wrapped.Error(), "chunk 7")

	deep := fmt.Errorf("building index: %w", wrapped)
	assert.True(t, errors.Is(deep, ErrEmbedding))
	assert.False(t, errors.Is(deep, ErrGeneration))
}
