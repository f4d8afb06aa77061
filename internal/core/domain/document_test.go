package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDocument_Chars tests rune counting on multibyte content
func TestDocument_Chars(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected int
	}{
		{
			name:     "ascii",
			content:  "hello world",
			expected: 11,
		},
		{
			name:     "empty",
			content:  "",
			expected: 0,
		},
		{
			name:     "multibyte runes count once",
			content:  "héllo wörld",
			expected: 11,
		},
		{
			name:     "cjk",
			content:  "你好世界",
			expected: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Document{Content: tt.content}
			assert.Equal(t, tt.expected, doc.Chars())
		})
	}
}

// TestChunk_Len tests span length derivation
func TestChunk_Len(t *testing.T) {
	c := Chunk{Ordinal: 2, Start: 12, End: 19, Text: "CC DDDD"}
	assert.Equal(t, 7, c.Len())
}

// TestRetrievalResult_Ordinals tests rank-order ordinal extraction
func TestRetrievalResult_Ordinals(t *testing.T) {
	r := RetrievalResult{
		Query: "what is overlap",
		Chunks: []ScoredChunk{
			{Chunk: Chunk{Ordinal: 3}, Score: 0.91},
			{Chunk: Chunk{Ordinal: 0}, Score: 0.88},
			{Chunk: Chunk{Ordinal: 7}, Score: 0.42},
		},
	}

	assert.Equal(t, []int{3, 0, 7}, r.Ordinals())
	assert.False(t, r.Empty())
	assert.True(t, RetrievalResult{}.Empty())
}
