package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

func scored(ordinal, start int, text string, score float64) domain.ScoredChunk {
	return domain.ScoredChunk{
		Chunk: domain.Chunk{
			Ordinal: ordinal,
			Start:   start,
			End:     start + len([]rune(text)),
			Text:    text,
		},
		Score: score,
	}
}

func TestComposeIncludesChunksInRankOrder(t *testing.T) {
	composer := NewComposer(nil)
	result := domain.RetrievalResult{
		Query: "what?",
		Chunks: []domain.ScoredChunk{
			scored(3, 30, "third chunk text", 0.9),
			scored(0, 0, "first chunk text", 0.7),
		},
	}

	prompt, err := composer.Compose("what?", result, 200)
	require.NoError(t, err)

	assert.False(t, prompt.Truncated)
	assert.Equal(t, []int{3, 0}, prompt.Ordinals)
	assert.Contains(t, prompt.Text, "[Section 4 | chars 30-46]")
	assert.Contains(t, prompt.Text, "[Section 1 | chars 0-16]")
	assert.Contains(t, prompt.Text, "what?")
	// Higher-ranked chunk appears first.
	assert.Less(t,
		strings.Index(prompt.Text, "third chunk text"),
		strings.Index(prompt.Text, "first chunk text"))
}

func TestComposeStopsAtBudget(t *testing.T) {
	composer := NewComposer(nil)
	result := domain.RetrievalResult{
		Query: "q",
		Chunks: []domain.ScoredChunk{
			scored(0, 0, strings.Repeat("a", 50), 0.9),
			scored(1, 40, strings.Repeat("b", 80), 0.8), // would exceed: stop here
			scored(2, 110, strings.Repeat("c", 10), 0.7),
		},
	}

	prompt, err := composer.Compose("q", result, 100)
	require.NoError(t, err)

	// Whole-chunk granularity: inclusion stops at the first chunk
	// that does not fit, it never skips ahead to a smaller one.
	assert.Equal(t, []int{0}, prompt.Ordinals)
	assert.Equal(t, 50, prompt.ContextChars)
	assert.False(t, prompt.Truncated)
	assert.NotContains(t, prompt.Text, "ccc")
}

func TestComposeTruncatesOversizedBestChunk(t *testing.T) {
	composer := NewComposer(nil)
	big := strings.Repeat("x", 500)
	result := domain.RetrievalResult{
		Query:  "q",
		Chunks: []domain.ScoredChunk{scored(7, 0, big, 0.9)},
	}

	prompt, err := composer.Compose("q", result, 100)
	require.NoError(t, err)

	assert.True(t, prompt.Truncated)
	assert.Equal(t, []int{7}, prompt.Ordinals)
	assert.Equal(t, 100, prompt.ContextChars)
	assert.Contains(t, prompt.Text, strings.Repeat("x", 100))
	assert.NotContains(t, prompt.Text, strings.Repeat("x", 101))
}

func TestComposeEmptyRetrieval(t *testing.T) {
	composer := NewComposer(nil)

	prompt, err := composer.Compose("q", domain.RetrievalResult{Query: "q"}, 100)
	require.NoError(t, err)

	assert.Empty(t, prompt.Ordinals)
	assert.Zero(t, prompt.ContextChars)
	assert.Contains(t, prompt.Text, "no relevant context")
}

func TestComposeIsDeterministic(t *testing.T) {
	composer := NewComposer(nil)
	result := domain.RetrievalResult{
		Query: "same question",
		Chunks: []domain.ScoredChunk{
			scored(1, 10, "some chunk", 0.5),
			scored(2, 18, "another chunk", 0.4),
		},
	}

	first, err := composer.Compose("same question", result, 100)
	require.NoError(t, err)
	second, err := composer.Compose("same question", result, 100)
	require.NoError(t, err)

	assert.Equal(t, first.Text, second.Text, "identical inputs must give byte-identical prompts")
}

func TestComposeRejectsInvalidBudget(t *testing.T) {
	composer := NewComposer(nil)

	_, err := composer.Compose("q", domain.RetrievalResult{}, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestComposeCarriesGroundingInstruction(t *testing.T) {
	composer := NewComposer(nil)
	result := domain.RetrievalResult{
		Query:  "q",
		Chunks: []domain.ScoredChunk{scored(0, 0, "context text", 0.5)},
	}

	prompt, err := composer.Compose("q", result, 100)
	require.NoError(t, err)

	assert.Contains(t, prompt.Text, "ONLY the context sections")
	assert.Contains(t, prompt.Text, "say so explicitly")
}

func TestComposeUsesPromptStoreTemplate(t *testing.T) {
	store := stubPromptStore{domain: map[string]string{
		"answer": "CTX:%s Q:%s",
	}}
	composer := NewComposer(store)

	result := domain.RetrievalResult{
		Query:  "why?",
		Chunks: []domain.ScoredChunk{scored(0, 0, "evidence", 0.5)},
	}
	prompt, err := composer.Compose("why?", result, 100)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(prompt.Text, "CTX:"))
	assert.True(t, strings.HasSuffix(prompt.Text, "Q:why?"))
}

// --- Mock implementations ---

type stubPromptStore struct {
	domain map[string]string
}

func (s stubPromptStore) Load(name string) (string, error) {
	if prompt, ok := s.domain[name]; ok {
		return prompt, nil
	}
	return "", domain.ErrNotFound
}

func (s stubPromptStore) Reload() {}
