package ollama

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

func TestEmbed_EmptyText(t *testing.T) {
	// Any request reaching the provider here is a bug.
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("empty text must not reach the provider")
	}))
	defer server.Close()

	embedder := NewEmbedder(Config{BaseURL: server.URL})

	tests := []struct {
		name string
		text string
	}{
		{name: "empty string", text: ""},
		{name: "whitespace only", text: "  \n\t "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := embedder.Embed(context.Background(), tt.text)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrEmbedding)
		})
	}
}

func TestEmbed_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embeddings", r.URL.Path)
		w.Write([]byte(`{"embedding": [0.1, 0.2, 0.3]}`)) //nolint:errcheck
	}))
	defer server.Close()

	embedder := NewEmbedder(Config{BaseURL: server.URL, Dimensions: 3})

	vector, err := embedder.Embed(context.Background(), "some text")

	require.NoError(t, err)
	assert.Len(t, vector, 3)
	assert.InDelta(t, 0.1, vector[0], 1e-6)
}

func TestEmbed_DimensionMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"embedding": [0.1, 0.2]}`)) //nolint:errcheck
	}))
	defer server.Close()

	embedder := NewEmbedder(Config{BaseURL: server.URL, Dimensions: 3})

	_, err := embedder.Embed(context.Background(), "some text")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}
