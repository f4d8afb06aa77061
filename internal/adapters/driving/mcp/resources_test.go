package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: uri},
	}
}

func TestHandleCurrentResource(t *testing.T) {
	server := newTestServer(t, &Ports{Answer: &mockAnswerService{}})
	server.SetDocument("notes.txt", &mockHandle{doc: testDocument()})

	result, err := server.handleCurrentResource(context.Background(), makeReadResourceRequest(currentURI))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, currentURI, result.Contents[0].URI)
	assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
	assert.Equal(t, "alpha beta gamma", result.Contents[0].Text)
}

func TestHandleCurrentResource_NoDocument(t *testing.T) {
	server := newTestServer(t, &Ports{Answer: &mockAnswerService{}})

	_, err := server.handleCurrentResource(context.Background(), makeReadResourceRequest(currentURI))

	require.Error(t, err)
}

func TestHandleChunksResource(t *testing.T) {
	handle := &mockHandle{
		doc: testDocument(),
		chunks: []domain.Chunk{
			{Ordinal: 0, Start: 0, End: 120, Text: "first"},
			{Ordinal: 1, Start: 100, End: 220, Text: "second"},
		},
	}
	server := newTestServer(t, &Ports{Answer: &mockAnswerService{}})
	server.SetDocument("notes.txt", handle)

	result, err := server.handleChunksResource(context.Background(), makeReadResourceRequest(chunksURI))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)

	var infos []struct {
		Ordinal int `json:"ordinal"`
		Start   int `json:"start"`
		End     int `json:"end"`
	}
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &infos))
	require.Len(t, infos, 2)
	assert.Equal(t, 1, infos[1].Ordinal)
	assert.Equal(t, 100, infos[1].Start)
	assert.Equal(t, 220, infos[1].End)
}

func TestHandleChunksResource_NoDocument(t *testing.T) {
	server := newTestServer(t, &Ports{Answer: &mockAnswerService{}})

	_, err := server.handleChunksResource(context.Background(), makeReadResourceRequest(chunksURI))

	require.Error(t, err)
}
