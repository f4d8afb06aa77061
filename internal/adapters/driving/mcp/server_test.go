package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func testDocument() *domain.Document {
	return &domain.Document{
		ID:      "doc-1",
		Source:  "notes.txt",
		Title:   "notes.txt",
		Content: "alpha beta gamma",
	}
}

func TestNewServer_RequiresAnswerService(t *testing.T) {
	_, err := NewServer(&Ports{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingAnswerService)
}

func TestNewServer_LoaderOptional(t *testing.T) {
	server, err := NewServer(&Ports{Answer: &mockAnswerService{}})

	require.NoError(t, err)
	assert.NotNil(t, server)
}

func TestServer_CurrentWithoutDocument(t *testing.T) {
	server := newTestServer(t, &Ports{Answer: &mockAnswerService{}})

	_, err := server.current()

	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestServer_SetDocumentClosesPrevious(t *testing.T) {
	server := newTestServer(t, &Ports{Answer: &mockAnswerService{}})

	first := &mockHandle{doc: testDocument()}
	second := &mockHandle{doc: testDocument()}

	server.SetDocument("notes.txt", first)
	server.SetDocument("notes.txt", second)

	assert.Equal(t, 1, first.closed)
	assert.Equal(t, 0, second.closed)

	handle, err := server.current()
	require.NoError(t, err)
	assert.Same(t, second, handle)
}

func TestServer_Reindex(t *testing.T) {
	doc := testDocument()
	rebuilt := &mockHandle{doc: doc}
	answer := &mockAnswerService{handle: rebuilt}
	loader := &mockLoader{doc: doc}
	server := newTestServer(t, &Ports{Answer: answer, Loader: loader})

	original := &mockHandle{doc: doc}
	server.SetDocument("notes.txt", original)

	err := server.Reindex(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, loader.calls)
	assert.Equal(t, 1, answer.indexCalls)
	assert.Equal(t, 1, original.closed)

	handle, err := server.current()
	require.NoError(t, err)
	assert.Same(t, rebuilt, handle)
}

func TestServer_ReindexWithoutDocument(t *testing.T) {
	server := newTestServer(t, &Ports{Answer: &mockAnswerService{}, Loader: &mockLoader{}})

	err := server.Reindex(context.Background())

	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestServer_ReindexWithoutLoader(t *testing.T) {
	server := newTestServer(t, &Ports{Answer: &mockAnswerService{}})
	server.SetDocument("notes.txt", &mockHandle{doc: testDocument()})

	err := server.Reindex(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "loader")
}
