package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

func scoredChunks() []domain.ScoredChunk {
	return []domain.ScoredChunk{
		{
			Chunk: domain.Chunk{Ordinal: 2, Start: 100, End: 200, Text: "second chunk"},
			Score: 0.91,
		},
		{
			Chunk: domain.Chunk{Ordinal: 0, Start: 0, End: 100, Text: "first chunk"},
			Score: 0.73,
		},
	}
}

func TestHandleAsk(t *testing.T) {
	answer := &mockAnswerService{
		answer: &domain.Answer{
			Text:      "The answer.",
			Retrieval: domain.RetrievalResult{Chunks: scoredChunks()},
			Prompt:    domain.Prompt{Truncated: true},
			Stats:     domain.AnswerStats{ElapsedMS: 42},
		},
	}
	server := newTestServer(t, &Ports{Answer: answer})
	server.SetDocument("notes.txt", &mockHandle{doc: testDocument()})

	_, out, err := server.handleAsk(context.Background(), nil, AskInput{Question: "what is it?"})

	require.NoError(t, err)
	assert.Equal(t, "what is it?", answer.lastQuestion)
	assert.Equal(t, "The answer.", out.Answer)
	assert.True(t, out.Truncated)
	assert.Equal(t, int64(42), out.ElapsedMS)
	require.Len(t, out.Sections, 2)
	assert.Equal(t, 2, out.Sections[0].Ordinal)
	assert.Equal(t, 0.91, out.Sections[0].Score)
	assert.Equal(t, "second chunk", out.Sections[0].Text)
}

func TestHandleAsk_NoDocument(t *testing.T) {
	server := newTestServer(t, &Ports{Answer: &mockAnswerService{}})

	_, _, err := server.handleAsk(context.Background(), nil, AskInput{Question: "anything"})

	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestHandleRetrieve(t *testing.T) {
	answer := &mockAnswerService{
		retrieval: domain.RetrievalResult{Chunks: scoredChunks()},
	}
	server := newTestServer(t, &Ports{Answer: answer})
	server.SetDocument("notes.txt", &mockHandle{doc: testDocument()})

	_, out, err := server.handleRetrieve(context.Background(), nil, RetrieveInput{Question: "where?"})

	require.NoError(t, err)
	assert.Equal(t, "where?", answer.lastQuestion)
	assert.Equal(t, 2, out.Count)
	require.Len(t, out.Sections, 2)
	assert.Equal(t, 100, out.Sections[0].Start)
	assert.Equal(t, 200, out.Sections[0].End)
}

func TestHandleRetrieve_NoDocument(t *testing.T) {
	server := newTestServer(t, &Ports{Answer: &mockAnswerService{}})

	_, _, err := server.handleRetrieve(context.Background(), nil, RetrieveInput{Question: "where?"})

	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestHandleSummarise(t *testing.T) {
	answer := &mockAnswerService{summary: "A short summary."}
	server := newTestServer(t, &Ports{Answer: answer})
	server.SetDocument("notes.txt", &mockHandle{doc: testDocument()})

	_, out, err := server.handleSummarise(context.Background(), nil, SummariseInput{MaxWords: 50})

	require.NoError(t, err)
	assert.Equal(t, 50, answer.lastMaxWords)
	assert.Equal(t, "A short summary.", out.Summary)
}

func TestHandleSummarise_DefaultMaxWords(t *testing.T) {
	answer := &mockAnswerService{summary: "A short summary."}
	server := newTestServer(t, &Ports{Answer: answer})
	server.SetDocument("notes.txt", &mockHandle{doc: testDocument()})

	_, _, err := server.handleSummarise(context.Background(), nil, SummariseInput{})

	require.NoError(t, err)
	assert.Equal(t, 200, answer.lastMaxWords)
}

func TestHandleSummarise_NoDocument(t *testing.T) {
	server := newTestServer(t, &Ports{Answer: &mockAnswerService{}})

	_, _, err := server.handleSummarise(context.Background(), nil, SummariseInput{})

	assert.ErrorIs(t, err, ErrNoDocument)
}
