package mcp

import (
	"context"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driving"
)

// mockHandle is a mock implementation of driving.DocumentHandle.
type mockHandle struct {
	doc    *domain.Document
	chunks []domain.Chunk
	closed int
}

func (m *mockHandle) Document() *domain.Document { return m.doc }

func (m *mockHandle) Chunks() []domain.Chunk { return m.chunks }

func (m *mockHandle) Close() error {
	m.closed++
	return nil
}

// mockAnswerService is a mock implementation of driving.AnswerService.
type mockAnswerService struct {
	handle    driving.DocumentHandle
	answer    *domain.Answer
	retrieval domain.RetrievalResult
	summary   string
	err       error

	indexCalls     int
	lastQuestion   string
	lastMaxWords   int
	lastIndexedDoc *domain.Document
}

func (m *mockAnswerService) Index(_ context.Context, doc *domain.Document) (driving.DocumentHandle, error) {
	m.indexCalls++
	m.lastIndexedDoc = doc
	return m.handle, m.err
}

func (m *mockAnswerService) Answer(_ context.Context, _ driving.DocumentHandle, question string) (*domain.Answer, error) {
	m.lastQuestion = question
	return m.answer, m.err
}

func (m *mockAnswerService) AnswerText(_ context.Context, _, question string) (*domain.Answer, error) {
	m.lastQuestion = question
	return m.answer, m.err
}

func (m *mockAnswerService) Retrieve(_ context.Context, _ driving.DocumentHandle, question string) (domain.RetrievalResult, error) {
	m.lastQuestion = question
	return m.retrieval, m.err
}

func (m *mockAnswerService) Summarise(_ context.Context, _ driving.DocumentHandle, maxWords int) (string, error) {
	m.lastMaxWords = maxWords
	return m.summary, m.err
}

// mockLoader is a mock implementation of DocumentLoader.
type mockLoader struct {
	doc   *domain.Document
	err   error
	calls int
}

func (m *mockLoader) Load(_ context.Context, _ string) (*domain.Document, error) {
	m.calls++
	return m.doc, m.err
}
