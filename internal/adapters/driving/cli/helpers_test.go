package cli

import (
	"context"
	"testing"

	configfile "github.com/custodia-labs/askdoc-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/askdoc-cli/internal/adapters/driven/docsource"
	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driving"
	"github.com/custodia-labs/askdoc-cli/internal/core/services"
)

// setupTestServices swaps the package-level services for test doubles
// and returns a cleanup function that restores the originals.
func setupTestServices(t *testing.T) func() {
	t.Helper()

	origAnswer := answerService
	origSettings := settingsService
	origRegistry := docRegistry
	origClose := closeServices

	answerService = &stubAnswerService{
		answer: &domain.Answer{
			Text: "Paris is the capital of France.",
			Retrieval: domain.RetrievalResult{
				Chunks: []domain.ScoredChunk{
					{Chunk: domain.Chunk{Ordinal: 0, Start: 0, End: 40, Text: "Paris is the capital of France."}, Score: 0.95},
				},
			},
			Stats: domain.AnswerStats{ChunkCount: 3, ChunksUsed: 1, ElapsedMS: 12},
		},
		summary: "A document about France.",
	}
	settingsService = newTestSettingsService(t)
	docRegistry = docsource.NewRegistry(&stubDocSource{
		doc: &domain.Document{
			ID:      "test-doc",
			Source:  "test.txt",
			Title:   "test.txt",
			Content: "Paris is the capital of France. It is known for the Eiffel Tower and the Louvre museum.",
		},
	})
	closeServices = nil

	return func() {
		answerService = origAnswer
		settingsService = origSettings
		docRegistry = origRegistry
		closeServices = origClose
		rootCmd.SetArgs(nil)
	}
}

// newTestSettingsService builds a real settings service backed by a
// throwaway config directory.
func newTestSettingsService(t *testing.T) driving.SettingsService {
	t.Helper()

	store, err := configfile.NewConfigStore(t.TempDir())
	if err != nil {
		t.Fatalf("creating test config store: %v", err)
	}
	return services.NewSettingsService(store, nil)
}

// --- Mock implementations ---

type stubHandle struct {
	doc    *domain.Document
	chunks []domain.Chunk
	closed int
}

func (h *stubHandle) Document() *domain.Document { return h.doc }
func (h *stubHandle) Chunks() []domain.Chunk     { return h.chunks }
func (h *stubHandle) Close() error {
	h.closed++
	return nil
}

type stubAnswerService struct {
	answer  *domain.Answer
	summary string
	err     error

	lastQuestion string
	lastMaxWords int
}

func (s *stubAnswerService) Index(_ context.Context, doc *domain.Document) (driving.DocumentHandle, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &stubHandle{doc: doc}, nil
}

func (s *stubAnswerService) Answer(_ context.Context, _ driving.DocumentHandle, question string) (*domain.Answer, error) {
	s.lastQuestion = question
	return s.answer, s.err
}

func (s *stubAnswerService) AnswerText(_ context.Context, _, question string) (*domain.Answer, error) {
	s.lastQuestion = question
	return s.answer, s.err
}

func (s *stubAnswerService) Retrieve(_ context.Context, _ driving.DocumentHandle, question string) (domain.RetrievalResult, error) {
	s.lastQuestion = question
	if s.answer == nil {
		return domain.RetrievalResult{}, s.err
	}
	return s.answer.Retrieval, s.err
}

func (s *stubAnswerService) Summarise(_ context.Context, _ driving.DocumentHandle, maxWords int) (string, error) {
	s.lastMaxWords = maxWords
	return s.summary, s.err
}

type stubDocSource struct {
	doc *domain.Document
	err error
}

func (s *stubDocSource) Name() string { return "stub" }

func (s *stubDocSource) CanLoad(string) bool { return true }

func (s *stubDocSource) Load(_ context.Context, _ string) (*domain.Document, error) {
	return s.doc, s.err
}
