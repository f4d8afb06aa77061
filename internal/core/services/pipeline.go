package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driving"
	"github.com/custodia-labs/askdoc-cli/internal/logger"
)

// Ensure PipelineService implements the interface.
var _ driving.AnswerService = (*PipelineService)(nil)

// minDocumentChars is the normalised length below which extraction has
// probably failed. Short documents still index; they just get a warning.
const minDocumentChars = 100

// IndexFactory creates an empty vector index for the given
// dimensionality. Injected so the service stays free of adapter imports.
type IndexFactory func(dims int) (driven.VectorIndex, error)

// PipelineService runs the retrieval-augmented answering pipeline:
// normalise and chunk the document, embed the chunks, index the
// vectors, then per question retrieve, compose, and generate.
type PipelineService struct {
	settings  domain.AppSettings
	procs     driven.PostProcessorPipeline
	embedder  driven.Embedder
	generator driven.Generator
	newIndex  IndexFactory
	retriever *Retriever
	composer  *Composer
	embed     *cachedEmbedder
	limiter   *rate.Limiter
}

// NewPipelineService creates the answering pipeline. Settings are
// validated once here; an invalid configuration never produces a
// partially working service. cache and promptStore may be nil.
func NewPipelineService(
	settings domain.AppSettings,
	procs driven.PostProcessorPipeline,
	embedder driven.Embedder,
	generator driven.Generator,
	cache driven.EmbeddingCache,
	promptStore driven.PromptStore,
	newIndex IndexFactory,
) (*PipelineService, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if procs == nil {
		return nil, fmt.Errorf("%w: postprocessor pipeline is required", domain.ErrInvalidConfig)
	}
	if newIndex == nil {
		return nil, fmt.Errorf("%w: index factory is required", domain.ErrInvalidConfig)
	}

	if !settings.Pipeline.Cache {
		cache = nil
	}

	ce := &cachedEmbedder{
		embedder: embedder,
		cache:    cache,
		provider: settings.Embedding.Provider.String(),
	}

	s := &PipelineService{
		settings:  settings,
		procs:     procs,
		embedder:  embedder,
		generator: generator,
		newIndex:  newIndex,
		retriever: NewRetriever(ce),
		composer:  NewComposer(promptStore),
		embed:     ce,
	}

	if settings.Pipeline.EmbedRPS > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(settings.Pipeline.EmbedRPS), 1)
	}

	return s, nil
}

// Index chunks and embeds the document and builds a fresh vector
// index. The build is all-or-nothing: the first embedding failure
// cancels the remaining work and no handle is returned.
func (s *PipelineService) Index(ctx context.Context, doc *domain.Document) (driving.DocumentHandle, error) {
	if s.embedder == nil {
		return nil, fmt.Errorf("%w: indexing needs an embedding provider", domain.ErrEmbeddingUnavailable)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document is nil", domain.ErrInvalidInput)
	}

	logger.Section("Index Build")
	logger.Debug("Document %s (%s): %d raw chars", doc.ID, doc.Source, len([]rune(doc.Content)))

	chunks, err := s.procs.Process(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("chunk document: %w", err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: document %q has no content after normalisation", domain.ErrInvalidInput, doc.Source)
	}
	if doc.Chars() < minDocumentChars {
		logger.Warn("Document %q is only %d chars; extraction may have failed", doc.Source, doc.Chars())
	}

	logger.Debug("Chunked into %d chunks (size %d, overlap %d)",
		len(chunks), s.settings.Pipeline.ChunkSize, s.settings.Pipeline.Overlap)

	vectors, err := s.embedChunks(ctx, chunks)
	if err != nil {
		return nil, err
	}

	index, err := s.newIndex(s.embedder.Dimensions())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	// Vectors land in the index in ordinal order regardless of the
	// order the embedding calls completed in.
	for i, vector := range vectors {
		if err := index.Add(ctx, chunks[i].Ordinal, vector); err != nil {
			index.Close()
			return nil, fmt.Errorf("index chunk %d: %w", chunks[i].Ordinal, err)
		}
	}

	logger.Info("Indexed %d chunks with %s (%d dims)", index.Len(), s.embedder.ModelName(), index.Dimensions())

	return &DocumentIndex{
		doc:      doc,
		chunks:   chunks,
		vector:   index,
		model:    s.embedder.ModelName(),
		provider: s.settings.Embedding.Provider.String(),
		builtAt:  time.Now(),
	}, nil
}

// embedChunks embeds every chunk, bounded by the configured
// concurrency and optional rate limit. Results are written into slots
// by position so assembly order is deterministic. The first failure
// cancels the rest and is returned with the failing ordinal.
func (s *PipelineService) embedChunks(ctx context.Context, chunks []domain.Chunk) ([][]float32, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	vectors := make([][]float32, len(chunks))
	sem := make(chan struct{}, s.settings.Pipeline.EmbedConcurrency)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	for i := range chunks {
		wg.Add(1)
		go func(i int, chunk domain.Chunk) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			if s.limiter != nil {
				if err := s.limiter.Wait(ctx); err != nil {
					// Wait fails on cancellation, but also when the
					// deadline cannot accommodate the next token.
					// Either way the build must report it rather
					// than leave a hole in the vector slots.
					fail(fmt.Errorf("%w: rate limit chunk %d: %v", domain.ErrEmbedding, chunk.Ordinal, err))
					return
				}
			}

			vector, err := s.embed.embed(ctx, chunk.Text)
			if err != nil {
				fail(fmt.Errorf("embed chunk %d: %w", chunk.Ordinal, err))
				return
			}
			vectors[i] = vector
		}(i, chunks[i])
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: build cancelled: %v", domain.ErrEmbedding, err)
	}
	return vectors, nil
}

// Answer retrieves evidence for the question, composes the grounded
// prompt, and generates the answer.
func (s *PipelineService) Answer(ctx context.Context, handle driving.DocumentHandle, question string) (*domain.Answer, error) {
	if s.generator == nil {
		return nil, fmt.Errorf("%w: answering needs a generation provider", domain.ErrLLMUnavailable)
	}
	idx, err := asDocumentIndex(handle)
	if err != nil {
		return nil, err
	}

	logger.Section("Answer")
	started := time.Now()

	retrieval, err := s.retriever.Retrieve(ctx, idx, question, s.settings.Pipeline.TopK)
	if err != nil {
		return nil, err
	}

	prompt, err := s.composer.Compose(retrieval.Query, retrieval, s.settings.Pipeline.MaxContextChars)
	if err != nil {
		return nil, err
	}

	genCtx, cancel := context.WithTimeout(ctx, time.Duration(s.settings.LLM.TimeoutSeconds)*time.Second)
	defer cancel()

	text, err := s.generator.Generate(genCtx, prompt.Text, driven.GenerateOptions{})
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	answer := &domain.Answer{
		Text:      strings.TrimSpace(text),
		Retrieval: retrieval,
		Prompt:    prompt,
		Stats: domain.AnswerStats{
			DocumentChars:   idx.doc.Chars(),
			RawChars:        idx.doc.RawChars,
			ChunkCount:      len(idx.chunks),
			ChunksUsed:      len(prompt.Ordinals),
			EmbeddingModel:  idx.model,
			GenerationModel: s.generator.ModelName(),
			ElapsedMS:       time.Since(started).Milliseconds(),
		},
	}

	logger.Info("Answered in %dms using %d/%d chunks", answer.Stats.ElapsedMS, answer.Stats.ChunksUsed, answer.Stats.ChunkCount)
	return answer, nil
}

// AnswerText is the one-shot entry point: wrap the text in a document,
// index it, answer the question, and discard the index.
func (s *PipelineService) AnswerText(ctx context.Context, documentText, question string) (*domain.Answer, error) {
	doc := &domain.Document{
		ID:       uuid.NewString(),
		Source:   "inline",
		Title:    "inline text",
		Content:  documentText,
		LoadedAt: time.Now(),
	}

	handle, err := s.Index(ctx, doc)
	if err != nil {
		return nil, err
	}
	defer handle.Close()

	return s.Answer(ctx, handle, question)
}

// Retrieve returns the ranked evidence without generating.
func (s *PipelineService) Retrieve(ctx context.Context, handle driving.DocumentHandle, question string) (domain.RetrievalResult, error) {
	idx, err := asDocumentIndex(handle)
	if err != nil {
		return domain.RetrievalResult{}, err
	}
	return s.retriever.Retrieve(ctx, idx, question, s.settings.Pipeline.TopK)
}

// Summarise produces a summary of the document from its leading
// chunks, bounded by the same context budget as answering.
func (s *PipelineService) Summarise(ctx context.Context, handle driving.DocumentHandle, maxWords int) (string, error) {
	if s.generator == nil {
		return "", fmt.Errorf("%w: summarising needs a generation provider", domain.ErrLLMUnavailable)
	}
	idx, err := asDocumentIndex(handle)
	if err != nil {
		return "", err
	}
	if maxWords < 1 {
		return "", fmt.Errorf("%w: max words must be at least 1, got %d", domain.ErrInvalidConfig, maxWords)
	}

	logger.Section("Summarise")

	// Leading chunks carry the title, abstract, and introduction in
	// most documents; take them whole until the budget runs out.
	var b strings.Builder
	included := 0
	for _, chunk := range idx.chunks {
		if included+chunk.Len() > s.settings.Pipeline.MaxContextChars {
			break
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(chunk.Text)
		included += chunk.Len()
	}
	if b.Len() == 0 && len(idx.chunks) > 0 {
		b.WriteString(string([]rune(idx.chunks[0].Text)[:s.settings.Pipeline.MaxContextChars]))
	}

	genCtx, cancel := context.WithTimeout(ctx, time.Duration(s.settings.LLM.TimeoutSeconds)*time.Second)
	defer cancel()

	summary, err := s.generator.Summarise(genCtx, b.String(), maxWords)
	if err != nil {
		return "", fmt.Errorf("summarise document: %w", err)
	}
	return strings.TrimSpace(summary), nil
}
