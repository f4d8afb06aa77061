// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/custodia-labs/askdoc-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/askdoc-cli/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/custodia-labs/askdoc-cli/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/custodia-labs/askdoc-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/askdoc-cli/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// InitResult contains the result of AI service initialisation.
type InitResult struct {
	Embedder    driven.Embedder
	Generator   driven.Generator
	PromptStore driven.PromptStore // User-customisable prompt templates.
	Warnings    []string           // Non-fatal issues surfaced during setup.
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.Embedder != nil {
		r.Embedder.Close()
	}
	if r.Generator != nil {
		r.Generator.Close()
	}
}

// CreateAndValidateEmbedder creates an embedder and validates connectivity.
// Returns the embedder if successful, or an error with guidance.
func CreateAndValidateEmbedder(settings *domain.EmbeddingSettings) (driven.Embedder, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	emb, err := CreateEmbedder(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'askdoc settings' to fix",
			domain.ErrEmbeddingUnavailable, err)
	}

	if emb == nil {
		return nil, nil
	}

	// Validate connectivity.
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := emb.Ping(ctx); err != nil {
		emb.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'askdoc settings' to fix",
			domain.ErrEmbeddingUnavailable, err)
	}

	return emb, nil
}

// CreateAndValidateGenerator creates a generator and validates connectivity.
// Returns the generator if successful, or an error with guidance.
func CreateAndValidateGenerator(settings *domain.LLMSettings) (driven.Generator, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	gen, err := CreateGenerator(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'askdoc settings' to fix",
			domain.ErrLLMUnavailable, err)
	}

	if gen == nil {
		return nil, nil
	}

	// Validate connectivity.
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := gen.Ping(ctx); err != nil {
		gen.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'askdoc settings' to fix",
			domain.ErrLLMUnavailable, err)
	}

	return gen, nil
}

// ValidateEmbeddingConfig validates an embedding configuration by creating an embedder and pinging it.
// This is intended for use in the settings command to validate credentials on configuration.
func ValidateEmbeddingConfig(settings *domain.EmbeddingSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	emb, err := CreateEmbedder(settings)
	if err != nil {
		return err
	}
	if emb == nil {
		return nil
	}
	defer emb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return emb.Ping(ctx)
}

// ValidateLLMConfig validates an LLM configuration by creating a generator and pinging it.
// This is intended for use in the settings command to validate credentials on configuration.
func ValidateLLMConfig(settings *domain.LLMSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	gen, err := CreateGenerator(settings)
	if err != nil {
		return err
	}
	if gen == nil {
		return nil
	}
	defer gen.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return gen.Ping(ctx)
}

// CreateEmbedder creates the appropriate embedder based on settings.
// Returns nil if the provider is not configured.
func CreateEmbedder(settings *domain.EmbeddingSettings) (driven.Embedder, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return createOllamaEmbedder(settings), nil

	case domain.AIProviderOpenAI:
		return createOpenAIEmbedder(settings)

	case domain.AIProviderAnthropic:
		// Anthropic does not support embeddings.
		return nil, fmt.Errorf("anthropic does not support embeddings, use ollama or openai")

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

// CreateGenerator creates the appropriate generator based on settings.
// Returns nil if the provider is not configured.
func CreateGenerator(settings *domain.LLMSettings) (driven.Generator, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return createOllamaGenerator(settings), nil

	case domain.AIProviderOpenAI:
		return createOpenAIGenerator(settings)

	case domain.AIProviderAnthropic:
		return createAnthropicGenerator(settings)

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}

// createOllamaEmbedder creates an Ollama embedder.
func createOllamaEmbedder(settings *domain.EmbeddingSettings) driven.Embedder {
	dimensions := domain.EmbeddingDimensions()[settings.Model]
	if dimensions == 0 {
		dimensions = ollamaembed.DefaultDimensions
	}

	return ollamaembed.NewEmbedder(ollamaembed.Config{
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: dimensions,
	})
}

// createOpenAIEmbedder creates an OpenAI embedder.
func createOpenAIEmbedder(settings *domain.EmbeddingSettings) (driven.Embedder, error) {
	dimensions := domain.EmbeddingDimensions()[settings.Model]

	return openaiembed.NewEmbedder(openaiembed.Config{
		APIKey:     settings.APIKey,
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: dimensions,
	})
}

// createOllamaGenerator creates an Ollama generator.
func createOllamaGenerator(settings *domain.LLMSettings) driven.Generator {
	return ollamallm.NewGenerator(ollamallm.Config{
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		Timeout: llmTimeout(settings),
	})
}

// createOpenAIGenerator creates an OpenAI generator.
func createOpenAIGenerator(settings *domain.LLMSettings) (driven.Generator, error) {
	return openaillm.NewGenerator(openaillm.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		Timeout: llmTimeout(settings),
	})
}

// createAnthropicGenerator creates an Anthropic generator.
func createAnthropicGenerator(settings *domain.LLMSettings) (driven.Generator, error) {
	return anthropicllm.NewGenerator(anthropicllm.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		Timeout: llmTimeout(settings),
	})
}

// llmTimeout converts the configured timeout to a duration, falling back
// to the adapter default when unset.
func llmTimeout(settings *domain.LLMSettings) time.Duration {
	if settings.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(settings.TimeoutSeconds) * time.Second
}
