package domain

import "fmt"

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or generation.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds generation provider configuration.
type LLMSettings struct {
	// Provider is the generation service provider.
	Provider AIProvider

	// Model is the generation model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string

	// TimeoutSeconds bounds a single generation call.
	TimeoutSeconds int
}

// IsConfigured returns true if the generation provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// Default pipeline parameters. Chunk sizes follow the sizing that works
// well for prose: ~600 runes with ~100 rune overlap keeps paragraph
// context intact without blowing up the number of embedding calls.
const (
	DefaultChunkSize        = 600
	DefaultOverlap          = 100
	DefaultTopK             = 4
	DefaultMaxContextChars  = 2400
	DefaultEmbedConcurrency = 4
	DefaultLLMTimeoutSecs   = 120
)

// PipelineSettings holds the tunable parameters of the question
// answering pipeline.
type PipelineSettings struct {
	// ChunkSize is the chunk span length in runes. Must be > 0.
	ChunkSize int

	// Overlap is the rune overlap between consecutive chunks.
	// Must satisfy 0 <= Overlap < ChunkSize.
	Overlap int

	// TopK is how many chunks to retrieve per question. Must be >= 1.
	// It is a ceiling: a smaller index yields fewer chunks.
	TopK int

	// MaxContextChars budgets the total runes of chunk text included
	// in a prompt. Must be >= 1.
	MaxContextChars int

	// EmbedConcurrency bounds how many chunks are embedded at once
	// during an index build. Must be >= 1.
	EmbedConcurrency int

	// EmbedRPS throttles embedding calls per second. 0 disables
	// throttling.
	EmbedRPS float64

	// Cache enables the content-addressed embedding cache.
	Cache bool
}

// Validate checks the parameter ranges and combinations. All violations
// wrap ErrInvalidConfig.
func (p PipelineSettings) Validate() error {
	if p.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk_size must be positive, got %d", ErrInvalidConfig, p.ChunkSize)
	}
	if p.Overlap < 0 {
		return fmt.Errorf("%w: overlap must not be negative, got %d", ErrInvalidConfig, p.Overlap)
	}
	if p.Overlap >= p.ChunkSize {
		return fmt.Errorf("%w: overlap %d must be smaller than chunk_size %d", ErrInvalidConfig, p.Overlap, p.ChunkSize)
	}
	if p.TopK < 1 {
		return fmt.Errorf("%w: top_k must be at least 1, got %d", ErrInvalidConfig, p.TopK)
	}
	if p.MaxContextChars < 1 {
		return fmt.Errorf("%w: max_context_chars must be at least 1, got %d", ErrInvalidConfig, p.MaxContextChars)
	}
	if p.EmbedConcurrency < 1 {
		return fmt.Errorf("%w: embed_concurrency must be at least 1, got %d", ErrInvalidConfig, p.EmbedConcurrency)
	}
	if p.EmbedRPS < 0 {
		return fmt.Errorf("%w: embed_rps must not be negative, got %g", ErrInvalidConfig, p.EmbedRPS)
	}
	return nil
}

// DefaultPipelineSettings returns pipeline parameters with defaults.
func DefaultPipelineSettings() PipelineSettings {
	return PipelineSettings{
		ChunkSize:        DefaultChunkSize,
		Overlap:          DefaultOverlap,
		TopK:             DefaultTopK,
		MaxContextChars:  DefaultMaxContextChars,
		EmbedConcurrency: DefaultEmbedConcurrency,
		EmbedRPS:         0,
		Cache:            true,
	}
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Pipeline holds question answering pipeline parameters.
	Pipeline PipelineSettings

	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// LLM holds generation provider settings.
	LLM LLMSettings

	// GitHubToken authenticates github:// sources. Optional; public
	// repositories work without it.
	GitHubToken string
}

// Validate checks that the settings describe a runnable pipeline.
func (s AppSettings) Validate() error {
	if err := s.Pipeline.Validate(); err != nil {
		return err
	}
	if !s.Embedding.Provider.IsValid() {
		return fmt.Errorf("%w: unknown embedding provider %q", ErrInvalidConfig, s.Embedding.Provider)
	}
	if !s.LLM.Provider.IsValid() {
		return fmt.Errorf("%w: unknown llm provider %q", ErrInvalidConfig, s.LLM.Provider)
	}
	if s.LLM.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: llm timeout must be positive, got %d", ErrInvalidConfig, s.LLM.TimeoutSeconds)
	}
	return nil
}

// DefaultAppSettings returns settings with sensible defaults.
// Both AI providers default to a local Ollama instance, so a stock
// install answers questions without any cloud credentials.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Pipeline: DefaultPipelineSettings(),
		Embedding: EmbeddingSettings{
			Provider: AIProviderOllama,
			Model:    "nomic-embed-text",
		},
		LLM: LLMSettings{
			Provider:       AIProviderOllama,
			Model:          "llama3",
			TimeoutSeconds: DefaultLLMTimeoutSecs,
		},
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// AllLLMProviders returns providers that support generation.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "nomic-embed-text",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// DefaultLLMModels returns default models for each generation provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}
