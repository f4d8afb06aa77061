package driving

import "github.com/custodia-labs/askdoc-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, with defaults
	// filled in for anything not configured.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set parses and stores a single setting by its dotted key
	// (e.g. "pipeline.chunk_size"). The resulting settings are
	// validated as a whole before anything is persisted.
	Set(key, value string) error

	// GetValue returns the display form of a single setting. Secrets
	// come back masked.
	GetValue(key string) (string, bool)

	// Keys returns all recognised setting keys, sorted.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Validate checks if current settings describe a runnable pipeline.
	Validate() error

	// ValidateEmbeddingConfig validates the current embedding
	// configuration by pinging the provider.
	ValidateEmbeddingConfig() error

	// ValidateLLMConfig validates the current LLM configuration by
	// pinging the provider.
	ValidateLLMConfig() error
}
