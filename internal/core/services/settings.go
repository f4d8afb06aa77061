package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyChunkSize        = "pipeline.chunk_size"
	keyOverlap          = "pipeline.overlap"
	keyTopK             = "pipeline.top_k"
	keyMaxContextChars  = "pipeline.max_context_chars"
	keyEmbedConcurrency = "pipeline.embed_concurrency"
	keyEmbedRPS         = "pipeline.embed_rps"
	keyCache            = "pipeline.cache"
	keyEmbedProvider    = "embedding.provider"
	keyEmbedModel       = "embedding.model"
	keyEmbedBaseURL     = "embedding.base_url"
	keyEmbedAPIKey      = "embedding.api_key"
	keyLLMProvider      = "llm.provider"
	keyLLMModel         = "llm.model"
	keyLLMBaseURL       = "llm.base_url"
	keyLLMAPIKey        = "llm.api_key"
	keyLLMTimeout       = "llm.timeout_seconds"
	keyGitHubToken      = "github.token"
)

// secretKeys are masked by GetValue and prompted for without echo.
var secretKeys = map[string]bool{
	keyEmbedAPIKey: true,
	keyLLMAPIKey:   true,
	keyGitHubToken: true,
}

// SettingsService manages application settings backed by a ConfigStore.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service. aiValidator may
// be nil; provider validation is then skipped.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Pipeline: domain.PipelineSettings{
			ChunkSize:        s.getInt(keyChunkSize, defaults.Pipeline.ChunkSize),
			Overlap:          s.getIntAllowZero(keyOverlap, defaults.Pipeline.Overlap),
			TopK:             s.getInt(keyTopK, defaults.Pipeline.TopK),
			MaxContextChars:  s.getInt(keyMaxContextChars, defaults.Pipeline.MaxContextChars),
			EmbedConcurrency: s.getInt(keyEmbedConcurrency, defaults.Pipeline.EmbedConcurrency),
			EmbedRPS:         s.getFloat(keyEmbedRPS, defaults.Pipeline.EmbedRPS),
			Cache:            s.getBool(keyCache, defaults.Pipeline.Cache),
		},
		Embedding: domain.EmbeddingSettings{
			Provider: s.getProvider(keyEmbedProvider, defaults.Embedding.Provider),
			Model:    s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:  s.configStore.GetString(keyEmbedBaseURL), // No default - adapters fill their own
			APIKey:   s.configStore.GetString(keyEmbedAPIKey),
		},
		LLM: domain.LLMSettings{
			Provider:       s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:          s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:        s.configStore.GetString(keyLLMBaseURL),
			APIKey:         s.configStore.GetString(keyLLMAPIKey),
			TimeoutSeconds: s.getInt(keyLLMTimeout, defaults.LLM.TimeoutSeconds),
		},
		GitHubToken: s.configStore.GetString(keyGitHubToken),
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := map[string]any{
		keyChunkSize:        settings.Pipeline.ChunkSize,
		keyOverlap:          settings.Pipeline.Overlap,
		keyTopK:             settings.Pipeline.TopK,
		keyMaxContextChars:  settings.Pipeline.MaxContextChars,
		keyEmbedConcurrency: settings.Pipeline.EmbedConcurrency,
		keyEmbedRPS:         settings.Pipeline.EmbedRPS,
		keyCache:            settings.Pipeline.Cache,
		keyEmbedProvider:    settings.Embedding.Provider.String(),
		keyEmbedModel:       settings.Embedding.Model,
		keyEmbedBaseURL:     settings.Embedding.BaseURL,
		keyLLMProvider:      settings.LLM.Provider.String(),
		keyLLMModel:         settings.LLM.Model,
		keyLLMBaseURL:       settings.LLM.BaseURL,
		keyLLMTimeout:       settings.LLM.TimeoutSeconds,
	}
	// Never blank out stored secrets with empty values.
	if settings.Embedding.APIKey != "" {
		values[keyEmbedAPIKey] = settings.Embedding.APIKey
	}
	if settings.LLM.APIKey != "" {
		values[keyLLMAPIKey] = settings.LLM.APIKey
	}
	if settings.GitHubToken != "" {
		values[keyGitHubToken] = settings.GitHubToken
	}

	for key, value := range values {
		if err := s.configStore.Set(key, value); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return nil
}

// Set parses and stores a single setting by key. The full resulting
// settings are validated before persisting, so an out-of-range value
// or an overlap/chunk_size conflict is rejected atomically.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if err := applyKey(settings, key, value); err != nil {
		return err
	}
	return s.Save(settings)
}

// applyKey writes one parsed value into the settings struct.
func applyKey(settings *domain.AppSettings, key, value string) error {
	parseInt := func() (int, error) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("%w: %s expects an integer, got %q", domain.ErrInvalidConfig, key, value)
		}
		return n, nil
	}

	var err error
	switch key {
	case keyChunkSize:
		settings.Pipeline.ChunkSize, err = parseInt()
	case keyOverlap:
		settings.Pipeline.Overlap, err = parseInt()
	case keyTopK:
		settings.Pipeline.TopK, err = parseInt()
	case keyMaxContextChars:
		settings.Pipeline.MaxContextChars, err = parseInt()
	case keyEmbedConcurrency:
		settings.Pipeline.EmbedConcurrency, err = parseInt()
	case keyEmbedRPS:
		settings.Pipeline.EmbedRPS, err = strconv.ParseFloat(value, 64)
		if err != nil {
			err = fmt.Errorf("%w: %s expects a number, got %q", domain.ErrInvalidConfig, key, value)
		}
	case keyCache:
		settings.Pipeline.Cache, err = strconv.ParseBool(value)
		if err != nil {
			err = fmt.Errorf("%w: %s expects true or false, got %q", domain.ErrInvalidConfig, key, value)
		}
	case keyEmbedProvider:
		settings.Embedding.Provider = domain.AIProvider(strings.ToLower(value))
	case keyEmbedModel:
		settings.Embedding.Model = value
	case keyEmbedBaseURL:
		settings.Embedding.BaseURL = value
	case keyEmbedAPIKey:
		settings.Embedding.APIKey = value
	case keyLLMProvider:
		settings.LLM.Provider = domain.AIProvider(strings.ToLower(value))
	case keyLLMModel:
		settings.LLM.Model = value
	case keyLLMBaseURL:
		settings.LLM.BaseURL = value
	case keyLLMAPIKey:
		settings.LLM.APIKey = value
	case keyLLMTimeout:
		settings.LLM.TimeoutSeconds, err = parseInt()
	case keyGitHubToken:
		settings.GitHubToken = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrNotFound, key)
	}
	return err
}

// GetValue returns the display form of a single setting.
func (s *SettingsService) GetValue(key string) (string, bool) {
	settings, err := s.Get()
	if err != nil {
		return "", false
	}

	values := map[string]string{
		keyChunkSize:        strconv.Itoa(settings.Pipeline.ChunkSize),
		keyOverlap:          strconv.Itoa(settings.Pipeline.Overlap),
		keyTopK:             strconv.Itoa(settings.Pipeline.TopK),
		keyMaxContextChars:  strconv.Itoa(settings.Pipeline.MaxContextChars),
		keyEmbedConcurrency: strconv.Itoa(settings.Pipeline.EmbedConcurrency),
		keyEmbedRPS:         strconv.FormatFloat(settings.Pipeline.EmbedRPS, 'g', -1, 64),
		keyCache:            strconv.FormatBool(settings.Pipeline.Cache),
		keyEmbedProvider:    settings.Embedding.Provider.String(),
		keyEmbedModel:       settings.Embedding.Model,
		keyEmbedBaseURL:     settings.Embedding.BaseURL,
		keyEmbedAPIKey:      MaskSecret(settings.Embedding.APIKey),
		keyLLMProvider:      settings.LLM.Provider.String(),
		keyLLMModel:         settings.LLM.Model,
		keyLLMBaseURL:       settings.LLM.BaseURL,
		keyLLMAPIKey:        MaskSecret(settings.LLM.APIKey),
		keyLLMTimeout:       strconv.Itoa(settings.LLM.TimeoutSeconds),
		keyGitHubToken:      MaskSecret(settings.GitHubToken),
	}

	value, ok := values[key]
	return value, ok
}

// Keys returns all recognised setting keys, sorted.
func (s *SettingsService) Keys() []string {
	keys := []string{
		keyChunkSize, keyOverlap, keyTopK, keyMaxContextChars,
		keyEmbedConcurrency, keyEmbedRPS, keyCache,
		keyEmbedProvider, keyEmbedModel, keyEmbedBaseURL, keyEmbedAPIKey,
		keyLLMProvider, keyLLMModel, keyLLMBaseURL, keyLLMAPIKey, keyLLMTimeout,
		keyGitHubToken,
	}
	sort.Strings(keys)
	return keys
}

// IsSecretKey reports whether a setting should be read without echo
// and displayed masked.
func IsSecretKey(key string) bool {
	return secretKeys[key]
}

// MaskSecret renders a secret for display, keeping just enough of the
// tail to tell keys apart.
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Validate checks if current settings describe a runnable pipeline.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// ValidateEmbeddingConfig validates the current embedding configuration
// by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// ValidateLLMConfig validates the current LLM configuration by pinging
// the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// getString returns the stored string or the default when unset.
func (s *SettingsService) getString(key, defaultValue string) string {
	if value := s.configStore.GetString(key); value != "" {
		return value
	}
	return defaultValue
}

// getInt returns the stored int or the default when unset/zero.
func (s *SettingsService) getInt(key string, defaultValue int) int {
	if value := s.configStore.GetInt(key); value != 0 {
		return value
	}
	return defaultValue
}

// getIntAllowZero distinguishes "unset" from a stored zero, which is a
// valid value for overlap.
func (s *SettingsService) getIntAllowZero(key string, defaultValue int) int {
	if _, ok := s.configStore.Get(key); ok {
		return s.configStore.GetInt(key)
	}
	return defaultValue
}

// getFloat returns the stored float or the default when unset.
func (s *SettingsService) getFloat(key string, defaultValue float64) float64 {
	if _, ok := s.configStore.Get(key); ok {
		return s.configStore.GetFloat(key)
	}
	return defaultValue
}

// getBool returns the stored bool or the default when unset.
func (s *SettingsService) getBool(key string, defaultValue bool) bool {
	if _, ok := s.configStore.Get(key); ok {
		return s.configStore.GetBool(key)
	}
	return defaultValue
}

// getProvider returns the stored provider or the default when unset.
func (s *SettingsService) getProvider(key string, defaultValue domain.AIProvider) domain.AIProvider {
	value := s.configStore.GetString(key)
	if value == "" {
		return defaultValue
	}
	return domain.AIProvider(value)
}
