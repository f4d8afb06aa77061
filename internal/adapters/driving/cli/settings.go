package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/askdoc-cli/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the pipeline, embedding provider, and LLM
provider. Settings live in ~/.askdoc/config.toml; anything not set
there falls back to a built-in default.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show a single setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a setting",
	Long: `Set a setting by its dotted key, e.g.:

  askdoc settings set pipeline.chunk_size 800
  askdoc settings set llm.provider anthropic
  askdoc settings set llm.api_key

Secret keys (API keys, tokens) may omit the value; you will be
prompted for it without echo.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List all recognised setting keys",
	RunE:  runSettingsKeys,
}

var settingsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the current configuration",
	Long: `Check that the current settings describe a runnable pipeline and
ping the configured embedding and LLM providers.`,
	RunE: runSettingsValidate,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsValidateCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if err := initSettings(); err != nil {
		return err
	}
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Pipeline]")
	cmd.Printf("  Chunk size: %d chars\n", settings.Pipeline.ChunkSize)
	cmd.Printf("  Overlap: %d chars\n", settings.Pipeline.Overlap)
	cmd.Printf("  Top K: %d\n", settings.Pipeline.TopK)
	cmd.Printf("  Max context: %d chars\n", settings.Pipeline.MaxContextChars)
	cmd.Printf("  Embed concurrency: %d\n", settings.Pipeline.EmbedConcurrency)
	if settings.Pipeline.EmbedRPS > 0 {
		cmd.Printf("  Embed rate limit: %.1f req/s\n", settings.Pipeline.EmbedRPS)
	}
	cmd.Printf("  Embedding cache: %s\n", onOff(settings.Pipeline.Cache))
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", settings.Embedding.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.Embedding.Model)
	if settings.Embedding.Provider.IsLocal() && settings.Embedding.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.Embedding.BaseURL)
	}
	if settings.Embedding.Provider.RequiresAPIKey() {
		cmd.Printf("  API Key: %s\n", keyStatus(settings.Embedding.APIKey))
	}
	cmd.Printf("  Status: %s\n", configuredStatus(settings.Embedding.IsConfigured()))
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	if settings.LLM.Provider.IsLocal() && settings.LLM.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	if settings.LLM.Provider.RequiresAPIKey() {
		cmd.Printf("  API Key: %s\n", keyStatus(settings.LLM.APIKey))
	}
	if settings.LLM.TimeoutSeconds > 0 {
		cmd.Printf("  Timeout: %ds\n", settings.LLM.TimeoutSeconds)
	}
	cmd.Printf("  Status: %s\n", configuredStatus(settings.LLM.IsConfigured()))
	cmd.Println()

	if settings.GitHubToken != "" {
		cmd.Println("[GitHub]")
		cmd.Printf("  Token: %s\n", services.MaskSecret(settings.GitHubToken))
		cmd.Println()
	}

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if err := initSettings(); err != nil {
		return err
	}

	key := args[0]
	value, ok := settingsService.GetValue(key)
	if !ok {
		return fmt.Errorf("unknown setting %q (see 'askdoc settings keys')", key)
	}

	cmd.Printf("%s = %s\n", key, value)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if err := initSettings(); err != nil {
		return err
	}

	key := args[0]

	var value string
	switch {
	case len(args) == 2:
		value = args[1]
	case services.IsSecretKey(key):
		cmd.Printf("Enter value for %s: ", key)
		value = readPassword()
		cmd.Println()
		if value == "" {
			return errors.New("empty value")
		}
	default:
		return fmt.Errorf("no value given for %q", key)
	}

	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}

	display, _ := settingsService.GetValue(key)
	cmd.Printf("%s = %s\n", key, display)
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if err := initSettings(); err != nil {
		return err
	}

	for _, key := range settingsService.Keys() {
		if services.IsSecretKey(key) {
			cmd.Printf("%s (secret)\n", key)
		} else {
			cmd.Println(key)
		}
	}
	return nil
}

func runSettingsValidate(cmd *cobra.Command, _ []string) error {
	if err := initSettings(); err != nil {
		return err
	}

	if err := settingsService.Validate(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}
	cmd.Println("Configuration is valid.")

	cmd.Print("Checking embedding provider... ")
	if err := settingsService.ValidateEmbeddingConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return errors.New("embedding provider validation failed")
	}
	cmd.Println("OK")

	cmd.Print("Checking LLM provider... ")
	if err := settingsService.ValidateLLMConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return errors.New("LLM provider validation failed")
	}
	cmd.Println("OK")

	return nil
}

// Helper functions.

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func configuredStatus(configured bool) string {
	if configured {
		return "configured"
	}
	return "not configured"
}

func keyStatus(key string) string {
	if key == "" {
		return "(not set)"
	}
	return services.MaskSecret(key)
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
