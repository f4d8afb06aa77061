// Package cli implements the command-line interface for Askdoc.
package cli

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/askdoc-cli/internal/adapters/driven/ai"
	memorycache "github.com/custodia-labs/askdoc-cli/internal/adapters/driven/cache/memory"
	sqlitecache "github.com/custodia-labs/askdoc-cli/internal/adapters/driven/cache/sqlite"
	configfile "github.com/custodia-labs/askdoc-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/askdoc-cli/internal/adapters/driven/docsource"
	docconvsource "github.com/custodia-labs/askdoc-cli/internal/adapters/driven/docsource/docconv"
	filesource "github.com/custodia-labs/askdoc-cli/internal/adapters/driven/docsource/file"
	githubsource "github.com/custodia-labs/askdoc-cli/internal/adapters/driven/docsource/github"
	"github.com/custodia-labs/askdoc-cli/internal/adapters/driven/vectorindex/bruteforce"
	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driving"
	"github.com/custodia-labs/askdoc-cli/internal/core/services"
	"github.com/custodia-labs/askdoc-cli/internal/logger"
	"github.com/custodia-labs/askdoc-cli/internal/postprocessors"
)

// version is set at build time via ldflags.
var version = "dev"

var verbose bool

// Services wired up by initServices. Commands check for nil so tests
// can inject their own implementations.
var (
	settingsService driving.SettingsService
	answerService   driving.AnswerService
	docRegistry     *docsource.Registry
	promptStore     driven.PromptStore
	closeServices   func()
)

var rootCmd = &cobra.Command{
	Use:   "askdoc",
	Short: "Ask questions about a document",
	Long: `Askdoc answers questions about a single document using
retrieval-augmented generation: the document is chunked and embedded,
the chunks most relevant to your question are retrieved, and a local
or cloud LLM generates an answer grounded in that evidence.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command.
func Execute() error {
	// Best-effort: API keys may live in a .env file during development.
	godotenv.Load() //nolint:errcheck

	defer closeAll()
	return rootCmd.Execute()
}

// initSettings wires the settings service if not already present.
func initSettings() error {
	if settingsService != nil {
		return nil
	}

	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	settingsService = services.NewSettingsService(configStore, ai.NewConfigValidator())
	return nil
}

// initServices wires the full answering pipeline from settings.
// mutate, if non-nil, adjusts the loaded settings before the pipeline
// is built; command flags apply their overrides through it.
func initServices(mutate func(*domain.AppSettings)) error {
	if answerService != nil {
		return nil
	}
	if err := initSettings(); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	if mutate != nil {
		mutate(settings)
	}

	embedder, err := ai.CreateAndValidateEmbedder(&settings.Embedding)
	if err != nil {
		return err
	}

	generator, err := ai.CreateAndValidateGenerator(&settings.LLM)
	if err != nil {
		if embedder != nil {
			embedder.Close()
		}
		return err
	}

	promptStore, err = configfile.NewPromptStore("")
	if err != nil {
		logger.Warn("Custom prompts unavailable: %v", err)
		promptStore = nil
	}
	if promptStore != nil && generator != nil {
		if aware, ok := generator.(driven.PromptStoreAware); ok {
			aware.SetPromptStore(promptStore)
		}
	}

	var cache driven.EmbeddingCache
	var db *sqlitecache.Cache
	if settings.Pipeline.Cache {
		db, err = sqlitecache.NewCache("")
		if err != nil {
			logger.Warn("Embedding cache not persistent (%v); using in-memory cache", err)
			db = nil
			cache = memorycache.NewCache()
		} else {
			cache = db
		}
	}

	procs := postprocessors.NewDefaultPipeline(settings.Pipeline.ChunkSize, settings.Pipeline.Overlap)

	pipeline, err := services.NewPipelineService(
		*settings, procs, embedder, generator, cache, promptStore,
		func(dims int) (driven.VectorIndex, error) { return bruteforce.New(dims) },
	)
	if err != nil {
		if embedder != nil {
			embedder.Close()
		}
		if generator != nil {
			generator.Close()
		}
		if db != nil {
			db.Close() //nolint:errcheck
		}
		return err
	}

	answerService = pipeline
	docRegistry = newDocRegistry(settings)
	closeServices = func() {
		if embedder != nil {
			embedder.Close()
		}
		if generator != nil {
			generator.Close()
		}
		if db != nil {
			db.Close() //nolint:errcheck
		}
	}

	return nil
}

// newDocRegistry builds the document source chain. Registration order
// matters: the first source whose CanLoad accepts wins, so the plain
// file loader goes last as the catch-all.
func newDocRegistry(settings *domain.AppSettings) *docsource.Registry {
	return docsource.NewRegistry(
		githubsource.NewSource(settings.GitHubToken),
		docconvsource.NewSource(),
		filesource.NewSource(),
	)
}

func closeAll() {
	if closeServices != nil {
		closeServices()
		closeServices = nil
	}
}
