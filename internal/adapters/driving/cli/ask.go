package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/askdoc-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driving"
)

var (
	askJSON            bool
	askShowContext     bool
	askTopK            int
	askChunkSize       int
	askOverlap         int
	askMaxContextChars int
	askNoCache         bool
)

var askCmd = &cobra.Command{
	Use:   "ask [source] [question]",
	Short: "Answer a question about a document",
	Long: `Index a document and answer a question about it.

The source can be a local file path, "-" for stdin, a binary document
(PDF, DOCX, ...), or a github://owner/repo/path[@ref] location.

With no question, an interactive session opens: the document is
indexed once and you can ask follow-up questions against the same
index.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	askCmd.Flags().BoolVar(&askShowContext, "show-context", false, "print the retrieved sections with the answer")
	askCmd.Flags().IntVar(&askTopK, "top-k", 0, "number of chunks to retrieve (0 = configured value)")
	askCmd.Flags().IntVar(&askChunkSize, "chunk-size", 0, "chunk size in characters (0 = configured value)")
	askCmd.Flags().IntVar(&askOverlap, "overlap", -1, "chunk overlap in characters (-1 = configured value)")
	askCmd.Flags().IntVar(&askMaxContextChars, "max-context-chars", 0, "prompt context budget in characters (0 = configured value)")
	askCmd.Flags().BoolVar(&askNoCache, "no-cache", false, "bypass the embedding cache")
	rootCmd.AddCommand(askCmd)
}

// applyAskOverrides folds the ask command's flags into the settings.
func applyAskOverrides(settings *domain.AppSettings) {
	if askTopK > 0 {
		settings.Pipeline.TopK = askTopK
	}
	if askChunkSize > 0 {
		settings.Pipeline.ChunkSize = askChunkSize
	}
	if askOverlap >= 0 {
		settings.Pipeline.Overlap = askOverlap
	}
	if askMaxContextChars > 0 {
		settings.Pipeline.MaxContextChars = askMaxContextChars
	}
	if askNoCache {
		settings.Pipeline.Cache = false
	}
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := initServices(applyAskOverrides); err != nil {
		return err
	}
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	source := args[0]
	ctx := cmd.Context()

	doc, err := docRegistry.Load(ctx, source)
	if err != nil {
		return fmt.Errorf("loading %q: %w", source, err)
	}

	handle, err := answerService.Index(ctx, doc)
	if err != nil {
		return fmt.Errorf("indexing %q: %w", source, err)
	}
	defer handle.Close() //nolint:errcheck

	if len(args) == 1 {
		return runAskInteractive(ctx, source, handle)
	}

	answer, err := answerService.Answer(ctx, handle, args[1])
	if err != nil {
		return err
	}

	if askJSON {
		return outputAnswerJSON(cmd, answer)
	}
	return outputAnswerText(cmd, answer)
}

// runAskInteractive opens the TUI session against an already-built
// index. Re-indexing reloads the source through the registry.
func runAskInteractive(ctx context.Context, source string, handle driving.DocumentHandle) error {
	session := tui.NewSession(answerService, handle, func(ctx context.Context) (driving.DocumentHandle, error) {
		doc, err := docRegistry.Load(ctx, source)
		if err != nil {
			return nil, err
		}
		return answerService.Index(ctx, doc)
	})
	session.WithContext(ctx)

	p := tea.NewProgram(session, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive session: %w", err)
	}
	return nil
}

// answerJSON is the wire shape of --json output.
type answerJSON struct {
	Answer   string        `json:"answer"`
	Sections []sectionJSON `json:"sections"`
	Stats    statsJSON     `json:"stats"`
}

type sectionJSON struct {
	Ordinal int     `json:"ordinal"`
	Start   int     `json:"start"`
	End     int     `json:"end"`
	Score   float64 `json:"score"`
	Text    string  `json:"text,omitempty"`
}

type statsJSON struct {
	DocumentChars   int    `json:"document_chars"`
	ChunkCount      int    `json:"chunk_count"`
	ChunksUsed      int    `json:"chunks_used"`
	Truncated       bool   `json:"truncated,omitempty"`
	EmbeddingModel  string `json:"embedding_model"`
	GenerationModel string `json:"generation_model"`
	ElapsedMS       int64  `json:"elapsed_ms"`
}

func outputAnswerJSON(cmd *cobra.Command, answer *domain.Answer) error {
	out := answerJSON{
		Answer:   answer.Text,
		Sections: make([]sectionJSON, 0, len(answer.Retrieval.Chunks)),
		Stats: statsJSON{
			DocumentChars:   answer.Stats.DocumentChars,
			ChunkCount:      answer.Stats.ChunkCount,
			ChunksUsed:      answer.Stats.ChunksUsed,
			Truncated:       answer.Prompt.Truncated,
			EmbeddingModel:  answer.Stats.EmbeddingModel,
			GenerationModel: answer.Stats.GenerationModel,
			ElapsedMS:       answer.Stats.ElapsedMS,
		},
	}
	for _, sc := range answer.Retrieval.Chunks {
		s := sectionJSON{
			Ordinal: sc.Chunk.Ordinal,
			Start:   sc.Chunk.Start,
			End:     sc.Chunk.End,
			Score:   sc.Score,
		}
		if askShowContext {
			s.Text = sc.Chunk.Text
		}
		out.Sections = append(out.Sections, s)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAnswerText(cmd *cobra.Command, answer *domain.Answer) error {
	cmd.Println(answer.Text)

	if askShowContext {
		cmd.Println()
		cmd.Println("Context:")
		for _, sc := range answer.Retrieval.Chunks {
			cmd.Printf("  [chunk %d, chars %d-%d] (%.3f)\n", sc.Chunk.Ordinal, sc.Chunk.Start, sc.Chunk.End, sc.Score)
			cmd.Printf("      %s\n", sc.Chunk.Text)
		}
		if answer.Prompt.Truncated {
			cmd.Println("  (context truncated to fit the prompt budget)")
		}
	}

	if verbose {
		cmd.Println()
		cmd.Printf("Used %d of %d chunks, %s -> %s, %dms\n",
			answer.Stats.ChunksUsed, answer.Stats.ChunkCount,
			answer.Stats.EmbeddingModel, answer.Stats.GenerationModel,
			answer.Stats.ElapsedMS)
	}

	return nil
}
