package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/askdoc-cli/internal/postprocessors"
)

var (
	chunksJSON      bool
	chunksChunkSize int
	chunksOverlap   int
)

var chunksCmd = &cobra.Command{
	Use:   "chunks [source]",
	Short: "Show how a document would be chunked",
	Long: `Normalise and chunk a document without embedding it. Useful for
tuning chunk size and overlap before spending tokens on an index.`,
	Args: cobra.ExactArgs(1),
	RunE: runChunks,
}

func init() {
	chunksCmd.Flags().BoolVar(&chunksJSON, "json", false, "output the chunk map as JSON")
	chunksCmd.Flags().IntVar(&chunksChunkSize, "chunk-size", 0, "chunk size in characters (0 = configured value)")
	chunksCmd.Flags().IntVar(&chunksOverlap, "overlap", -1, "chunk overlap in characters (-1 = configured value)")
	rootCmd.AddCommand(chunksCmd)
}

func runChunks(cmd *cobra.Command, args []string) error {
	if err := initSettings(); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	chunkSize := settings.Pipeline.ChunkSize
	if chunksChunkSize > 0 {
		chunkSize = chunksChunkSize
	}
	overlap := settings.Pipeline.Overlap
	if chunksOverlap >= 0 {
		overlap = chunksOverlap
	}

	source := args[0]
	ctx := cmd.Context()

	registry := docRegistry
	if registry == nil {
		registry = newDocRegistry(settings)
	}

	doc, err := registry.Load(ctx, source)
	if err != nil {
		return fmt.Errorf("loading %q: %w", source, err)
	}

	procs := postprocessors.NewDefaultPipeline(chunkSize, overlap)
	chunks, err := procs.Process(ctx, doc)
	if err != nil {
		return fmt.Errorf("chunking %q: %w", source, err)
	}

	if chunksJSON {
		type chunkInfo struct {
			Ordinal int    `json:"ordinal"`
			Start   int    `json:"start"`
			End     int    `json:"end"`
			Chars   int    `json:"chars"`
			Text    string `json:"text"`
		}
		infos := make([]chunkInfo, len(chunks))
		for i, c := range chunks {
			infos[i] = chunkInfo{
				Ordinal: c.Ordinal,
				Start:   c.Start,
				End:     c.End,
				Chars:   len([]rune(c.Text)),
				Text:    c.Text,
			}
		}
		data, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal chunks: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("%s: %d chunks (size %d, overlap %d)\n", doc.Title, len(chunks), chunkSize, overlap)
	cmd.Println()
	for _, c := range chunks {
		preview := c.Text
		if len([]rune(preview)) > 60 {
			preview = string([]rune(preview)[:57]) + "..."
		}
		cmd.Printf("  [%d] chars %d-%d: %s\n", c.Ordinal, c.Start, c.End, preview)
	}

	return nil
}
