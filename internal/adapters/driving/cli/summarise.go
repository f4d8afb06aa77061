package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	summariseWords int
	summariseOut   string
)

var summariseCmd = &cobra.Command{
	Use:     "summarise [source]",
	Aliases: []string{"summarize"},
	Short:   "Summarise a document",
	Long: `Index a document and produce a summary grounded in its most
representative sections. The word budget is a soft limit passed to the
model, not a hard cut.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarise,
}

func init() {
	summariseCmd.Flags().IntVarP(&summariseWords, "words", "w", 200, "soft word budget for the summary")
	summariseCmd.Flags().StringVarP(&summariseOut, "out", "o", "", "write the summary to a file instead of stdout")
	rootCmd.AddCommand(summariseCmd)
}

func runSummarise(cmd *cobra.Command, args []string) error {
	if err := initServices(nil); err != nil {
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

	summary, err := answerService.Summarise(ctx, handle, summariseWords)
	if err != nil {
		return err
	}

	if summariseOut != "" {
		if err := os.WriteFile(summariseOut, []byte(summary+"\n"), 0600); err != nil {
			return fmt.Errorf("writing %q: %w", summariseOut, err)
		}
		cmd.Printf("Summary written to %s\n", summariseOut)
		return nil
	}

	cmd.Println(summary)
	return nil
}
