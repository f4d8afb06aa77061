package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/askdoc-cli/internal/adapters/driving/mcp"
	"github.com/custodia-labs/askdoc-cli/internal/logger"
)

var (
	mcpPort  int
	mcpDoc   string
	mcpWatch bool
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --doc to load and index a document at startup; with --watch, local
files are re-indexed when they change on disk.

Examples:
  # Stdio mode with a document preloaded
  askdoc mcp serve --doc report.pdf

  # HTTP mode (for MCP Inspector, remote access)
  askdoc mcp serve --doc notes.md --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "askdoc": {
        "command": "/path/to/askdoc",
        "args": ["mcp", "serve", "--doc", "/path/to/document"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().StringVarP(&mcpDoc, "doc", "d", "", "document to load and index at startup")
	mcpServeCmd.Flags().BoolVar(&mcpWatch, "watch", false, "re-index local documents when they change on disk")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if err := initServices(nil); err != nil {
		return err
	}

	ports := &mcp.Ports{
		Answer: answerService,
		Loader: docRegistry,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	if mcpDoc != "" {
		doc, err := docRegistry.Load(ctx, mcpDoc)
		if err != nil {
			return fmt.Errorf("loading %q: %w", mcpDoc, err)
		}
		handle, err := answerService.Index(ctx, doc)
		if err != nil {
			return fmt.Errorf("indexing %q: %w", mcpDoc, err)
		}
		server.SetDocument(mcpDoc, handle)

		if mcpWatch && isLocalFile(mcpDoc) {
			go func() {
				if err := server.Watch(ctx, mcpDoc); err != nil {
					logger.Warn("File watch stopped: %v", err)
				}
			}()
		}
	}

	if mcpPort > 0 {
		addr := fmt.Sprintf(":%d", mcpPort)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}

// isLocalFile reports whether the source is a watchable file on disk.
func isLocalFile(source string) bool {
	if source == "-" || strings.Contains(source, "://") {
		return false
	}
	info, err := os.Stat(source)
	return err == nil && info.Mode().IsRegular()
}
