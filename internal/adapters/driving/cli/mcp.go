package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ingest-cli/internal/adapters/driving/mcp"
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

The server exposes the tools list_connectors, upload_csv and upload_history.
By default it communicates over stdio using JSON-RPC.

Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  ingest mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  ingest mcp serve --port 8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	// stdout carries the protocol; notices would corrupt it.
	if noticeRouter != nil {
		noticeRouter.SetSink(nil)
	}

	ports := &mcp.Ports{
		Directory: directoryService,
		Upload:    uploadService,
		History:   historyService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
