package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/stencil-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve <page>",
	Short: "Serve a live stencil to AI assistants over MCP",
	Long: `Open a stencil, boot its session and expose it as Model Context
Protocol tools: resolve_address, refresh, content, import_nodes and click.

By default, the server communicates over stdio using JSON-RPC. Use --port
to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  stencil mcp serve report.html

  # HTTP mode (for MCP Inspector, remote access)
  stencil mcp serve report.html --port 8080

Client configuration:
  {
    "mcpServers": {
      "stencil": {
        "command": "/path/to/stencil",
        "args": ["mcp", "serve", "/path/to/report.html"]
      }
    }
  }`,
	Args: cobra.ExactArgs(1),
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	s, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}
	if err := s.Client.Start(cmd.Context()); err != nil {
		cmd.PrintErrf("Warning: %v\n", err)
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Client:   s.Client,
		Page:     s.Page,
		Registry: s.Registry,
		Clicks:   s.Delegator,
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		cmd.PrintErrf("MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
