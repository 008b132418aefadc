package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/metro-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can plan routes.

The server exposes the find_path tool and the metro://lines resources.
By default it communicates over stdio using JSON-RPC. Use --port to serve
over HTTP instead, for the MCP Inspector or remote access.

Examples:
  # Stdio mode (default)
  metro mcp serve

  # HTTP mode
  metro mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "metro": {
        "command": "/path/to/metro",
        "args": ["mcp", "serve"]
      }
    }
  }`,
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

	server, err := mcp.NewServer(&mcp.Ports{
		Path:    pathService,
		Station: stationService,
		Line:    lineService,
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(commandContext(cmd), addr)
	}

	return server.Run(commandContext(cmd))
}
