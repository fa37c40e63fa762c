package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/spsearch/internal/adapters/driving/mcp"
	"github.com/custodia-labs/spsearch/internal/logger"
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

The server exposes a "search" tool that queries the configured SharePoint
site for list items and documents, and a spsearch://settings resource
describing the active configuration.

By default the server communicates over stdio using JSON-RPC. Use --port to
serve streamable HTTP instead.

Examples:
  # Stdio mode (default)
  spsearch mcp serve

  # HTTP mode
  spsearch mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "spsearch": {
        "command": "/path/to/spsearch",
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
	if port < 0 || port > 65535 {
		return fmt.Errorf("invalid port %d", port)
	}
	if searchService == nil {
		return errors.New("search service not configured")
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Search:   searchService,
		Settings: settingsService,
	}, mcp.WithVersion(version), mcp.WithSiteOverride(siteURL))
	if err != nil {
		return err
	}

	if watchConfig != nil {
		stop, werr := watchConfig(cmd.Context(), func(reloadErr error) {
			if reloadErr != nil {
				logger.Warn("config reload failed: %v", reloadErr)
				return
			}
			logger.Info("configuration reloaded")
		})
		if werr != nil {
			logger.Warn("config watch unavailable: %v", werr)
		} else {
			defer stop()
		}
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
