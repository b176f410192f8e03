package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-integrations/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can list
provider items and check whether a user has connected a provider.

By default, the server communicates over stdio using JSON-RPC.
Use --port to serve the streamable HTTP transport instead.

Credentials are read from the configured credential store, so the MCP
server only sees connections made through "serve" when both use the
redis or sqlite store.

Examples:
  # Stdio mode
  sercha-integrations mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  sercha-integrations mcp serve --port 8080`,
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

	if err := initServices(cmd.Context()); err != nil {
		return err
	}

	ports := &mcp.Ports{
		Items:     itemService,
		OAuth:     oauthService,
		Providers: providerTypes,
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
