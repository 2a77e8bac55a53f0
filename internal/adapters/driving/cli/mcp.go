package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/catalogue-cli/internal/adapters/driving/mcp"
	"github.com/custodia-labs/catalogue-cli/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start a Model Context Protocol server exposing one browsing session.

Tools:
  catalogue_snapshot       current page, filter, status and items
  catalogue_next_page      load the next page
  catalogue_query          filter the loaded items by name
  catalogue_toggle_search  turn search mode on or off
  catalogue_retry          retry after an error

By default the server communicates over stdio. Use --port to serve HTTP.

Examples:
  catalogue mcp serve
  catalogue mcp serve --port 8080`,
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
	if openBrowser == nil {
		return errors.New("catalogue provider not configured")
	}

	browser, release, err := openBrowser(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to open catalogue: %w", err)
	}
	defer func() {
		if err := release(); err != nil {
			logger.Warn("closing catalogue: %v", err)
		}
	}()

	server, err := mcp.NewServer(&mcp.Ports{
		Browser:  browser,
		Settings: settingsService,
	})
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
