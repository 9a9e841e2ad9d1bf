package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/repolens/internal/config"
	"github.com/blackwell-systems/repolens/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP stdio server",
	Long: `Start a Model Context Protocol stdio server so an assistant can
analyze repositories on demand. The server exposes two tools:

  analyze_repo   Full health report for a repository URL
  list_rules     Framework and tool detection tables

Example MCP configuration:
  {"mcpServers":{"repolens":{"command":"repolens","args":["mcp"]}}}`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := openCache(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err, "(continuing without cache)")
	}
	defer closeCache(db)

	// stdout carries the protocol; diagnostics go to stderr only.
	client := newGitHubClient(cfg, db, newLogger(os.Stderr, false))
	srv := mcp.NewServer(client, appVersion)
	return srv.Run(cmd.Context(), os.Stdin, os.Stdout)
}
