// Package app contains the Cobra command tree for repolens.
package app

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/repolens/internal/output"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "repolens",
	Short: "Health reports for JavaScript/TypeScript repositories",
	Long: `repolens inspects a GitHub repository (or a local checkout) and reports
its framework and tooling, how to run it locally, missing project hygiene
and a 0-100 health score, rendered as a Markdown document.

Run 'repolens analyze https://github.com/owner/repo' to get started.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagNoColor || !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			output.SetNoColor(true)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "repolens", appVersion)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Use a subcommand:")
		fmt.Fprintln(out, "  analyze   Analyze one or more repositories")
		fmt.Fprintln(out, "  serve     Run the HTTP API for the web frontend")
		fmt.Fprintln(out, "  watch     Re-analyze repositories and alert on changes")
		fmt.Fprintln(out, "  mcp       Run an MCP stdio server")
		fmt.Fprintln(out, "  rules     List framework and tool detection rules")
		fmt.Fprintln(out, "  cache     Inspect or clear the upstream response cache")
		fmt.Fprintln(out, "  doctor    Check whether the repolens setup is healthy")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/repolens/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
}
