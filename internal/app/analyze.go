package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/repolens/internal/analyzer"
	"github.com/blackwell-systems/repolens/internal/config"
	"github.com/blackwell-systems/repolens/internal/github"
	"github.com/blackwell-systems/repolens/internal/localrepo"
	"github.com/blackwell-systems/repolens/internal/output"
)

// Output formats accepted by --format.
const (
	formatText     = "text"
	formatMarkdown = "markdown"
	formatJSON     = "json"
	formatYAML     = "yaml"
)

var (
	analyzeFlagDir         string
	analyzeFlagFormat      string
	analyzeFlagConcurrency int
	analyzeFlagNoCache     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [repo-url...]",
	Short: "Analyze one or more repositories",
	Long: `Analyze fetches the file tree, package.json and README of each
repository, detects its framework and tools, infers how to run it locally,
lists missing project hygiene and computes a 0-100 health score.

Several URLs are analyzed concurrently and printed in argument order.

Examples:
  repolens analyze https://github.com/vercel/next.js
  repolens analyze --format markdown https://github.com/acme/web > REPORT.md
  repolens analyze --dir .                     # analyze a local checkout
  repolens analyze --format yaml URL1 URL2`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFlagDir, "dir", "", "Analyze a local checkout instead of a remote repository")
	analyzeCmd.Flags().StringVar(&analyzeFlagFormat, "format", formatText, "Output format: text, markdown, json, yaml")
	analyzeCmd.Flags().IntVar(&analyzeFlagConcurrency, "concurrency", 0, "Maximum concurrent analyses (default from config)")
	analyzeCmd.Flags().BoolVar(&analyzeFlagNoCache, "no-cache", false, "Bypass the upstream response cache")
	rootCmd.AddCommand(analyzeCmd)
}

// analyzeTarget is one repository to analyze with the source that serves it.
type analyzeTarget struct {
	repo   analyzer.Repo
	source analyzer.Source
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(analyzeFlagFormat)
	if flagJSON {
		format = formatJSON
	}
	switch format {
	case formatText, formatMarkdown, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown format %q (want text, markdown, json or yaml)", analyzeFlagFormat)
	}

	if analyzeFlagDir == "" && len(args) == 0 {
		return fmt.Errorf("a repository URL or --dir is required")
	}
	if analyzeFlagDir != "" && len(args) > 0 {
		return fmt.Errorf("--dir cannot be combined with repository URLs")
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if !cfg.Output.Color {
		output.SetNoColor(true)
	}
	output.SetWidth(cfg.Output.Width)
	logger := newLogger(cmd.ErrOrStderr(), false)

	var targets []analyzeTarget
	if analyzeFlagDir != "" {
		src, err := localrepo.New(analyzeFlagDir)
		if err != nil {
			return fmt.Errorf("opening %s: %w", analyzeFlagDir, err)
		}
		targets = append(targets, analyzeTarget{repo: src.Repo(), source: src})
	} else {
		if analyzeFlagNoCache {
			cfg.Cache.Enabled = false
		}
		db, err := openCache(cfg)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err, "(continuing without cache)")
		}
		defer closeCache(db)

		client := newGitHubClient(cfg, db, logger)
		for _, raw := range args {
			owner, name, err := github.ParseRepoURL(raw)
			if err != nil {
				return fmt.Errorf("%s: %w", raw, err)
			}
			targets = append(targets, analyzeTarget{
				repo:   analyzer.Repo{Owner: owner, Name: name, URL: strings.TrimSpace(raw)},
				source: client,
			})
		}
	}

	limit := analyzeFlagConcurrency
	if limit <= 0 {
		limit = cfg.Analyze.Concurrency
	}

	reports, err := analyzeAll(cmd, targets, limit)
	if err != nil {
		return err
	}
	return writeReports(cmd.OutOrStdout(), format, reports)
}

// analyzeAll runs every target with at most limit in flight and returns the
// reports in target order.
func analyzeAll(cmd *cobra.Command, targets []analyzeTarget, limit int) ([]*analyzer.Report, error) {
	reports := make([]*analyzer.Report, len(targets))

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	g, ctx := errgroup.WithContext(parent)
	g.SetLimit(max(limit, 1))
	for i, t := range targets {
		i, t := i, t
		g.Go(func() error {
			r, err := analyzer.Run(ctx, t.source, t.repo)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// writeReports renders reports in the requested format.
func writeReports(w io.Writer, format string, reports []*analyzer.Report) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if len(reports) == 1 {
			return enc.Encode(reports[0])
		}
		return enc.Encode(reports)

	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		for _, r := range reports {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return enc.Close()

	case formatMarkdown:
		for i, r := range reports {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprint(w, r.Markdown)
		}
		return nil

	default:
		for _, r := range reports {
			fmt.Fprintln(w, output.RenderReport(r))
		}
		return nil
	}
}
