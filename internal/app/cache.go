package app

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/repolens/internal/config"
	"github.com/blackwell-systems/repolens/internal/output"
	"github.com/blackwell-systems/repolens/internal/store"
)

var cacheFlagOlderThan time.Duration

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the upstream response cache",
	Long: `repolens keeps raw GitHub API responses with their ETag so repeated
analyses are revalidated instead of refetched. Reports themselves are never
stored.`,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache size and age",
	RunE:  runCacheStats,
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete entries older than cache.max_age (or --older-than)",
	RunE:  runCachePrune,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every cached response",
	RunE:  runCacheClear,
}

func init() {
	cachePruneCmd.Flags().DurationVar(&cacheFlagOlderThan, "older-than", 0, "Prune horizon (default from config)")
	cacheCmd.AddCommand(cacheStatsCmd, cachePruneCmd, cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

// cacheStatsOutput is the JSON form of cache stats.
type cacheStatsOutput struct {
	Path    string `json:"path"`
	Entries int    `json:"entries"`
	Bytes   int64  `json:"bytes"`
	Oldest  string `json:"oldest,omitempty"`
	Newest  string `json:"newest,omitempty"`
}

// withCache loads config and opens the cache for a cache subcommand.
func withCache(fn func(cfg *config.Config, db *store.DB) error) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	db, err := store.Open(cfg.Cache.Path)
	if err != nil {
		return fmt.Errorf("opening cache %s: %w", cfg.Cache.Path, err)
	}
	defer closeCache(db)
	return fn(cfg, db)
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	return withCache(func(cfg *config.Config, db *store.DB) error {
		s, err := db.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("reading cache stats: %w", err)
		}
		w := cmd.OutOrStdout()

		if flagJSON {
			out := cacheStatsOutput{Path: cfg.Cache.Path, Entries: s.Entries, Bytes: s.Bytes}
			if !s.Oldest.IsZero() {
				out.Oldest = s.Oldest.Format(time.RFC3339)
				out.Newest = s.Newest.Format(time.RFC3339)
			}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		fmt.Fprintln(w, output.Section("Response cache"))
		fmt.Fprintln(w)
		fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render("Path"), cfg.Cache.Path)
		fmt.Fprintf(w, " %s %d\n", output.StyleLabel.Render("Entries"), s.Entries)
		fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render("Size"), formatBytes(s.Bytes))
		if s.Entries > 0 {
			fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render("Oldest"), s.Oldest.Local().Format(time.DateTime))
			fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render("Newest"), s.Newest.Local().Format(time.DateTime))
		}
		if !cfg.Cache.Enabled {
			fmt.Fprintln(w, output.StyleMuted.Render("\n cache.enabled is false; analyses bypass this cache."))
		}
		return nil
	})
}

func runCachePrune(cmd *cobra.Command, args []string) error {
	return withCache(func(cfg *config.Config, db *store.DB) error {
		horizon := cacheFlagOlderThan
		if horizon <= 0 {
			horizon = cfg.Cache.MaxAge
		}
		n, err := db.Prune(cmd.Context(), time.Now().Add(-horizon))
		if err != nil {
			return fmt.Errorf("pruning cache: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d entries older than %s\n", n, horizon)
		return nil
	})
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	return withCache(func(cfg *config.Config, db *store.DB) error {
		n, err := db.Clear(cmd.Context())
		if err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d entries\n", n)
		return nil
	})
}

// formatBytes renders a byte count with a binary unit.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
