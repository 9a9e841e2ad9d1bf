package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/repolens/internal/analyzer"
	"github.com/blackwell-systems/repolens/internal/config"
	"github.com/blackwell-systems/repolens/internal/github"
	"github.com/blackwell-systems/repolens/internal/output"
	"github.com/blackwell-systems/repolens/internal/watcher"
)

// minWatchInterval keeps the watcher well inside GitHub's rate limits.
const minWatchInterval = 30 * time.Second

var (
	watchFlagInterval time.Duration
	watchFlagMinScore int
	watchFlagQuiet    bool
	watchFlagNoNotify bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <repo-url>...",
	Short: "Re-analyze repositories and alert when their health changes",
	Long: `Watch analyzes each repository, then re-analyzes them at an interval and
emits an alert when a score, grade, framework or warning changes. Alerts
are sent as desktop notifications and printed to the terminal.

With the response cache enabled, unchanged files are revalidated by ETag
and do not count against the GitHub rate limit.

Examples:
  repolens watch https://github.com/acme/web
  repolens watch --interval 1h URL1 URL2
  repolens watch --min-score 75 URL    # warn while the score is below 75`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchFlagInterval, "interval", 10*time.Minute, "Check interval (e.g. 5m, 1h)")
	watchCmd.Flags().IntVar(&watchFlagMinScore, "min-score", 0, "Warn while a score is below this value (0 disables)")
	watchCmd.Flags().BoolVar(&watchFlagQuiet, "quiet", false, "Suppress terminal output, only send notifications")
	watchCmd.Flags().BoolVar(&watchFlagNoNotify, "no-notify", false, "Disable desktop notifications")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchFlagInterval < minWatchInterval {
		return fmt.Errorf("interval must be at least %s, got %s", minWatchInterval, watchFlagInterval)
	}

	repos := make([]analyzer.Repo, 0, len(args))
	for _, raw := range args {
		owner, name, err := github.ParseRepoURL(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", raw, err)
		}
		repos = append(repos, analyzer.Repo{Owner: owner, Name: name, URL: raw})
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	errOut := cmd.ErrOrStderr()
	db, err := openCache(cfg)
	if err != nil {
		fmt.Fprintln(errOut, "warning:", err, "(continuing without cache)")
	}
	defer closeCache(db)

	out := cmd.OutOrStdout()
	if watchFlagQuiet {
		out = io.Discard
	}

	alertFn := func(a watcher.Alert) {
		if !watchFlagNoNotify {
			_ = watcher.Notify(a)
		}
		printAlert(out, a)
	}

	client := newGitHubClient(cfg, db, newLogger(errOut, false))
	w := watcher.New(client, repos, watchFlagInterval, alertFn)
	w.MinScore = watchFlagMinScore

	ctx, stop := signal.NotifyContext(cmd.Context(), shutdownSignals...)
	defer stop()

	fmt.Fprintf(out, "repolens watching %d repositories (checking every %s)\n", len(repos), watchFlagInterval)

	baseline, err := w.Baseline(ctx)
	if err != nil {
		return fmt.Errorf("initial analysis failed: %w", err)
	}
	for _, s := range baseline {
		printBaseline(out, s)
	}

	err = w.Run(ctx)
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(out, "\nStopped.")
		return nil
	}
	return err
}

// printBaseline prints the starting state of one repository.
func printBaseline(w io.Writer, s *watcher.Snapshot) {
	ts := s.Timestamp.Format("15:04:05")
	if s.Err != "" {
		fmt.Fprintf(w, "[%s] %s %s %s\n", ts, alertIcon("critical"), s.Repo, output.StyleMuted.Render(s.Err))
		return
	}
	fmt.Fprintf(w, "[%s] %s %s %s %s\n", ts, alertIcon("info"), s.Repo, output.ScoreBar(s.Score, 10), output.GradeBadge(s.Grade))
}

// printAlert formats and prints an alert to the terminal.
func printAlert(w io.Writer, a watcher.Alert) {
	fmt.Fprintf(w, "[%s] %s %s %s\n", a.Time.Format("15:04:05"), alertIcon(a.Level), a.Repo, output.StyleBold.Render(a.Title))
	if a.Message != "" {
		fmt.Fprintf(w, "         %s\n", a.Message)
	}
}

// alertIcon returns the terminal indicator for an alert level.
func alertIcon(level string) string {
	switch level {
	case "critical":
		return output.StyleError.Render("✗")
	case "warning":
		return output.StyleWarning.Render("!")
	case "info":
		return output.StyleSuccess.Render("✓")
	default:
		return " "
	}
}
