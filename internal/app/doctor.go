package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/repolens/internal/config"
	"github.com/blackwell-systems/repolens/internal/output"
	"github.com/blackwell-systems/repolens/internal/store"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check whether the repolens setup is healthy",
	Long: `Run a series of health checks against your repolens configuration,
GitHub credentials and response cache. Prints a pass/fail line for each
check and a summary of how many checks passed.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// doctorCheck holds the result of a single health check.
type doctorCheck struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// doctorOutput is the JSON-serializable result of the doctor command.
type doctorOutput struct {
	Checks      []doctorCheck `json:"checks"`
	PassedCount int           `json:"passed"`
	TotalCount  int           `json:"total"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.GitHub.Timeout)
	defer cancel()

	checks := []doctorCheck{
		checkConfigFile(flagConfig),
		checkToken(cfg.GitHub.Token),
		checkGitHubAPI(ctx, cfg),
		checkCache(cfg.Cache),
		checkServeDaemon(),
	}

	passed := 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}

	w := cmd.OutOrStdout()
	if flagJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doctorOutput{
			Checks:      checks,
			PassedCount: passed,
			TotalCount:  len(checks),
		})
	}

	fmt.Fprintln(w, output.Section("Doctor"))
	fmt.Fprintln(w)
	for _, c := range checks {
		indicator := output.StyleSuccess.Render("✓")
		if !c.Passed {
			indicator = output.StyleWarning.Render("✗")
		}
		fmt.Fprintf(w, "  %s  %-30s %s\n", indicator, output.StyleBold.Render(c.Name), output.StyleMuted.Render(c.Message))
	}

	fmt.Fprintln(w)
	summary := fmt.Sprintf("%d/%d checks passed", passed, len(checks))
	if passed == len(checks) {
		fmt.Fprintf(w, " %s\n\n", output.StyleSuccess.Render(summary))
	} else {
		fmt.Fprintf(w, " %s\n\n", output.StyleWarning.Render(summary))
	}
	return nil
}

// checkConfigFile reports which config file is in effect. Running on
// defaults is a pass.
func checkConfigFile(explicit string) doctorCheck {
	path := explicit
	if path == "" {
		path = filepath.Join(config.ConfigDir(), config.DefaultConfigFile)
	}
	if _, err := os.Stat(path); err != nil {
		if explicit != "" {
			return doctorCheck{Name: "Config file", Passed: false, Message: fmt.Sprintf("not found: %s", path)}
		}
		return doctorCheck{Name: "Config file", Passed: true, Message: "using defaults (no config.yaml)"}
	}
	return doctorCheck{Name: "Config file", Passed: true, Message: path}
}

// checkToken verifies that a GitHub token is configured.
func checkToken(token string) doctorCheck {
	if token == "" {
		return doctorCheck{
			Name:    "GitHub token",
			Passed:  false,
			Message: "GITHUB_TOKEN is not set (unauthenticated limit is 60 requests/hour)",
		}
	}
	// Show only the first few characters.
	masked := token[:min(4, len(token))] + "..."
	return doctorCheck{Name: "GitHub token", Passed: true, Message: fmt.Sprintf("set (%s)", masked)}
}

// checkGitHubAPI queries the rate limit endpoint with the configured client.
func checkGitHubAPI(ctx context.Context, cfg *config.Config) doctorCheck {
	client := newGitHubClient(cfg, nil, newLogger(os.Stderr, false))
	rl, err := client.RateLimit(ctx)
	if err != nil {
		return doctorCheck{Name: "GitHub API", Passed: false, Message: err.Error()}
	}
	return doctorCheck{
		Name:    "GitHub API",
		Passed:  rl.Remaining > 0,
		Message: fmt.Sprintf("%d/%d requests left, resets %s", rl.Remaining, rl.Limit, rl.Reset.Local().Format(time.Kitchen)),
	}
}

// checkCache verifies the response cache opens and reports its size.
func checkCache(c config.Cache) doctorCheck {
	if !c.Enabled {
		return doctorCheck{Name: "Response cache", Passed: true, Message: "disabled"}
	}
	db, err := store.Open(c.Path)
	if err != nil {
		return doctorCheck{Name: "Response cache", Passed: false, Message: fmt.Sprintf("cannot open %s: %v", c.Path, err)}
	}
	defer closeCache(db)

	s, err := db.Stats(context.Background())
	if err != nil {
		return doctorCheck{Name: "Response cache", Passed: false, Message: err.Error()}
	}
	return doctorCheck{
		Name:    "Response cache",
		Passed:  true,
		Message: fmt.Sprintf("%s (%d entries, %s)", c.Path, s.Entries, formatBytes(s.Bytes)),
	}
}

// checkServeDaemon reports whether a background server is running. Not
// running is not a failure.
func checkServeDaemon() doctorCheck {
	pid, err := readPID()
	if err != nil {
		return doctorCheck{Name: "Serve daemon", Passed: true, Message: "not running"}
	}
	if !processExists(pid) {
		return doctorCheck{Name: "Serve daemon", Passed: false, Message: fmt.Sprintf("PID %d is not running (stale PID file)", pid)}
	}
	return doctorCheck{Name: "Serve daemon", Passed: true, Message: fmt.Sprintf("running (PID %d)", pid)}
}
