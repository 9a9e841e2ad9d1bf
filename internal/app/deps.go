package app

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/blackwell-systems/repolens/internal/config"
	"github.com/blackwell-systems/repolens/internal/github"
	"github.com/blackwell-systems/repolens/internal/store"
)

// newLogger returns the diagnostics logger. Without --verbose it discards
// everything unless force is set.
func newLogger(w io.Writer, force bool) *log.Logger {
	if !flagVerbose && !force {
		return log.New(io.Discard, "", 0)
	}
	return log.New(w, "repolens: ", log.LstdFlags)
}

// openCache opens the response cache, or returns nil when caching is
// disabled in the config.
func openCache(cfg *config.Config) (*store.DB, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	db, err := store.Open(cfg.Cache.Path)
	if err != nil {
		return nil, fmt.Errorf("opening cache %s: %w", cfg.Cache.Path, err)
	}
	return db, nil
}

// newGitHubClient builds the upstream client from config. db may be nil.
func newGitHubClient(cfg *config.Config, db *store.DB, logger *log.Logger) *github.Client {
	opts := []github.Option{
		github.WithBaseURL(cfg.GitHub.APIURL),
		github.WithToken(cfg.GitHub.Token),
		github.WithBranches(cfg.GitHub.Branches...),
		github.WithHTTPClient(&http.Client{Timeout: cfg.GitHub.Timeout}),
		github.WithLogger(logger),
	}
	if db != nil {
		opts = append(opts, github.WithCache(db))
	}
	return github.NewClient(opts...)
}

// closeCache closes db, reporting failures on stderr.
func closeCache(db *store.DB) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "warning: closing cache:", err)
	}
}
