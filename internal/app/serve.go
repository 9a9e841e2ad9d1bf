package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/repolens/internal/config"
	"github.com/blackwell-systems/repolens/internal/server"
)

var (
	serveFlagPort   string
	serveFlagDaemon bool
	serveFlagStop   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API for the web frontend",
	Long: `Serve exposes the analyzer over HTTP:

  GET  /          health check
  POST /analyze   {"repoUrl": "https://github.com/owner/repo"}

The listen port comes from --port, PORT or server.port (default :3000).
GITHUB_TOKEN raises the upstream rate limit.

Examples:
  repolens serve                    # run in foreground (ctrl-c to stop)
  repolens serve --port 8080
  repolens serve --daemon           # write PID file, log to file
  repolens serve --stop             # stop the background server`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlagPort, "port", "", "Listen address or port (overrides config)")
	serveCmd.Flags().BoolVar(&serveFlagDaemon, "daemon", false, "Run in background mode (write PID file, log to file)")
	serveCmd.Flags().BoolVar(&serveFlagStop, "stop", false, "Stop a running background server")
	rootCmd.AddCommand(serveCmd)
}

// pidFilePath returns the path to the server PID file.
func pidFilePath() string {
	return filepath.Join(config.ConfigDir(), "serve.pid")
}

// logFilePath returns the path to the daemon log file.
func logFilePath() string {
	return filepath.Join(config.ConfigDir(), "serve.log")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveFlagStop {
		return stopDaemon()
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if serveFlagPort != "" {
		cfg.Server.Port = serveFlagPort
		if !strings.Contains(cfg.Server.Port, ":") {
			cfg.Server.Port = ":" + cfg.Server.Port
		}
	}

	var logOut io.Writer = cmd.ErrOrStderr()
	if serveFlagDaemon {
		cleanup, f, err := startDaemon()
		if err != nil {
			return err
		}
		defer cleanup()
		logOut = f
	}
	logger := log.New(logOut, "repolens: ", log.LstdFlags)

	db, err := openCache(cfg)
	if err != nil {
		logger.Printf("continuing without cache: %v", err)
	}
	defer closeCache(db)

	srv := server.New(server.Options{
		Addr:            cfg.Server.Port,
		AllowedOrigin:   cfg.Server.AllowedOrigin,
		ReportTTL:       cfg.Server.ReportTTL,
		ReportCacheSize: cfg.Server.ReportCacheSize,
		Logger:          logger,
	}, newGitHubClient(cfg, db, clientLogger(logger)))

	ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals...)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return <-errCh
}

// clientLogger returns logger for upstream fetch diagnostics under --verbose.
func clientLogger(logger *log.Logger) *log.Logger {
	if flagVerbose {
		return logger
	}
	return log.New(io.Discard, "", 0)
}

// startDaemon writes the PID file and opens the log file. The actual
// backgrounding should be done by the caller (nohup, &, etc.) since Go
// cannot reliably fork.
func startDaemon() (cleanup func(), logFile *os.File, err error) {
	if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating config dir: %w", err)
	}

	if pid, err := readPID(); err == nil {
		if processExists(pid) {
			return nil, nil, fmt.Errorf("server already running (PID %d). Use --stop to stop it", pid)
		}
		// Stale PID file.
		_ = os.Remove(pidFilePath())
	}

	if err := os.WriteFile(pidFilePath(), []byte(strconv.Itoa(os.Getpid())), 0o644); err != nil {
		return nil, nil, fmt.Errorf("writing PID file: %w", err)
	}

	f, err := os.OpenFile(logFilePath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		_ = os.Remove(pidFilePath())
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	return func() {
		_ = f.Close()
		_ = os.Remove(pidFilePath())
	}, f, nil
}

// readPID reads the server PID from the PID file.
func readPID() (int, error) {
	data, err := os.ReadFile(pidFilePath())
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}
