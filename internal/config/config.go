package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the top-level repolens configuration.
type Config struct {
	GitHub  GitHub  `mapstructure:"github"`
	Cache   Cache   `mapstructure:"cache"`
	Server  Server  `mapstructure:"server"`
	Analyze Analyze `mapstructure:"analyze"`
	Output  Output  `mapstructure:"output"`
}

// GitHub configures the upstream repository API.
type GitHub struct {
	APIURL   string        `mapstructure:"api_url"`
	Token    string        `mapstructure:"token"`
	Branches []string      `mapstructure:"branches"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Cache configures the on-disk conditional-request cache.
type Cache struct {
	Enabled bool          `mapstructure:"enabled"`
	Path    string        `mapstructure:"path"`
	MaxAge  time.Duration `mapstructure:"max_age"`
}

// Server configures the HTTP boundary.
type Server struct {
	Port            string        `mapstructure:"port"`
	AllowedOrigin   string        `mapstructure:"allowed_origin"`
	ReportTTL       time.Duration `mapstructure:"report_ttl"`
	ReportCacheSize int           `mapstructure:"report_cache_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Analyze configures batch analysis from the CLI.
type Analyze struct {
	Concurrency int `mapstructure:"concurrency"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// normalizePort turns a bare port number into a listen address.
func normalizePort(port string) string {
	port = strings.TrimSpace(port)
	if port != "" && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied. A .env file in the
// working directory is loaded first; variables already set win.
func Load(cfgFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	// Set defaults.
	v.SetDefault("github.api_url", DefaultGitHub.APIURL)
	v.SetDefault("github.token", "")
	v.SetDefault("github.branches", DefaultGitHub.Branches)
	v.SetDefault("github.timeout", DefaultGitHub.Timeout)
	v.SetDefault("cache.enabled", DefaultCache.Enabled)
	v.SetDefault("cache.path", DefaultCache.Path)
	v.SetDefault("cache.max_age", DefaultCache.MaxAge)
	v.SetDefault("server.port", DefaultServer.Port)
	v.SetDefault("server.allowed_origin", DefaultServer.AllowedOrigin)
	v.SetDefault("server.report_ttl", DefaultServer.ReportTTL)
	v.SetDefault("server.report_cache_size", DefaultServer.ReportCacheSize)
	v.SetDefault("server.shutdown_timeout", DefaultServer.ShutdownTimeout)
	v.SetDefault("analyze.concurrency", DefaultAnalyze.Concurrency)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	// Environment: REPOLENS_GITHUB_TOKEN etc., plus the conventional names.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("github.token", EnvPrefix+"_GITHUB_TOKEN", "GITHUB_TOKEN"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT"); err != nil {
		return nil, err
	}

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.Cache.Path = expandPath(cfg.Cache.Path)
	cfg.Server.Port = normalizePort(cfg.Server.Port)
	cfg.GitHub.APIURL = strings.TrimRight(cfg.GitHub.APIURL, "/")
	if len(cfg.GitHub.Branches) == 0 {
		cfg.GitHub.Branches = append([]string(nil), DefaultGitHub.Branches...)
	}
	if cfg.Analyze.Concurrency < 1 {
		cfg.Analyze.Concurrency = 1
	}

	return &cfg, nil
}

// DBPath returns the default full path to the SQLite cache.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
