// Package config provides configuration loading and defaults for repolens.
package config

import "time"

// DefaultConfigDir is the default location for repolens configuration.
const DefaultConfigDir = "~/.config/repolens"

// DefaultDBName is the filename for the SQLite response cache.
const DefaultDBName = "cache.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// EnvPrefix is prepended to every key when reading the environment,
// e.g. REPOLENS_SERVER_PORT.
const EnvPrefix = "REPOLENS"

// DefaultGitHub holds the default upstream API settings.
var DefaultGitHub = GitHub{
	APIURL:   "https://api.github.com",
	Branches: []string{"main", "master"},
	Timeout:  30 * time.Second,
}

// DefaultCache holds the default response cache settings.
var DefaultCache = Cache{
	Enabled: true,
	Path:    DefaultConfigDir + "/" + DefaultDBName,
	MaxAge:  7 * 24 * time.Hour,
}

// DefaultServer holds the default HTTP boundary settings.
var DefaultServer = Server{
	Port:            ":3000",
	AllowedOrigin:   "http://localhost:5173",
	ReportTTL:       60 * time.Second,
	ReportCacheSize: 256,
	ShutdownTimeout: 10 * time.Second,
}

// DefaultAnalyze holds the default batch analysis settings.
var DefaultAnalyze = Analyze{
	Concurrency: 4,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
