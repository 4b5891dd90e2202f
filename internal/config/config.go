package config

import (
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/rs/zerolog"
)

const (
	devAPIBaseURL  = "https://localhost:54696"
	prodAPIBaseURL = "https://todogether.sinanfen.me"
)

// Config carries the environment-dependent application settings.
type Config struct {
	Environment    string // "development" or "production"
	APIBaseURL     string
	SyncInterval   time.Duration
	RetryAttempts  int
	RequestTimeout time.Duration
	Version        string
	LogLevel       zerolog.Level
}

// Load builds the configuration from the process environment and arguments.
// Production must be opted into via TODOGETHER_ENV=production; everything
// else, including a bare start, counts as development. A --dev argument
// forces development regardless of the environment variable.
func Load(version string, args []string) Config {
	dev := os.Getenv("TODOGETHER_ENV") != "production" || slices.Contains(args, "--dev")

	cfg := Config{
		Environment:    "production",
		APIBaseURL:     prodAPIBaseURL,
		SyncInterval:   10 * time.Second,
		RetryAttempts:  3,
		RequestTimeout: 10 * time.Second,
		Version:        version,
		LogLevel:       zerolog.InfoLevel,
	}
	if dev {
		cfg.Environment = "development"
		cfg.APIBaseURL = devAPIBaseURL
		cfg.SyncInterval = 5 * time.Second
		cfg.LogLevel = zerolog.DebugLevel
	}
	if url := os.Getenv("TODOGETHER_API_URL"); url != "" {
		cfg.APIBaseURL = url
	}
	return cfg
}

// IsDevelopment reports whether the app runs against the dev backend.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// DataDir returns ~/.todogether, creating it if needed.
func (c Config) DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".todogether")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}
