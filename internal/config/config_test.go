package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestLoadDefaultsToDevelopment(t *testing.T) {
	t.Setenv("TODOGETHER_ENV", "")
	t.Setenv("TODOGETHER_API_URL", "")

	cfg := Load("1.0.0", nil)

	if !cfg.IsDevelopment() {
		t.Error("expected development by default")
	}
	if cfg.APIBaseURL != devAPIBaseURL {
		t.Errorf("APIBaseURL = %q, want %q", cfg.APIBaseURL, devAPIBaseURL)
	}
	if cfg.SyncInterval != 5*time.Second {
		t.Errorf("SyncInterval = %v, want 5s", cfg.SyncInterval)
	}
	if cfg.LogLevel != zerolog.DebugLevel {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
}

func TestLoadProduction(t *testing.T) {
	t.Setenv("TODOGETHER_ENV", "production")
	t.Setenv("TODOGETHER_API_URL", "")

	cfg := Load("1.0.0", nil)

	if cfg.IsDevelopment() {
		t.Error("expected production")
	}
	if cfg.APIBaseURL != prodAPIBaseURL {
		t.Errorf("APIBaseURL = %q, want %q", cfg.APIBaseURL, prodAPIBaseURL)
	}
	if cfg.SyncInterval != 10*time.Second {
		t.Errorf("SyncInterval = %v, want 10s", cfg.SyncInterval)
	}
	if cfg.RetryAttempts != 3 {
		t.Errorf("RetryAttempts = %d, want 3", cfg.RetryAttempts)
	}
}

func TestLoadDevFlagBeatsEnvironment(t *testing.T) {
	t.Setenv("TODOGETHER_ENV", "production")
	t.Setenv("TODOGETHER_API_URL", "")

	cfg := Load("1.0.0", []string{"--dev"})

	if !cfg.IsDevelopment() {
		t.Error("expected --dev to force development")
	}
}

func TestLoadAPIURLOverride(t *testing.T) {
	t.Setenv("TODOGETHER_ENV", "production")
	t.Setenv("TODOGETHER_API_URL", "http://localhost:8080")

	cfg := Load("1.0.0", nil)

	if cfg.APIBaseURL != "http://localhost:8080" {
		t.Errorf("APIBaseURL = %q, want the override", cfg.APIBaseURL)
	}
}
