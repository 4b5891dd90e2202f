package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/sinanfen/todogether-cli/internal/config"
	"github.com/sinanfen/todogether-cli/internal/tui"
	"github.com/sinanfen/todogether-cli/pkg/auth"
	"github.com/sinanfen/todogether-cli/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "hata: %v\n", err)
		os.Exit(1)
	}
}

// openLogger returns a file-backed logger under the data dir. The TUI owns
// stdout, so logs never go there; on any failure a no-op logger is returned.
func openLogger(cfg config.Config) zerolog.Logger {
	dir, err := cfg.DataDir()
	if err != nil {
		return zerolog.Nop()
	}
	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return zerolog.Nop()
	}
	return zerolog.New(f).Level(cfg.LogLevel).With().Timestamp().Logger()
}

func run() error {
	cfg := config.Load(version, os.Args[1:])

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("todogether " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "logout":
			return runLogout(cfg)
		}
	}

	log := openLogger(cfg)
	log.Info().
		Str("environment", cfg.Environment).
		Str("api", cfg.APIBaseURL).
		Str("version", cfg.Version).
		Msg("starting")

	sessionPath, err := auth.DefaultSessionPath()
	if err != nil {
		return fmt.Errorf("resolve session path: %w", err)
	}
	store := auth.NewStore(sessionPath, log)
	store.Load()

	ac := auth.NewClient(cfg.APIBaseURL, store, log)
	api := client.New(cfg.APIBaseURL, ac, client.Options{
		MaxRetries:  cfg.RetryAttempts,
		Timeout:     cfg.RequestTimeout,
		Version:     cfg.Version,
		Environment: cfg.Environment,
	}, log)
	guard := auth.NewGuard(ac, log)

	app := tui.NewApp(ac, api, guard, cfg.SyncInterval)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runLogout(cfg config.Config) error {
	log := openLogger(cfg)
	sessionPath, err := auth.DefaultSessionPath()
	if err != nil {
		return fmt.Errorf("resolve session path: %w", err)
	}
	store := auth.NewStore(sessionPath, log)
	store.Load()

	ac := auth.NewClient(cfg.APIBaseURL, store, log)
	ac.Logout(context.Background())
	fmt.Println("Oturum kapatıldı.")
	return nil
}

func printHelp() {
	fmt.Println(`todogether — iki kişilik ortak yapılacaklar listesi

Kullanım:
  todogether            uygulamayı başlat
  todogether logout     oturumu kapat
  todogether version    sürümü göster
  todogether help       bu yardımı göster

Seçenekler:
  --dev                 geliştirme ortamını zorla

Ortam değişkenleri:
  TODOGETHER_ENV        "production" ile canlı ortama bağlan
  TODOGETHER_API_URL    API adresini elle belirle`)
}
