package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/mini-arcade/internal/config"
	"github.com/vovakirdan/mini-arcade/internal/core"
	"github.com/vovakirdan/mini-arcade/internal/metrics"
	"github.com/vovakirdan/mini-arcade/internal/platform/tui"
	"github.com/vovakirdan/mini-arcade/internal/registry"
	"github.com/vovakirdan/mini-arcade/internal/scores"
	"github.com/vovakirdan/mini-arcade/internal/settings"
	"github.com/vovakirdan/mini-arcade/internal/storage"
)

var (
	appConfig config.AppConfig
	logger    *log.Logger
	logFile   *os.File
)

// setup loads arcade.yaml, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command) error {
	cfg, err := config.LoadApp(flagAppConfig)
	if err != nil {
		return err
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagLogFile != "" {
		cfg.LogFile = flagLogFile
	}
	if cfg.Timestep != "" && cfg.Timestep != "fixed" {
		return fmt.Errorf("unsupported timestep %q: only fixed is available", cfg.Timestep)
	}
	appConfig = cfg

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	var out io.Writer = os.Stderr
	switch {
	case cfg.LogFile != "":
		path := expandHome(cfg.LogFile)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		out = f
	case fullscreen(cmd):
		// The terminal belongs to the game.
		out = io.Discard
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "arcade",
	})
	return nil
}

func teardown() {
	if logFile != nil {
		logFile.Close()
	}
}

// fullscreen reports whether cmd takes over the local terminal.
func fullscreen(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "play", "menu":
		return true
	}
	return false
}

// openServices opens the run database and the high-score table described by
// the application config. A database that cannot be opened leaves scores in
// memory; the caller must close the returned storage when it is non-nil.
func openServices() (tui.Services, *storage.Store) {
	svc := tui.Services{
		Metrics:       metrics.New(),
		Logger:        logger,
		HoldTimeout:   appConfig.Input.HoldTimeout,
		Deadzone:      appConfig.Input.Deadzone,
		ScreenshotDir: expandHome(filepath.Join("~", ".arcade", "screenshots")),
	}

	runs, err := storage.Open(appConfig.Storage.DBPath)
	if err != nil {
		logger.Warn("scores database unavailable, keeping scores in memory", "err", err)
		runs = nil
	}

	var blob scores.Blob
	switch appConfig.Storage.Backend {
	case config.BackendFile:
		fb, err := scores.NewFileBlob(appConfig.Storage.ScoresFile)
		if err != nil {
			logger.Warn("score file unavailable, keeping scores in memory", "err", err)
		} else {
			blob = fb
		}
	default:
		if runs != nil {
			blob = runs.Slot(appConfig.Storage.ScoresSlot)
		}
	}

	svc.Scores = scores.New(blob,
		scores.WithOrders(registry.OrderOf),
		scores.WithLogger(logger.WithPrefix("scores")),
	)

	var prefs settings.Prefs
	if runs != nil {
		svc.Runs = runs
		prefs = runs
	}
	svc.Settings = settings.New(prefs, logger.WithPrefix("settings"))
	svc.Settings.SetFallbackTheme(appConfig.Theme)
	return svc, runs
}

// runtimeConfig builds the per-run configuration shared by all commands.
func runtimeConfig(width, height int) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.ScreenW = width
	cfg.ScreenH = height
	cfg.TickRate = appConfig.TickRate
	cfg.Seed = flagSeed
	cfg.ConfigPath = flagGameConfig
	cfg.Difficulty = flagDifficulty
	return cfg
}

// resolveGame finds a game by slug or numeric id.
func resolveGame(arg string) (registry.Info, error) {
	info, ok := registry.Resolve(arg)
	if !ok {
		return registry.Info{}, fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", arg)
	}
	return info, nil
}

func expandHome(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
