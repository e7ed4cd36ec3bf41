package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/five82/bookbasket/internal/basket"
	"github.com/five82/bookbasket/internal/config"
	"github.com/five82/bookbasket/internal/prefs"
	"github.com/five82/bookbasket/internal/seed"
	"github.com/five82/bookbasket/internal/state"
	"github.com/five82/bookbasket/internal/telemetry"
	"github.com/five82/bookbasket/internal/ui"
)

const shutdownTimeout = 5 * time.Second

// Options configure the bookbasket application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/bookbasket/prefs.toml
	SeedPath   string // overrides seed_path from the config file
}

// Run boots the bookbasket TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	prefsPath := opts.PrefsPath
	if strings.TrimSpace(prefsPath) == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)

	logger, closeLog, err := openLog(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	shutdown, err := telemetry.Setup(ctx, cfg.OTLPEndpoint, logger)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			logger.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	seedPath := opts.SeedPath
	if strings.TrimSpace(seedPath) == "" {
		seedPath = cfg.SeedPath
	}
	catalog, err := seed.Load(seedPath)
	if err != nil {
		return fmt.Errorf("load seed: %w", err)
	}

	relay := newDiagnosticRelay(diagnosticBuffer, logger)
	store, err := newStore(catalog, logger, relay)
	if err != nil {
		return err
	}
	logger.Info("bookbasket started",
		"catalog_items", len(catalog),
		"seed", seedLabel(seedPath),
		"theme", userPrefs.Theme,
	)

	err = ui.Run(ctx, ui.Options{
		Store:       store,
		Diagnostics: relay.C(),
		ThemeName:   userPrefs.Theme,
		Pane:        userPrefs.Pane,
		PrefsPath:   prefsPath,
		LogPath:     cfg.LogPath,
		Logger:      logger,
	})
	relay.Close()

	s := store.State()
	if cerr := basket.Conserved(basket.State{Catalog: catalog}, s); cerr != nil {
		logger.Error("stock not conserved at exit", "error", cerr)
	}
	logger.Info("bookbasket stopped",
		"basket_units", basket.Summarize(s).Units,
		"diagnostics_dropped", relay.Dropped(),
	)
	return err
}

// newStore validates the seed and builds the store with the reducer wired to
// logger and relay.
func newStore(catalog []basket.Item, logger *slog.Logger, relay *diagnosticRelay) (*basket.Store, error) {
	initial, err := basket.NewState(catalog)
	if err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}
	return basket.NewStore(initial,
		[]state.Option{state.WithPanicHandler(func(recovered any) {
			logger.Error("reducer panicked", "panic", fmt.Sprint(recovered))
		})},
		basket.WithLogger(logger),
		basket.WithDiagnostics(relay.Send),
	), nil
}

// openLog opens the log file for appending. The terminal belongs to the UI, so
// nothing is logged to stderr.
func openLog(path string, level slog.Level) (*slog.Logger, func(), error) {
	if strings.TrimSpace(path) == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return newLogger(file, level), func() { _ = file.Close() }, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func seedLabel(path string) string {
	if strings.TrimSpace(path) == "" {
		return "built-in"
	}
	return path
}
