package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/five82/maple/internal/config"
	"github.com/five82/maple/internal/logging"
	"github.com/five82/maple/internal/plextv"
	"github.com/five82/maple/internal/session"
	"github.com/five82/maple/internal/settings"
	"github.com/five82/maple/internal/state"
	"github.com/five82/maple/internal/ui"
)

const (
	eventBuffer  = 64
	intentBuffer = 8
)

// Options configure the Maple application.
type Options struct {
	ConfigPath   string
	SettingsPath string // overrides settings_path from the config file
	LogLevel     string // overrides log_level from the config file
	Headless     bool

	// Stdout receives headless output; nil uses os.Stdout.
	Stdout io.Writer
	// Open replaces the system browser opener.
	Open session.Opener
}

// Run boots Maple until the user quits, the headless run finishes, or the
// context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.SettingsPath != "" {
		cfg.SettingsPath = opts.SettingsPath
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger, closeLog, err := openLogger(cfg, level, opts.Headless)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := settings.Open(cfg.SettingsPath)
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}

	clientID, err := resolveClientID(cfg.ClientID, store, logger)
	if err != nil {
		return err
	}

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	client, err := plextv.NewClient(plextv.Options{
		BaseURL:    cfg.PlexTVURL,
		AppURL:     cfg.AppURL,
		ClientID:   clientID,
		Product:    cfg.Product,
		HTTPClient: httpClient,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("init plex.tv client: %w", err)
	}

	opener := opts.Open
	if opener == nil {
		opener = session.BrowserOpener()
	}

	snapshot := &state.Store{}
	events := make(chan session.Event, eventBuffer)
	intents := make(chan session.Intent, intentBuffer)
	controller := session.NewController(session.Options{
		Account:      client,
		Settings:     store,
		Store:        snapshot,
		Events:       events,
		Open:         opener,
		Logger:       logger,
		StrongPin:    cfg.StrongPin,
		IncludeHTTPS: cfg.IncludeHTTPS,
		IncludeRelay: cfg.IncludeRelay,
		IncludeIPv6:  cfg.IncludeIPv6,
		Server: plextv.ServerOptions{
			ClientID:   clientID,
			Product:    cfg.Product,
			HTTPClient: httpClient,
			Logger:     logger,
		},
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		err := controller.Run(ctx, intents)
		// The controller is the only sender on events.
		close(events)
		done <- err
	}()

	logger.Info("maple starting", "headless", opts.Headless, "plextv", cfg.PlexTVURL)

	var runErr error
	if opts.Headless {
		out := opts.Stdout
		if out == nil {
			out = os.Stdout
		}
		runErr = runHeadless(ctx, events, intents, out)
	} else {
		runErr = ui.Run(ui.Options{
			Context:  ctx,
			Events:   events,
			Intents:  intents,
			Store:    snapshot,
			Settings: store,
			LogPath:  cfg.LogFile,
			Logger:   logger,
		})
	}

	cancel()
	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("controller stopped", "error", err)
	}
	return runErr
}

// openLogger sends logs to stderr in headless mode and to the log file when
// the terminal UI owns the screen.
func openLogger(cfg config.Config, level slog.Level, headless bool) (*slog.Logger, func(), error) {
	if headless {
		return logging.New(os.Stderr, level), func() {}, nil
	}
	file, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return logging.New(file, level), func() { _ = file.Close() }, nil
}
