package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/five82/maple/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config file path (default ~/.config/maple/config.toml)")
	settingsPath := flag.String("settings", "", "settings file path (overrides settings_path)")
	logLevel := flag.String("log-level", "", "log level: trace, debug, info, warn, error")
	headless := flag.Bool("headless", false, "print the link code and servers instead of starting the UI")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath:   *configPath,
		SettingsPath: *settingsPath,
		LogLevel:     *logLevel,
		Headless:     *headless || !term.IsTerminal(int(os.Stdout.Fd())),
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "maple: %v\n", err)
		return 1
	}
	return 0
}
