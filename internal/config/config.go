package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures Maple's runtime settings.
type Config struct {
	PlexTVURL      string
	AppURL         string
	ClientID       string
	Product        string
	StrongPin      bool
	IncludeHTTPS   bool
	IncludeRelay   bool
	IncludeIPv6    bool
	RequestTimeout time.Duration
	SettingsPath   string
	LogFile        string
	LogLevel       string
}

const (
	defaultConfigPath     = "~/.config/maple/config.toml"
	defaultPlexTVURL      = "https://plex.tv"
	defaultAppURL         = "https://app.plex.tv"
	defaultClientID       = "Maple_1_0"
	defaultProduct        = "Maple for Plex"
	defaultSettingsPath   = "~/.config/maple/settings.toml"
	defaultLogFile        = "~/.local/state/maple/maple.log"
	defaultLogLevel       = "info"
	defaultRequestTimeout = 15 * time.Second
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		PlexTVURL:      defaultPlexTVURL,
		AppURL:         defaultAppURL,
		ClientID:       defaultClientID,
		Product:        defaultProduct,
		StrongPin:      true,
		IncludeHTTPS:   true,
		IncludeRelay:   true,
		IncludeIPv6:    true,
		RequestTimeout: defaultRequestTimeout,
		SettingsPath:   mustExpand(defaultSettingsPath),
		LogFile:        mustExpand(defaultLogFile),
		LogLevel:       defaultLogLevel,
	}
}

// Load locates and parses the Maple config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		PlexTVURL      string `toml:"plextv_url"`
		AppURL         string `toml:"app_url"`
		ClientID       string `toml:"client_id"`
		Product        string `toml:"product"`
		StrongPin      *bool  `toml:"strong_pin"`
		IncludeHTTPS   *bool  `toml:"include_https"`
		IncludeRelay   *bool  `toml:"include_relay"`
		IncludeIPv6    *bool  `toml:"include_ipv6"`
		RequestTimeout int    `toml:"request_timeout"`
		SettingsPath   string `toml:"settings_path"`
		LogFile        string `toml:"log_file"`
		LogLevel       string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.PlexTVURL = orDefault(raw.PlexTVURL, defaultPlexTVURL)
	cfg.AppURL = orDefault(raw.AppURL, defaultAppURL)
	cfg.ClientID = orDefault(raw.ClientID, defaultClientID)
	cfg.Product = orDefault(raw.Product, defaultProduct)
	cfg.LogLevel = orDefault(raw.LogLevel, defaultLogLevel)
	cfg.SettingsPath = mustExpand(orDefault(raw.SettingsPath, defaultSettingsPath))
	cfg.LogFile = mustExpand(orDefault(raw.LogFile, defaultLogFile))

	for _, flag := range []struct {
		raw *bool
		dst *bool
	}{
		{raw.StrongPin, &cfg.StrongPin},
		{raw.IncludeHTTPS, &cfg.IncludeHTTPS},
		{raw.IncludeRelay, &cfg.IncludeRelay},
		{raw.IncludeIPv6, &cfg.IncludeIPv6},
	} {
		if flag.raw != nil {
			*flag.dst = *flag.raw
		}
	}

	if raw.RequestTimeout > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeout) * time.Second
	}

	return cfg, nil
}

func orDefault(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
