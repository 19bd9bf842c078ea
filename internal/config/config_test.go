package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.PlexTVURL != defaultPlexTVURL {
		t.Fatalf("PlexTVURL = %q, want %q", cfg.PlexTVURL, defaultPlexTVURL)
	}
	if cfg.ClientID != defaultClientID {
		t.Fatalf("ClientID = %q, want %q", cfg.ClientID, defaultClientID)
	}
	if !cfg.StrongPin || !cfg.IncludeHTTPS || !cfg.IncludeRelay || !cfg.IncludeIPv6 {
		t.Fatalf("boolean defaults = %#v, want all true", cfg)
	}
	if cfg.RequestTimeout != defaultRequestTimeout {
		t.Fatalf("RequestTimeout = %v, want %v", cfg.RequestTimeout, defaultRequestTimeout)
	}
	wantSettings := filepath.Join(home, ".config", "maple", "settings.toml")
	if cfg.SettingsPath != wantSettings {
		t.Fatalf("SettingsPath = %q, want %q", cfg.SettingsPath, wantSettings)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
plextv_url = "  http://127.0.0.1:9999  "
client_id = " Maple_test "
strong_pin = false
include_relay = false
request_timeout = 3
settings_path = "~/maple/settings.toml"
log_level = "trace"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.PlexTVURL != "http://127.0.0.1:9999" {
		t.Fatalf("PlexTVURL = %q, want trimmed", cfg.PlexTVURL)
	}
	if cfg.ClientID != "Maple_test" {
		t.Fatalf("ClientID = %q, want Maple_test", cfg.ClientID)
	}
	if cfg.AppURL != defaultAppURL {
		t.Fatalf("AppURL = %q, want default", cfg.AppURL)
	}
	if cfg.StrongPin || cfg.IncludeRelay {
		t.Fatalf("StrongPin/IncludeRelay = %v/%v, want false/false", cfg.StrongPin, cfg.IncludeRelay)
	}
	if !cfg.IncludeHTTPS || !cfg.IncludeIPv6 {
		t.Fatalf("unset booleans changed: %#v", cfg)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("RequestTimeout = %v, want 3s", cfg.RequestTimeout)
	}
	if !strings.HasPrefix(cfg.SettingsPath, home) {
		t.Fatalf("SettingsPath = %q, want it under HOME %q", cfg.SettingsPath, home)
	}
	if cfg.LogLevel != "trace" {
		t.Fatalf("LogLevel = %q, want trace", cfg.LogLevel)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`plextv_url = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
