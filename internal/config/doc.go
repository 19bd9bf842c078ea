// Package config handles loading and parsing Maple's configuration file.
//
// # Overview
//
// Maple talks to plex.tv and to the Plex Media Servers discovered through it.
// This package reads the handful of knobs that shape those conversations: the
// service endpoints, the identity Maple presents in its request headers, the
// PIN flavour used for device linking, and where settings and logs live.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/maple/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing/empty, use defaults per field
//
// # Default Values
//
//   - plex.tv endpoint: https://plex.tv
//   - Link page: https://app.plex.tv
//   - Client identifier: Maple_1_0
//   - Product name: Maple for Plex
//   - Strong PINs, HTTPS/relay/IPv6 connections all enabled
//   - Request timeout: 15 seconds
//   - Settings file: ~/.config/maple/settings.toml
//   - Log file: ~/.local/state/maple/maple.log
//
// # TOML Format
//
//	plextv_url = "https://plex.tv"
//	app_url = "https://app.plex.tv"
//	client_id = "Maple_1_0"
//	product = "Maple for Plex"
//	strong_pin = true
//	include_https = true
//	include_relay = true
//	include_ipv6 = true
//	request_timeout = 15
//	settings_path = "~/.config/maple/settings.toml"
//	log_file = "~/.local/state/maple/maple.log"
//	log_level = "info"
//
// Setting client_id to "auto" makes Maple generate a per-install identifier
// and keep it in the settings file.
//
// Every field is optional. Boolean fields are only overridden when present,
// so an absent include_relay keeps its default of true. Tilde expansion is
// performed for paths.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//
// The config package is read-only: the token obtained at login is not
// configuration and is persisted through the settings package instead.
package config
