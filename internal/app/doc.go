// Package app provides the orchestration layer for the Maple application.
//
// # Overview
//
// This package wires together configuration, logging, the settings store,
// the plex.tv client, the session controller and a front-end. It is the
// composition root: every dependency is built here and handed down.
//
// # Architecture
//
//  1. Load ~/.config/maple/config.toml (defaults when missing)
//  2. Apply --settings and --log-level overrides
//  3. Open the logger: stderr when headless, the log file otherwise
//  4. Open the settings store that holds the plex.tv token
//  5. Build the plex.tv client and the session controller
//  6. Run the controller on its own goroutine
//  7. Run the terminal UI or the headless printer until it returns
//
// # Data Flow
//
//	┌──────────────┐  intents   ┌──────────────┐
//	│ ui / headless│ ─────────> │  Controller  │ ──> plex.tv, servers
//	│              │ <───────── │              │ ──> settings, state.Store
//	└──────────────┘   events   └──────────────┘
//
// The controller is the only sender on the event channel and closes it when
// it stops, which ends the UI.
//
// # Headless Mode
//
// Without a terminal the app prints the link URL and code, waits for the
// device to be linked, prints the discovered servers with their libraries
// and exits. A rejected stored token triggers one fresh login.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Invalid configuration or log level
//   - Settings or log file that cannot be created
//   - A headless login that fails or is not confirmed in time
//
// Recoverable errors are logged by the controller, which keeps serving
// intents.
package app
