// Package state holds the authentication and discovery snapshot shared
// between the controller and the presentation layer.
//
// # Overview
//
// The controller in internal/app is the single writer. The TUI header and
// the headless printer read Snapshot whenever they render. Readers never
// mutate the store and never see a half-written update.
//
//	Writer (controller):             Readers (ui, headless):
//	┌──────────────────────┐        ┌────────────────────┐
//	│ BeginLogin()         │        │                    │
//	│ CompleteLogin()      │───────→│ store.Snapshot()   │
//	│ SetServers()         │ (lock) │      ↓             │
//	│ Logout()             │        │ render             │
//	└──────────────────────┘        └────────────────────┘
//
// # Login States
//
//	LoggedOut ──BeginLogin──→ LoggingIn ──CompleteLogin──→ LoggedIn
//	    ↑                         │                           │
//	    └──────AbandonLogin───────┘                           │
//	    └───────────────────────Logout────────────────────────┘
//
// AbandonLogin covers a pin that expired unconfirmed; it is a no-op outside
// LoggingIn. Logout also runs when plex.tv answers Unauthorized. It keeps
// LastError so the login screen can say why the session ended.
//
// # Defensive Copying
//
// SetServers and Snapshot copy the server slice and each server's library
// list, so a reader can hold a snapshot while the controller publishes the
// next one.
//
// # Testing Considerations
//
// The zero Store is ready to use and starts LoggedOut.
package state
