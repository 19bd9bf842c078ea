// Package ui provides the terminal user interface for Maple.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. It holds no account logic of its own: every
// user action becomes a session.Intent sent to the controller, and every
// change the controller makes arrives as a session.Event that the model folds
// into its state. The model also polls state.Store on a tick so the header
// reflects the latest snapshot even between events.
//
// # Package Structure
//
//   - app.go: Model, Options, Init/Update/View and the Run entry point
//   - input_handlers.go: key handling per screen
//   - keys.go: key bindings and help groups (bubbles/key, bubbles/help)
//   - screens.go: login screen, server sidebar and detail pane
//   - logs.go: log tail view with level colouring
//   - header.go, help.go: header line, command bar and help overlay
//   - theme.go: colour themes and Lipgloss styles
//
// # Screens
//
// Two screens mirror the controller's flow:
//
//   - Login: a prompt while logged out; the link code, link URL and a spinner
//     while a pin is being polled
//   - Main: the sidebar of servers and their libraries, plus the media
//     providers of the selected server
//
// The log view ("l") is available from either screen and tails the log file
// written by internal/logging.
//
// # Event Flow
//
//  1. Init sends AppStarted and starts waiting on the event channel
//  2. The controller answers with ScreenChanged and related events
//  3. Enter on the login screen sends LoginRequested
//  4. Enter on a sidebar item sends MenuItemSelected with the item's index
//  5. Closing the event channel quits the program
//
// # Theme
//
// "T" cycles through the built-in themes. The choice is saved in the settings
// store under the "ui" section and restored on the next start.
package ui
