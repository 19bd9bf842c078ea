package session

import (
	"time"

	"github.com/five82/maple/internal/plextv"
	"github.com/five82/maple/internal/state"
)

// Screen identifies a top-level screen of the presentation layer.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenMain
)

func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "login"
	case ScreenMain:
		return "main"
	}
	return "unknown"
}

// Intent is a user action submitted by the presentation layer.
type Intent interface {
	isIntent()
}

// AppStarted is sent once when the front-end is ready.
type AppStarted struct{}

// LoginRequested starts a pin login.
type LoginRequested struct{}

// LogoutRequested clears the token.
type LogoutRequested struct{}

// MenuItemSelected reports a click on a sidebar item.
type MenuItemSelected struct {
	Index int
}

func (AppStarted) isIntent()       {}
func (LoginRequested) isIntent()   {}
func (LogoutRequested) isIntent()  {}
func (MenuItemSelected) isIntent() {}

// Event is a state-change notification for the presentation layer.
type Event interface {
	isEvent()
}

// ScreenChanged asks the front-end to show a screen.
type ScreenChanged struct {
	Screen Screen
}

// SidebarItemsReady replaces the sidebar contents.
type SidebarItemsReady struct {
	Items []SidebarItem
}

// SidebarItemHighlighted marks one sidebar item as active.
type SidebarItemHighlighted struct {
	Index int
}

// LoginPending carries the link page and code of a fresh pin. ExpiresAt is
// zero when plex.tv sent no usable expiry.
type LoginPending struct {
	URL       string
	Code      string
	ExpiresAt time.Time
}

// LoginStateChanged reports an authentication transition.
type LoginStateChanged struct {
	State   state.LoginState
	Account string
}

// ServerDetailsReady carries the media providers of the selected server.
type ServerDetailsReady struct {
	Index     int
	Server    string
	Relay     bool
	Providers []plextv.MediaProvider
}

// ErrorReported surfaces a failed intent.
type ErrorReported struct {
	Err error
}

func (ScreenChanged) isEvent()          {}
func (SidebarItemsReady) isEvent()      {}
func (SidebarItemHighlighted) isEvent() {}
func (LoginPending) isEvent()           {}
func (LoginStateChanged) isEvent()      {}
func (ServerDetailsReady) isEvent()     {}
func (ErrorReported) isEvent()          {}
