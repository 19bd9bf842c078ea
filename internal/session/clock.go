package session

import (
	"io"
	"time"

	"github.com/pkg/browser"
)

// Clock is the time source for the pin polling tick.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// RealClock returns the wall clock.
func RealClock() Clock { return realClock{} }

// Opener shows a URL to the user, normally in the system browser.
type Opener func(url string) error

// BrowserOpener opens URLs with the platform browser. The helper's own
// output is discarded so it cannot draw over the terminal UI.
func BrowserOpener() Opener {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return browser.OpenURL
}
