package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/five82/maple/internal/plextv"
	"github.com/five82/maple/internal/session"
	"github.com/five82/maple/internal/state"
)

var (
	// ErrLoginAbandoned is returned when a headless login ends without a token.
	ErrLoginAbandoned = errors.New("login was not completed")
	// ErrControllerStopped is returned when the event stream closes early.
	ErrControllerStopped = errors.New("controller stopped")
)

// runHeadless drives the controller without a terminal UI: it starts a
// login when asked to, prints the link code, then prints the sidebar once
// and returns.
func runHeadless(ctx context.Context, events <-chan session.Event, intents chan<- session.Intent, out io.Writer) error {
	if err := sendIntent(ctx, intents, session.AppStarted{}); err != nil {
		return err
	}

	loggingIn, loggedIn := false, false
	relinked := false
	for {
		var ev session.Event
		select {
		case <-ctx.Done():
			return ctx.Err()
		case next, ok := <-events:
			if !ok {
				return ErrControllerStopped
			}
			ev = next
		}

		switch ev := ev.(type) {
		case session.ScreenChanged:
			if ev.Screen != session.ScreenLogin {
				continue
			}
			if err := sendIntent(ctx, intents, session.LoginRequested{}); err != nil {
				return err
			}

		case session.LoginPending:
			fmt.Fprintf(out, "To link Maple, open %s\nand confirm code %s\n", ev.URL, ev.Code)

		case session.LoginStateChanged:
			switch ev.State {
			case state.LoggingIn:
				loggingIn = true
			case state.LoggedIn:
				loggingIn, loggedIn = false, true
				if ev.Account != "" {
					fmt.Fprintf(out, "Signed in as %s\n", ev.Account)
				}
			case state.LoggedOut:
				if loggingIn {
					return ErrLoginAbandoned
				}
			}

		case session.ErrorReported:
			// A rejected stored token is cleared by the controller, which
			// then asks for a fresh login. Allow that once.
			if plextv.IsUnauthorized(ev.Err) && !relinked {
				relinked, loggedIn = true, false
				fmt.Fprintln(out, "Stored token was rejected, linking again")
				continue
			}
			return ev.Err

		case session.SidebarItemsReady:
			// Logout also clears the sidebar; only a logged-in listing counts.
			if !loggedIn {
				continue
			}
			printSidebar(out, ev.Items)
			return nil
		}
	}
}

func printSidebar(out io.Writer, items []session.SidebarItem) {
	if len(items) == 0 {
		fmt.Fprintln(out, "No reachable servers")
		return
	}
	for _, item := range items {
		if item.IsSubmenu {
			fmt.Fprintf(out, "  %s\n", item.Title)
			continue
		}
		fmt.Fprintln(out, item.Title)
	}
}

func sendIntent(ctx context.Context, intents chan<- session.Intent, intent session.Intent) error {
	select {
	case intents <- intent:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
