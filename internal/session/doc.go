// Package session drives the plex.tv login and server discovery flow.
//
// # Overview
//
// The presentation layer never calls plex.tv directly. It sends an Intent
// and receives Events:
//
//	front-end ──Intent──→ Controller.Run ──Event──→ front-end
//	                          │
//	                          ├─> plextv.Client      (pins, resources, profile)
//	                          ├─> plextv.ServerClient (media providers)
//	                          ├─> settings.Store     ([plextv] token)
//	                          └─> state.Store        (snapshot for rendering)
//
// Intents are handled one at a time on the Run goroutine. A failing intent is
// logged, recorded in the store and reported as ErrorReported; the loop keeps
// going.
//
// # Intents
//
//   - AppStarted: read the stored token. With a token, go to the main screen
//     and list servers; without one, show the login screen.
//   - LoginRequested: run the pin flow below.
//   - LogoutRequested: clear the token in memory and in settings.
//   - MenuItemSelected: highlight the item and publish its server's details.
//
// # Pin Flow
//
//	Created ──→ Polling ──token──→ Authenticated
//	               │
//	               └──128 polls──→ Exhausted
//
// After the pin is created the link URL is published (LoginPending) and
// handed to the Opener. A failure to open the browser is logged only; the
// user can still follow the URL shown on screen. The pin is polled once per
// second through the injected Clock, with no wait after the last attempt.
// Exhaustion is not an error: the state simply returns to LoggedOut. Any
// failed poll aborts the login and is returned.
//
// On success the token is persisted first, then installed on the client, and
// exactly one LoginStateChanged{LoggedIn} is emitted. A settings write
// failure is logged and does not undo the login.
//
// # Unauthorized
//
// An Unauthorized error from any intent logs the account out: the token is
// dropped from the client and from settings, the sidebar is cleared and the
// login screen is shown. It is the only error that changes screens.
//
// # Servers
//
// Every resource providing "server" becomes a plextv.ServerClient. Resources
// without an access token or connection are skipped. The remaining servers
// are asked for media providers concurrently; a server whose request fails is
// left out of the sidebar. The sidebar is an index-keyed map of ServerEntry
// and LibraryEntry values, each server followed by its content directories.
package session
