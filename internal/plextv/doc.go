// Package plextv is the HTTP client layer for plex.tv and for individual Plex
// Media Servers.
//
// # Overview
//
// The package has three layers:
//
//   - transport.go: a generic JSON transport bound to one base URL
//   - client.go: the account client (pins, resources, profile)
//   - server.go: connection selection and the per-server client
//
// errors.go holds the plex.tv error catalog and the RequestError type every
// failed call returns. types.go mirrors the JSON payloads.
//
// # Transport
//
// A Transport owns a base URL, an http.Client and a default header set. The
// package-level generics issue one request and decode the body:
//
//	pin, err := plextv.Post[plextv.Pin](ctx, transport, "/api/v2/pins?strong=true")
//	resources, err := plextv.Get[[]plextv.Resource](ctx, transport, "/api/v2/resources", query)
//
// Every request carries:
//   - Content-Type: application/x-www-form-urlencoded
//   - Accept: application/json
//   - X-Plex-Client-Identifier and X-Plex-Product
//   - X-Plex-Token, only while a token is installed
//
// Headers are copy-on-write. SetHeaders swaps in a new snapshot atomically, so
// a request that is already in flight keeps the set it started with and never
// observes a half-updated map.
//
// # Error Handling
//
// A failed call returns *RequestError with one of three kinds:
//
//   - KindSend: DNS, connect, TLS, timeout or body read failures
//   - KindDecode: a body that did not match the expected shape, including a
//     non-2xx body that is not an error envelope
//   - KindAPI: a non-2xx response with an error envelope
//
// plex.tv reuses small codes across HTTP statuses, so an envelope item is
// looked up by code*status when it carries a status and by the bare code
// otherwise. Items outside the catalog are logged once each at warn level,
// left out of Errors and kept in Unrecognized. A KindAPI error whose items
// were all unrecognized therefore has an empty Errors slice.
//
// RequestError unwraps to each recognized APIError, so callers test for a
// specific condition with errors.Is:
//
//	if errors.Is(err, plextv.Unauthorized) {
//		// token revoked: log out
//	}
//
// # Connection Selection
//
// SelectConnection prefers the first local connection, then the first direct
// (non-relay) connection, then the first relay. The order of the resource
// list is the tie-breaker inside each tier. NewServerClient rejects a
// resource without an access token before it looks at connections.
//
// # Thread Safety
//
// Client and Transport are safe for concurrent use. ServerClient is immutable
// after construction.
package plextv
