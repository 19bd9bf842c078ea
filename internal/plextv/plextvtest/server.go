// Package plextvtest runs an in-process fake of plex.tv and of a Plex Media
// Server for tests. Payloads are plain JSON values so the package does not
// depend on the client types it is used to test.
package plextvtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/gorilla/mux"
)

// Route names accepted by Fail.
const (
	RouteCreatePin      = "create-pin"
	RoutePollPin        = "poll-pin"
	RouteResources      = "resources"
	RouteUser           = "user"
	RouteMediaProviders = "media-providers"
)

// Request records one request the fake received.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
}

type failure struct {
	status int
	body   string
}

// Server is a fake plex.tv and media server.
type Server struct {
	URL string

	srv *httptest.Server

	mu         sync.Mutex
	pinID      int64
	pinCode    string
	pollTokens []string
	polls      int
	resources  any
	user       any
	providers  any
	failures   map[string]failure
	requests   []Request
}

// New starts a fake server that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		pinID:     4242,
		pinCode:   "ABCD",
		resources: []any{},
		user:      map[string]any{"id": 1, "username": "maple", "title": "Maple User"},
		providers: map[string]any{"MediaContainer": map[string]any{"size": 0, "MediaProvider": []any{}}},
		failures:  map[string]failure{},
	}

	router := mux.NewRouter()
	router.Use(s.record)
	router.HandleFunc("/api/v2/pins", s.guard(RouteCreatePin, s.createPin)).Methods(http.MethodPost)
	router.HandleFunc("/api/v2/pins/{id:[0-9]+}", s.guard(RoutePollPin, s.pollPin)).Methods(http.MethodGet)
	router.HandleFunc("/api/v2/resources", s.guard(RouteResources, s.serveValue(func() any { return s.resources }))).Methods(http.MethodGet)
	router.HandleFunc("/api/v2/user", s.guard(RouteUser, s.serveValue(func() any { return s.user }))).Methods(http.MethodGet)
	router.HandleFunc("/media/providers", s.guard(RouteMediaProviders, s.serveValue(func() any { return s.providers }))).Methods(http.MethodGet)

	s.srv = httptest.NewServer(router)
	s.URL = s.srv.URL
	t.Cleanup(s.srv.Close)
	return s
}

// SetPin configures the id and code handed out by the create-pin route.
func (s *Server) SetPin(id int64, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pinID, s.pinCode = id, code
}

// ScriptPolls sets the token returned by each successive poll; an empty
// string means "not linked yet". Polls past the end of the script return no
// token.
func (s *Server) ScriptPolls(tokens ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pollTokens = append([]string(nil), tokens...)
	s.polls = 0
}

// Polls returns how many times the poll route was hit.
func (s *Server) Polls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.polls
}

// SetResources sets the payload of the resources route.
func (s *Server) SetResources(v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources = v
}

// SetUser sets the payload of the user route.
func (s *Server) SetUser(v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = v
}

// SetMediaProviders sets the payload of the media providers route.
func (s *Server) SetMediaProviders(v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.providers = v
}

// Fail makes route answer with status and a raw body. A zero status clears
// the failure.
func (s *Server) Fail(route string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, route)
		return
	}
	s.failures[route] = failure{status: status, body: body}
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// LastRequest returns the most recent request for path.
func (s *Server) LastRequest(path string) (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.requests) - 1; i >= 0; i-- {
		if s.requests[i].Path == path {
			return s.requests[i], true
		}
	}
	return Request{}, false
}

// ErrorBody renders a plex.tv error envelope. A zero status omits the
// status field.
func ErrorBody(code, status int, message string) string {
	item := map[string]any{"code": code, "message": message}
	if status != 0 {
		item["status"] = status
	}
	raw, _ := json.Marshal(map[string]any{"errors": []any{item}})
	return string(raw)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) guard(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		fail, ok := s.failures[route]
		if ok && route == RoutePollPin {
			s.polls++
		}
		s.mu.Unlock()
		if ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(fail.status)
			_, _ = w.Write([]byte(fail.body))
			return
		}
		next(w, r)
	}
}

func (s *Server) createPin(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	payload := s.pinPayload(nil)
	s.mu.Unlock()
	payload["trusted"] = r.URL.Query().Get("strong") == "true"
	writeJSON(w, http.StatusCreated, payload)
}

func (s *Server) pollPin(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	s.mu.Lock()
	defer s.mu.Unlock()
	if id != s.pinID {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(ErrorBody(1020, 0, "Code not found or expired")))
		return
	}
	var token *string
	if s.polls < len(s.pollTokens) && s.pollTokens[s.polls] != "" {
		value := s.pollTokens[s.polls]
		token = &value
	}
	s.polls++
	writeJSON(w, http.StatusOK, s.pinPayload(token))
}

func (s *Server) pinPayload(token *string) map[string]any {
	return map[string]any{
		"id":               s.pinID,
		"code":             s.pinCode,
		"product":          "Maple for Plex",
		"trusted":          false,
		"clientIdentifier": "Maple_1_0",
		"location":         map[string]any{"code": "US", "country": "United States", "city": "Springfield"},
		"createdAt":        "2026-10-17T10:00:00Z",
		"expiresAt":        "2026-10-17T10:30:00Z",
		"expiresIn":        1800,
		"authToken":        token,
		"newRegistration":  nil,
	}
}

func (s *Server) serveValue(get func() any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		value := get()
		s.mu.Unlock()
		if raw, ok := value.(string); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(raw))
			return
		}
		writeJSON(w, http.StatusOK, value)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
