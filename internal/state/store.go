package state

import (
	"fmt"
	"sync"
	"time"
)

// LoginState is the account's authentication state as the UI sees it.
type LoginState int

const (
	LoggedOut LoginState = iota
	LoggingIn
	LoggedIn
)

func (s LoginState) String() string {
	switch s {
	case LoggedOut:
		return "logged out"
	case LoggingIn:
		return "logging in"
	case LoggedIn:
		return "logged in"
	}
	return fmt.Sprintf("LoginState(%d)", int(s))
}

// Server summarises one reachable server for display.
type Server struct {
	Name      string
	URI       string
	Relay     bool
	Libraries []string
}

// Snapshot represents the latest authentication and discovery data.
type Snapshot struct {
	Login       LoginState
	Account     string
	LinkURL     string
	PinCode     string
	Servers     []Server
	LastError   error
	LastUpdated time.Time
}

// Store holds the shared snapshot. The controller is the only writer; any
// goroutine may read.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// BeginLogin records a pending pin.
func (s *Store) BeginLogin(linkURL, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Login = LoggingIn
	s.snapshot.LinkURL = linkURL
	s.snapshot.PinCode = code
	s.snapshot.LastUpdated = time.Now()
}

// CompleteLogin marks the account as authenticated.
func (s *Store) CompleteLogin(account string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Login = LoggedIn
	s.snapshot.Account = account
	s.snapshot.LinkURL = ""
	s.snapshot.PinCode = ""
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
}

// Logout resets the snapshot to the logged-out state. The last error is
// kept so the login screen can explain why.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	lastErr := s.snapshot.LastError
	s.snapshot = Snapshot{Login: LoggedOut, LastError: lastErr, LastUpdated: time.Now()}
}

// AbandonLogin returns a pending login to logged out, e.g. after the pin
// expired unconfirmed.
func (s *Store) AbandonLogin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot.Login != LoggingIn {
		return
	}
	s.snapshot.Login = LoggedOut
	s.snapshot.LinkURL = ""
	s.snapshot.PinCode = ""
	s.snapshot.LastUpdated = time.Now()
}

// SetServers replaces the server list wholesale.
func (s *Store) SetServers(servers []Server) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Servers = cloneServers(servers)
	s.snapshot.LastUpdated = time.Now()
}

// RecordError stores err for display; previous data is kept.
func (s *Store) RecordError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Servers = cloneServers(s.snapshot.Servers)
	return snap
}

func cloneServers(servers []Server) []Server {
	if len(servers) == 0 {
		return nil
	}
	dup := make([]Server, len(servers))
	for i, srv := range servers {
		dup[i] = srv
		dup[i].Libraries = append([]string(nil), srv.Libraries...)
	}
	return dup
}
