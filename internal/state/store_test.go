package state

import (
	"errors"
	"testing"
	"time"
)

func TestStore_LoginLifecycle(t *testing.T) {
	var s Store

	if got := s.Snapshot().Login; got != LoggedOut {
		t.Fatalf("initial Login = %v, want logged out", got)
	}

	before := time.Now()
	s.BeginLogin("https://app.plex.tv/auth#?code=ABCD", "ABCD")
	snap := s.Snapshot()
	if snap.Login != LoggingIn || snap.PinCode != "ABCD" || snap.LinkURL == "" {
		t.Fatalf("after BeginLogin = %+v", snap)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}

	s.RecordError(errors.New("transient"))
	s.CompleteLogin("Jane")
	snap = s.Snapshot()
	if snap.Login != LoggedIn || snap.Account != "Jane" {
		t.Fatalf("after CompleteLogin = %+v", snap)
	}
	if snap.PinCode != "" || snap.LinkURL != "" || snap.LastError != nil {
		t.Fatalf("CompleteLogin left pending data: %+v", snap)
	}
}

func TestStore_LogoutKeepsLastError(t *testing.T) {
	var s Store
	s.CompleteLogin("Jane")
	s.SetServers([]Server{{Name: "Den"}})
	cause := errors.New("unauthorized")
	s.RecordError(cause)

	s.Logout()
	snap := s.Snapshot()
	if snap.Login != LoggedOut || snap.Account != "" || snap.Servers != nil {
		t.Fatalf("after Logout = %+v", snap)
	}
	if !errors.Is(snap.LastError, cause) {
		t.Fatalf("LastError = %v, want %v", snap.LastError, cause)
	}
}

func TestStore_AbandonLoginOnlyWhilePending(t *testing.T) {
	var s Store
	s.CompleteLogin("Jane")
	s.AbandonLogin()
	if got := s.Snapshot().Login; got != LoggedIn {
		t.Fatalf("AbandonLogin changed %v", got)
	}

	s.BeginLogin("u", "c")
	s.AbandonLogin()
	if snap := s.Snapshot(); snap.Login != LoggedOut || snap.PinCode != "" {
		t.Fatalf("after AbandonLogin = %+v", snap)
	}
}

func TestStore_SnapshotClonesServers(t *testing.T) {
	var s Store
	s.SetServers([]Server{{Name: "Den", Libraries: []string{"Movies"}}})

	snap := s.Snapshot()
	snap.Servers[0].Name = "changed"
	snap.Servers[0].Libraries[0] = "changed"

	again := s.Snapshot()
	if again.Servers[0].Name != "Den" || again.Servers[0].Libraries[0] != "Movies" {
		t.Fatalf("Snapshot should clone servers; got %+v", again.Servers[0])
	}
}

func TestLoginState_String(t *testing.T) {
	tests := map[LoginState]string{
		LoggedOut:     "logged out",
		LoggingIn:     "logging in",
		LoggedIn:      "logged in",
		LoginState(9): "LoginState(9)",
	}
	for state, want := range tests {
		if got := state.String(); got != want {
			t.Fatalf("String() = %q, want %q", got, want)
		}
	}
}
