package app

import (
	"errors"
	"strings"
	"testing"

	"github.com/five82/maple/internal/logging"
	"github.com/five82/maple/internal/settings"
)

func TestResolveClientID_Configured(t *testing.T) {
	store := settings.NewMemoryStore()
	got, err := resolveClientID("Maple_1_0", store, logging.Discard())
	if err != nil {
		t.Fatalf("resolveClientID returned error: %v", err)
	}
	if got != "Maple_1_0" {
		t.Fatalf("client id = %q, want Maple_1_0", got)
	}
	if _, ok, _ := store.Get(clientIDSection, clientIDKey); ok {
		t.Fatal("configured id should not be stored")
	}
}

func TestResolveClientID_AutoIsStable(t *testing.T) {
	store := settings.NewMemoryStore()
	first, err := resolveClientID(autoClientID, store, logging.Discard())
	if err != nil {
		t.Fatalf("resolveClientID returned error: %v", err)
	}
	if !strings.HasPrefix(first, "maple-") || len(first) != len("maple-")+36 {
		t.Fatalf("client id = %q, want maple-<uuid>", first)
	}

	second, err := resolveClientID(autoClientID, store, logging.Discard())
	if err != nil {
		t.Fatalf("resolveClientID returned error: %v", err)
	}
	if second != first {
		t.Fatalf("second client id = %q, want %q", second, first)
	}
}

func TestResolveClientID_PersistFailureStillReturnsID(t *testing.T) {
	store := settings.NewMemoryStore()
	store.SetErr = errors.New("read-only")

	got, err := resolveClientID(autoClientID, store, logging.Discard())
	if err != nil {
		t.Fatalf("resolveClientID returned error: %v", err)
	}
	if got == "" {
		t.Fatal("expected a generated client id")
	}
}
