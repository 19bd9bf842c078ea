package plextv

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func status(v uint32) *uint32 { return &v }

func TestResolveError_CompositeKeys(t *testing.T) {
	tests := []struct {
		name string
		wire WireError
		want APIError
	}{
		{"unauthorized", WireError{Code: 1001, Status: status(401)}, Unauthorized},
		{"client id missing", WireError{Code: 1000, Status: status(400)}, ClientIdentifierMissing},
		{"rate limit", WireError{Code: 1003, Status: status(429)}, OverRateLimit},
		{"internal", WireError{Code: 1007, Status: status(500)}, InternalServerError},
		{"code expired", WireError{Code: 1069, Status: status(422)}, CodeExpired},
		{"pin bare code", WireError{Code: 1020}, PinNotFoundOrExpired},
		{"same code other status", WireError{Code: 1020, Status: status(422)}, InvalidCSR},
		{"not found", WireError{Code: 1002, Status: status(404)}, NotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveError(tt.wire)
			if !ok {
				t.Fatalf("ResolveError(%+v) not recognized", tt.wire)
			}
			if got != tt.want {
				t.Fatalf("ResolveError(%+v) = %s, want %s", tt.wire, got.Name(), tt.want.Name())
			}
		})
	}
}

func TestResolveError_EveryCatalogKeyRoundTrips(t *testing.T) {
	for key, info := range apiErrorCatalog {
		got, ok := ResolveError(WireError{Code: uint32(key)})
		if !ok || got != key {
			t.Fatalf("catalog key %d (%s) did not resolve to itself", uint32(key), info.name)
		}
		if key.Name() != info.name {
			t.Fatalf("Name() = %q, want %q", key.Name(), info.name)
		}
		if key.Error() == "" {
			t.Fatalf("%s has empty message", info.name)
		}
	}
}

func TestResolveError_UnknownKey(t *testing.T) {
	if _, ok := ResolveError(WireError{Code: 9999, Status: status(418)}); ok {
		t.Fatal("unknown key was recognized")
	}
	if _, ok := ResolveError(WireError{Code: 1001}); ok {
		t.Fatal("bare 1001 without status should not resolve")
	}
}

func TestResolveError_KeyDoesNotWrap(t *testing.T) {
	// In 32 bits this product wraps around to 1020 (PinNotFoundOrExpired).
	wire := WireError{Code: 510 + 1<<31, Status: status(2)}
	if got, want := wire.Key(), uint64(510+1<<31)*2; got != want {
		t.Fatalf("Key() = %d, want %d", got, want)
	}
	if got, ok := ResolveError(wire); ok {
		t.Fatalf("ResolveError = %v, want unrecognized", got)
	}
}

func TestAPIError_UnknownValueFormatting(t *testing.T) {
	unknown := APIError(7)
	if !strings.Contains(unknown.Error(), "7") {
		t.Fatalf("Error() = %q, want code in message", unknown.Error())
	}
	if unknown.Name() != "APIError(7)" {
		t.Fatalf("Name() = %q", unknown.Name())
	}
}

func TestAPIErrors_ContainsAndString(t *testing.T) {
	errs := APIErrors{Unauthorized, OverRateLimit}
	if !errs.Contains(OverRateLimit) {
		t.Fatal("Contains(OverRateLimit) = false")
	}
	if errs.Contains(NotFound) {
		t.Fatal("Contains(NotFound) = true")
	}
	if got := errs.String(); got != "Unauthorized, OverRateLimit" {
		t.Fatalf("String() = %q", got)
	}
}

func TestRequestError_UnwrapsThroughWrapping(t *testing.T) {
	base := &RequestError{Kind: KindAPI, Method: "GET", Path: "/api/v2/user", Status: 401, Errors: APIErrors{Unauthorized}}
	wrapped := fmt.Errorf("refresh servers: %w", base)

	if !IsUnauthorized(wrapped) {
		t.Fatal("IsUnauthorized(wrapped) = false")
	}
	if errors.Is(wrapped, NotFound) {
		t.Fatal("errors.Is(wrapped, NotFound) = true")
	}
	var reqErr *RequestError
	if !errors.As(wrapped, &reqErr) || reqErr.Status != 401 {
		t.Fatalf("errors.As did not recover RequestError: %v", reqErr)
	}
}

func TestRequestError_MessagesByKind(t *testing.T) {
	cause := errors.New("connection refused")
	tests := []struct {
		err  *RequestError
		want string
	}{
		{&RequestError{Kind: KindSend, Method: "GET", Path: "/x", Err: cause}, "send request: connection refused"},
		{&RequestError{Kind: KindDecode, Method: "GET", Path: "/x", Err: cause}, "decode response"},
		{&RequestError{Kind: KindAPI, Method: "GET", Path: "/x", Errors: APIErrors{NotFound}}, "NotFound"},
		{&RequestError{Kind: KindAPI, Method: "GET", Path: "/x", Status: 418, Unrecognized: []WireError{{Code: 1}}}, "1 unrecognized"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); !strings.Contains(got, tt.want) {
			t.Fatalf("%s error = %q, want substring %q", tt.err.Kind, got, tt.want)
		}
	}
	if !errors.Is(tests[0].err, cause) {
		t.Fatal("send error does not unwrap to cause")
	}
}
