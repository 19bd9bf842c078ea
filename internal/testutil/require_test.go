package testutil

import (
	"fmt"
	"testing"
	"time"
)

type fakeT struct {
	failed string
}

func (f *fakeT) Helper() {}

func (f *fakeT) Fatalf(format string, args ...any) {
	f.failed = fmt.Sprintf(format, args...)
	panic(f)
}

func expectFatal(t *testing.T, fn func(*fakeT)) string {
	t.Helper()
	ft := &fakeT{}
	func() {
		defer func() {
			if r := recover(); r != nil && r != ft {
				panic(r)
			}
		}()
		fn(ft)
	}()
	if ft.failed == "" {
		t.Fatal("expected Fatalf to be called")
	}
	return ft.failed
}

func TestRequireReceive(t *testing.T) {
	ch := make(chan int, 1)
	ch <- 7
	if got := RequireReceive(t, ch, time.Second, "value"); got != 7 {
		t.Fatalf("RequireReceive = %d, want 7", got)
	}

	msg := expectFatal(t, func(ft *fakeT) {
		RequireReceive(ft, make(chan int), time.Millisecond, "waiting for %s", "nothing")
	})
	if msg != "timed out after 1ms: waiting for nothing" {
		t.Fatalf("message = %q", msg)
	}

	closed := make(chan int)
	close(closed)
	expectFatal(t, func(ft *fakeT) { RequireReceive(ft, closed, time.Second) })
}

func TestRequireSendAndClosed(t *testing.T) {
	ch := make(chan string, 1)
	RequireSend(t, ch, "x", time.Second)
	if got := <-ch; got != "x" {
		t.Fatalf("sent %q, want x", got)
	}
	expectFatal(t, func(ft *fakeT) { RequireSend(ft, make(chan string), "y", time.Millisecond) })

	done := make(chan struct{})
	close(done)
	RequireClosed(t, done, time.Second)
	expectFatal(t, func(ft *fakeT) { RequireClosed(ft, make(chan struct{}), time.Millisecond) })
}

func TestDrain(t *testing.T) {
	ch := make(chan int, 3)
	ch <- 1
	ch <- 2
	if got := Drain(ch); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("Drain = %v, want [1 2]", got)
	}
	if got := Drain(ch); got != nil {
		t.Fatalf("Drain of empty channel = %v, want nil", got)
	}
}
