package ui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTailLogCmd(t *testing.T) {
	if cmd := tailLogCmd(""); cmd != nil {
		t.Fatal("expected nil command for empty path")
	}

	path := filepath.Join(t.TempDir(), "maple.log")
	content := "time=x level=INFO msg=one\ntime=x level=WARN msg=two\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	msg, ok := tailLogCmd(path)().(logTailMsg)
	if !ok {
		t.Fatal("expected logTailMsg")
	}
	if msg.err != nil {
		t.Fatalf("err = %v", msg.err)
	}
	if len(msg.lines) != 2 || !strings.Contains(msg.lines[1], "msg=two") {
		t.Fatalf("lines = %q", msg.lines)
	}
}

func TestHandleLogTail(t *testing.T) {
	m := newTestModel(t, nil)
	m.handleLogTail(logTailMsg{lines: []string{"level=INFO msg=ready"}})
	if got := m.renderLogContent(); !strings.Contains(got, "msg=ready") {
		t.Fatalf("log content = %q", got)
	}

	// A failed read keeps the previous lines but reports the error.
	m.handleLogTail(logTailMsg{err: errors.New("permission denied")})
	if len(m.logState.lines) != 1 {
		t.Fatalf("lines = %q, want previous lines kept", m.logState.lines)
	}
	if got := m.renderLogContent(); !strings.Contains(got, "permission denied") {
		t.Fatalf("log content = %q, want error", got)
	}
}

func TestRenderLogContent_Empty(t *testing.T) {
	m := newTestModel(t, nil)
	if got := m.renderLogContent(); !strings.Contains(got, "No log output yet") {
		t.Fatalf("log content = %q", got)
	}
}

func TestColorizeLogLineKeepsText(t *testing.T) {
	styles := GetTheme("Nightfox").Styles()
	for _, line := range []string{
		"time=x level=TRACE msg=poll",
		"time=x level=ERROR msg=boom",
		"no level here",
	} {
		if got := colorizeLogLine(line, styles); !strings.Contains(got, line) {
			t.Fatalf("colorizeLogLine(%q) = %q", line, got)
		}
	}
}

func TestLogLevelPattern(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"time=x level=DEBUG msg=a", "DEBUG"},
		{"time=x level=TRACE msg=a", "TRACE"},
		{"time=x level=WARN+2 msg=a", "WARN"},
		{"loglevel=INFO", ""},
	}
	for _, tt := range tests {
		match := levelRe.FindStringSubmatch(tt.line)
		got := ""
		if match != nil {
			got = match[1]
		}
		if got != tt.want {
			t.Fatalf("level of %q = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestLogsKeysToggleFollow(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(t, m, keyRunes("l"))
	if m.view != ViewLogs {
		t.Fatalf("view = %v, want logs", m.view)
	}
	if !m.logState.follow {
		t.Fatal("expected follow on by default")
	}

	m, _ = update(t, m, keyRunes("f"))
	if m.logState.follow {
		t.Fatal("expected follow off after toggle")
	}
	m, _ = update(t, m, keyRunes("G"))
	if !m.logState.follow {
		t.Fatal("expected bottom to resume follow")
	}
	m, _ = update(t, m, keyRunes("k"))
	if m.logState.follow {
		t.Fatal("expected scrolling up to pause follow")
	}

	m, _ = update(t, m, keyRunes("l"))
	if m.view != ViewScreen {
		t.Fatalf("view = %v, want screen", m.view)
	}
}
