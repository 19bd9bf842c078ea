package ui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/maple/internal/logging"
)

// logState holds the log view's buffer and scroll mode.
type logState struct {
	lines  []string
	err    error
	follow bool
}

type logTailMsg struct {
	lines []string
	err   error
}

var levelRe = regexp.MustCompile(`\blevel=(TRACE|DEBUG|INFO|WARN|ERROR)\b`)

func tailLogCmd(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		lines, err := logging.Tail(path, logTailLines)
		return logTailMsg{lines: lines, err: err}
	}
}

func (m *Model) handleLogTail(msg logTailMsg) {
	m.logState.err = msg.err
	if msg.err == nil {
		m.logState.lines = msg.lines
	}
	m.updateLogViewport()
}

// updateLogViewport updates the log viewport with current content.
func (m *Model) updateLogViewport() {
	if m.logViewport.Width == 0 {
		return
	}
	m.logViewport.SetContent(m.renderLogContent())
	if m.logState.follow {
		m.logViewport.GotoBottom()
	}
}

func (m Model) renderLogContent() string {
	styles := m.theme.Styles()
	if m.logState.err != nil {
		return styles.DangerText.Render("could not read log: " + m.logState.err.Error())
	}
	if len(m.logState.lines) == 0 {
		return styles.MutedText.Render("No log output yet")
	}
	out := make([]string, len(m.logState.lines))
	for i, line := range m.logState.lines {
		out[i] = colorizeLogLine(line, styles)
	}
	return strings.Join(out, "\n")
}

// colorizeLogLine styles a text-handler line by its level.
func colorizeLogLine(line string, styles Styles) string {
	match := levelRe.FindStringSubmatch(line)
	if match == nil {
		return styles.Text.Render(line)
	}
	return levelStyle(match[1], styles).Render(line)
}

func levelStyle(level string, styles Styles) lipgloss.Style {
	switch level {
	case "INFO":
		return styles.Text
	case "WARN":
		return styles.WarningText
	case "ERROR":
		return styles.DangerText
	case "DEBUG":
		return styles.InfoText
	case "TRACE":
		return styles.FaintText
	default:
		return styles.Text
	}
}

// renderLogs renders the log view.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	mode := "paused"
	if m.logState.follow {
		mode = "following"
	}
	status := styles.Footer.Width(m.width).Render(truncateMiddle(m.logPath, max(m.width/2, 10)) + "  " + mode)
	return m.logViewport.View() + "\n" + status
}

// handleLogsKey processes keyboard input for the log view.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleFollow):
		m.logState.follow = !m.logState.follow
		if m.logState.follow {
			m.logViewport.GotoBottom()
		}
	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		m.logState.follow = false
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		m.logState.follow = true
	case key.Matches(msg, m.keys.Down):
		m.logViewport.ScrollDown(1)
		m.logState.follow = false
	case key.Matches(msg, m.keys.Up):
		m.logViewport.ScrollUp(1)
		m.logState.follow = false
	case key.Matches(msg, m.keys.PageDown):
		m.logViewport.HalfPageDown()
		m.logState.follow = false
	case key.Matches(msg, m.keys.PageUp):
		m.logViewport.HalfPageUp()
		m.logState.follow = false
	}
	return m, nil
}
