package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/maple/internal/session"
	"github.com/five82/maple/internal/state"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		m.updateDetailViewport()
		m.updateLogViewport()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.view = ViewScreen
		return m, nil
	case key.Matches(msg, m.keys.Logs):
		if m.view == ViewLogs {
			m.view = ViewScreen
			return m, nil
		}
		m.view = ViewLogs
		return m, tailLogCmd(m.logPath)
	}

	if m.view == ViewLogs {
		return m.handleLogsKey(msg)
	}
	if m.screen == session.ScreenMain {
		return m.handleMainKey(msg)
	}
	return m.handleLoginKey(msg)
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Confirm) && m.loginState == state.LoggedOut {
		// Show the spinner right away; the controller confirms with
		// LoginStateChanged once the pin exists.
		m.loginState = state.LoggingIn
		m.lastErr = nil
		return m, m.sendIntent(session.LoginRequested{})
	}
	return m, nil
}

func (m Model) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Logout):
		return m, m.sendIntent(session.LogoutRequested{})
	case key.Matches(msg, m.keys.Confirm):
		if m.cursor < len(m.items) {
			return m, m.sendIntent(session.MenuItemSelected{Index: m.items[m.cursor].Index})
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(len(m.items)-1, 0)
	case key.Matches(msg, m.keys.PageDown):
		m.detailViewport.HalfPageDown()
	case key.Matches(msg, m.keys.PageUp):
		m.detailViewport.HalfPageUp()
	}
	return m, nil
}
