package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/maple/internal/state"
)

// renderLoginScreen shows either the link prompt or the pending pin.
func (m Model) renderLoginScreen() string {
	styles := m.theme.Styles()
	var b strings.Builder

	switch m.loginState {
	case state.LoggingIn:
		b.WriteString(styles.Text.Render(m.spinner.View() + " Waiting for you to confirm this device"))
		b.WriteString("\n\n")
		if m.pending.Code != "" {
			b.WriteString(styles.MutedText.Render("Code"))
			b.WriteString("\n")
			b.WriteString(styles.Code.Render(m.pending.Code))
			if !m.pending.ExpiresAt.IsZero() {
				b.WriteString("  ")
				b.WriteString(styles.FaintText.Render("expires " + m.pending.ExpiresAt.Local().Format("15:04")))
			}
			b.WriteString("\n\n")
		}
		if m.pending.URL != "" {
			b.WriteString(styles.MutedText.Render("A browser window should have opened. If not, visit:"))
			b.WriteString("\n")
			b.WriteString(styles.AccentText.Render(truncateMiddle(m.pending.URL, max(m.width-8, 20))))
		}
	default:
		b.WriteString(styles.Text.Bold(true).Render("Link Maple with your Plex account"))
		b.WriteString("\n\n")
		b.WriteString(styles.MutedText.Render("Press enter to start. You will confirm the link in your browser."))
		if m.lastErr != nil {
			b.WriteString("\n\n")
			b.WriteString(styles.DangerText.Render(m.lastErr.Error()))
		}
	}

	box := styles.Box.Padding(1, 3).Render(b.String())
	return lipgloss.Place(m.width, max(m.height-2, 1), lipgloss.Center, lipgloss.Center, box)
}

// renderMainScreen shows the server sidebar next to the selected server's
// details.
func (m Model) renderMainScreen() string {
	contentHeight := max(m.height-2, 3)
	sidebar := m.renderSidebar(contentHeight)
	details := m.theme.Styles().Box.
		Width(max(m.width-sidebarWidth-2, 10)).
		Height(contentHeight - 2).
		Render(m.detailViewport.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, details)
}

func (m Model) renderSidebar(height int) string {
	styles := m.theme.Styles()
	inner := sidebarWidth - 2

	var lines []string
	if len(m.items) == 0 {
		lines = append(lines, styles.MutedText.Render("No servers"))
	}
	for pos, item := range m.items {
		title := item.Title
		if item.IsSubmenu {
			title = "  └ " + title
		}
		marker := "  "
		if item.Index == m.highlighted {
			marker = "▸ "
		}
		line := padRight(truncate(marker+title, inner), inner)
		switch {
		case pos == m.cursor:
			lines = append(lines, styles.Selected.Render(line))
		case item.IsSubmenu:
			lines = append(lines, styles.MutedText.Render(line))
		default:
			lines = append(lines, styles.Text.Render(line))
		}
	}

	return styles.Box.
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Width(inner).
		Height(height - 2).
		Render(strings.Join(lines, "\n"))
}

// updateDetailViewport re-renders the selected server's details.
func (m *Model) updateDetailViewport() {
	if m.detailViewport.Width == 0 {
		return
	}
	m.detailViewport.SetContent(m.renderDetails())
	m.detailViewport.GotoTop()
}

func (m Model) renderDetails() string {
	styles := m.theme.Styles()
	if m.details == nil {
		return styles.MutedText.Render("Select a server and press enter.")
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(m.details.Server))
	if m.details.Relay {
		b.WriteString("  ")
		b.WriteString(styles.WarningText.Render("relay"))
	}
	b.WriteString("\n\n")

	if len(m.details.Providers) == 0 {
		b.WriteString(styles.MutedText.Render("No media providers"))
		return b.String()
	}
	for _, provider := range m.details.Providers {
		b.WriteString(styles.AccentText.Render(provider.Title))
		if provider.Types != "" {
			b.WriteString(styles.FaintText.Render(" (" + provider.Types + ")"))
		}
		b.WriteString("\n")
		for _, feature := range provider.Features {
			b.WriteString(styles.MutedText.Render(fmt.Sprintf("  %s", feature.Type)))
			b.WriteString("\n")
			for _, dir := range feature.Directories {
				b.WriteString(styles.Text.Render("    " + dir.Title))
				if dir.Type != "" {
					b.WriteString(styles.FaintText.Render("  " + dir.Type))
				}
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
