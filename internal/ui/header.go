package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/maple/internal/state"
)

const logo = "MAPLE"

// renderHeader renders the top status line: logo, login state, account and
// server count.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	compact := m.width < LayoutCompactWidth

	parts := []string{styles.Logo.Render(logo), m.renderLoginBadge(styles)}
	if m.account != "" {
		parts = append(parts, styles.Text.Render(m.account))
	}
	if m.loginState == state.LoggedIn {
		parts = append(parts, styles.MutedText.Render(fmt.Sprintf("%d server(s)", len(m.snapshot.Servers))))
	}
	if !compact && !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts, styles.FaintText.Render("updated "+m.snapshot.LastUpdated.Format("15:04:05")))
	}
	if m.lastErr != nil {
		limit := max(m.width/3, 20)
		parts = append(parts, styles.DangerText.Render(truncate(m.lastErr.Error(), limit)))
	}
	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderLoginBadge(styles Styles) string {
	switch m.loginState {
	case state.LoggedIn:
		return styles.SuccessText.Render("● " + m.loginState.String())
	case state.LoggingIn:
		return styles.WarningText.Render(m.spinner.View() + " " + m.loginState.String())
	default:
		return styles.MutedText.Render("○ " + m.loginState.String())
	}
}

// renderCommandBar renders the short key help.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	h := help.New()
	h.Width = m.width
	h.Styles.ShortKey = styles.WarningText
	h.Styles.ShortDesc = styles.MutedText
	h.Styles.ShortSeparator = styles.FaintText
	return lipgloss.NewStyle().Width(m.width).Render(h.ShortHelpView(m.keys.ShortHelp()))
}
