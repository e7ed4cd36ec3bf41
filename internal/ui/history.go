package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHistory renders the rejected actions found in the log file, newest
// first.
func (m Model) renderHistory() string {
	styles := m.theme.Styles()
	width := max(min(m.width-8, 100), 20)
	rows := max(m.height-10, 1)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Rejected Actions"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	switch {
	case !m.history.loaded:
		b.WriteString(styles.MutedText.Render("Reading log..."))
	case m.history.err != nil:
		b.WriteString(styles.DangerText.Render(truncate(m.history.err.Error(), width)))
	case len(m.history.records) == 0:
		b.WriteString(styles.MutedText.Render("No rejected actions logged"))
	default:
		records := m.history.records
		shown := 0
		for i := len(records) - 1; i >= 0 && shown < rows; i-- {
			rec := records[i]
			ts := rec.Time
			if len(ts) >= 19 {
				ts = ts[11:19] // HH:MM:SS of an RFC 3339 timestamp
			}
			line := fmt.Sprintf("%-20s item %-4s %s",
				strings.ToUpper(rec.Attr("kind")), rec.Attr("item_id"), rec.Attr("error"))
			b.WriteString(styles.MutedText.Render(ts + "  "))
			b.WriteString(styles.Text.Render(truncate(line, width-10)))
			b.WriteString("\n")
			shown++
		}
		if hidden := len(records) - shown; hidden > 0 {
			b.WriteString(styles.FaintText.Render(fmt.Sprintf("… %d older", hidden)))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Press any key to close"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Danger)).
		Padding(1, 2).
		Width(width)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
