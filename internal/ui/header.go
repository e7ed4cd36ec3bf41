package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bookbasket/internal/basket"
)

// renderMain stacks header, status line, panes and command bar.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")

	// Header, status and command bar take one row each
	if content := m.renderContent(m.height - 3); content != "" {
		b.WriteString(content)
		b.WriteString("\n")
	}

	b.WriteString(m.renderCommandBar())
	return b.String()
}

// renderHeader shows the app name and the running basket totals.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sum := basket.Summarize(m.snapshot)

	parts := []string{
		bg.Render("bookbasket", styles.Logo),
		bg.Render(fmt.Sprintf("Basket %d", sum.Units), styles.AccentText.Bold(true)),
		bg.Render(fmt.Sprintf("Titles %d", sum.Titles), styles.Text),
		bg.Render(fmt.Sprintf("In stock %d", sum.InStock), styles.StockStyle(sum.InStock)),
		bg.Render(m.theme.Name, styles.InfoText),
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		MaxWidth(m.width).
		Render(bg.Join(parts, 2))
}

// renderStatus shows the last rejected action until a dispatch changes the
// state.
func (m Model) renderStatus() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)

	var content string
	if m.status == nil {
		content = bg.Render("Ready", styles.MutedText)
	} else {
		d := m.status
		content = bg.Join([]string{
			bg.Render(strings.ToUpper(string(d.Kind())), styles.DangerText),
			bg.Render(truncate(d.Err.Error(), max(m.width-40, 10)), styles.Text),
			bg.Render(d.At.Format("15:04:05"), styles.MutedText),
			bg.Render(shortID(d), styles.FaintText),
		}, 2)
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Background)).
		Width(m.width).
		MaxWidth(m.width).
		Render(content)
}

// renderCommandBar lists the short key help for the current pane.
func (m Model) renderCommandBar() string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Width(m.width).
		MaxWidth(m.width).
		Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

func shortID(d *basket.Diagnostic) string {
	id := d.ID.String()
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
