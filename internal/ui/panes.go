package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bookbasket/internal/basket"
)

const summaryHeight = 6 // four rows plus borders

// renderContent lays out the catalog on the left and the basket above its
// summary on the right.
func (m Model) renderContent(height int) string {
	if height < 3 || m.width < 10 {
		return ""
	}

	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth

	catalog := m.renderList(PaneCatalog, leftWidth, height)

	sumHeight := min(summaryHeight, height/2)
	basketHeight := height - sumHeight
	var right string
	if sumHeight >= 3 {
		right = lipgloss.JoinVertical(lipgloss.Left,
			m.renderList(PaneBasket, rightWidth, basketHeight),
			m.renderSummary(rightWidth, sumHeight),
		)
	} else {
		right = m.renderList(PaneBasket, rightWidth, height)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, catalog, right)
}

// renderList renders the catalog or basket pane, scrolled so the cursor row
// is visible.
func (m Model) renderList(p Pane, width, height int) string {
	focused := m.pane == p
	items := m.items(p)
	inner := width - 2
	rows := height - 2

	var title string
	if p == PaneBasket {
		title = fmt.Sprintf("Basket (%d)", len(items))
	} else {
		title = fmt.Sprintf("Catalog (%d)", len(items))
	}

	bgColor := m.theme.SurfaceAlt
	if focused {
		bgColor = m.theme.FocusBg
	}
	styles := m.theme.Styles().WithBackground(bgColor)

	if len(items) == 0 {
		empty := "No books in the catalog"
		if p == PaneBasket {
			empty = "Your basket is empty"
		}
		return m.renderTitledBox(title, styles.MutedText.Render(truncate(empty, inner)), width, height, focused)
	}

	cursor := m.cursor[p]
	offset := 0
	if rows > 0 && cursor >= rows {
		offset = cursor - rows + 1
	}

	lines := make([]string, 0, max(rows, 0))
	for i := offset; i < len(items) && len(lines) < rows; i++ {
		selected := focused && i == cursor
		lines = append(lines, m.renderItemLine(p, items[i], inner, selected, styles))
	}
	return m.renderTitledBox(title, strings.Join(lines, "\n"), width, height, focused)
}

func (m Model) renderItemLine(p Pane, it basket.Item, width int, selected bool, styles Styles) string {
	name := fmt.Sprintf("%s by %s", it.Title, it.Author)
	var count string
	if p == PaneBasket {
		count = fmt.Sprintf("× %d", it.Quantity)
	} else {
		count = fmt.Sprintf("%d in stock", it.Quantity)
	}

	// Leave room for " - " and the count
	nameWidth := max(width-lipgloss.Width(count)-3, 1)
	name = truncate(name, nameWidth)

	if selected {
		line := name + " - " + count
		return styles.Selected.Width(width).Render(line)
	}

	countStyle := styles.Text
	if p == PaneCatalog {
		countStyle = styles.StockStyle(it.Quantity)
	}
	return styles.Text.Render(name) + styles.FaintText.Render(" - ") + countStyle.Render(count)
}

func (m Model) renderSummary(width, height int) string {
	sum := basket.Summarize(m.snapshot)
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	label := styles.MutedText.Width(10)

	value := styles.Text
	if sum.Empty() {
		value = styles.FaintText
	}

	lines := []string{
		label.Render("Titles") + value.Render(fmt.Sprint(sum.Titles)),
		label.Render("Units") + value.Render(fmt.Sprint(sum.Units)),
		label.Render("In stock") + styles.StockStyle(sum.InStock).Render(fmt.Sprint(sum.InStock)),
	}
	if sum.Empty() {
		lines = append(lines, styles.FaintText.Render("Press a to add a book"))
	}
	return m.renderTitledBox("Summary", strings.Join(lines, "\n"), width, height, false)
}

// renderTitledBox renders content in a box with the title embedded in the top
// border. Lines beyond the box height are dropped.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColor, bgColor := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColor, bgColor = m.theme.BorderFocus, m.theme.FocusBg
	}
	bg := NewBgStyle(bgColor)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	title = truncate(title, max(innerWidth-2, 0))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	top := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)
	bottom := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().
		Width(innerWidth).
		MaxWidth(innerWidth).
		Background(lipgloss.Color(bgColor))
	side := bg.Render("│", borderStyle)

	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	out := make([]string, 0, height)
	out = append(out, top)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		out = append(out, side+contentStyle.Render(line)+side)
	}
	out = append(out, bottom)
	return strings.Join(out, "\n")
}
