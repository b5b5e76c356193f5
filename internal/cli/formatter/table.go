package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const tableColGap = 2

// RenderTable renders an aligned table with a header separator line.
// Columns are as wide as their widest visible cell; ANSI styling does not
// count towards width. rightCols lists column indexes to right-align.
func RenderTable(headers []string, rows [][]string, rightCols ...int) string {
	if len(headers) == 0 {
		return ""
	}

	right := make(map[int]bool, len(rightCols))
	for _, c := range rightCols {
		right[c] = true
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(headers) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := strings.Repeat(" ", max(0, widths[i]-lipgloss.Width(cell)))
			rendered := style(cell)
			switch {
			case right[i]:
				b.WriteString(pad + rendered)
			case i < len(headers)-1:
				b.WriteString(rendered + pad)
			default:
				b.WriteString(rendered)
			}
			if i < len(headers)-1 {
				b.WriteString(strings.Repeat(" ", tableColGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })

	seps := make([]string, len(widths))
	for i, w := range widths {
		seps[i] = StyleDim.Render(strings.Repeat("─", w))
	}
	writeRow(seps, func(s string) string { return s })

	for _, row := range rows {
		writeRow(row, func(s string) string { return s })
	}

	return b.String()
}
