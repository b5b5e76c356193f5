package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderShare renders a share bar like [████░░░░] 45%. pct is 0-100.
// Larger shares get warmer colors so the dominant bucket stands out.
func RenderShare(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	if width < 2 {
		width = 2
	}

	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	empty := width - filled

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)

	var style = StyleBlue
	if pct >= 50 {
		style = StyleHeader
	} else if pct >= 25 {
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %s", style.Render(bar), FormatPercent(pct))
}
