package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tally/internal/aggregate"
	"github.com/charmbracelet/lipgloss"
)

const (
	calendarCellWidth = 12
	timelineWidth     = 48
)

// FormatMonth renders a Sunday-first month grid. Each cell shows the day
// number, its total and top client, shaded by intensity.
func FormatMonth(grid *aggregate.MonthGrid) string {
	var b strings.Builder

	b.WriteString(Bold(grid.Month.Format("January 2006")) + "\n\n")

	for _, wd := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		b.WriteString(StyleHeader.Render(pad(wd, calendarCellWidth)))
	}
	b.WriteString("\n")

	cells := make([][2]string, 0, grid.LeadingBlanks+len(grid.Days))
	for i := 0; i < grid.LeadingBlanks; i++ {
		cells = append(cells, [2]string{"", ""})
	}
	for _, d := range grid.Days {
		style := IntensityStyle(d.Intensity)
		top := ""
		if d.TotalMinutes > 0 {
			top = fmt.Sprintf("%d %s", d.Date.Day(), FormatDuration(d.TotalMinutes))
		} else {
			top = fmt.Sprintf("%d", d.Date.Day())
		}
		cells = append(cells, [2]string{
			style.Render(pad(top, calendarCellWidth)),
			Dim(pad(Truncate(d.Top, calendarCellWidth-1), calendarCellWidth)),
		})
	}

	for start := 0; start < len(cells); start += 7 {
		end := start + 7
		if end > len(cells) {
			end = len(cells)
		}
		week := cells[start:end]
		for line := 0; line < 2; line++ {
			for _, c := range week {
				if c[line] == "" {
					b.WriteString(strings.Repeat(" ", calendarCellWidth))
					continue
				}
				b.WriteString(c[line])
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(intensityLegend() + "\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Month total:"), Bold(FormatDuration(grid.TotalMinutes))))

	return RenderBox("Calendar", b.String())
}

// FormatDay renders one day's client distribution.
func FormatDay(day *aggregate.Day) string {
	var b strings.Builder

	b.WriteString(Bold(LongDate(day.Date)) + "\n\n")
	if day.TotalMinutes <= 0 {
		b.WriteString(Dim("Nothing tracked on this day.") + "\n")
		return RenderBox("Day", b.String())
	}

	b.WriteString(formatBreakdown("CLIENT", day.Breakdown))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s  %s\n",
		Dim("Total:"), Bold(FormatDuration(day.TotalMinutes)),
		IntensityStyle(day.Intensity).Render(string(day.Intensity))))

	return RenderBox("Day", b.String())
}

// FormatTimeline renders a client's sessions on one day as bars placed on
// a working-hours axis.
func FormatTimeline(tl *aggregate.Timeline) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s\n\n", Bold(tl.Client), Dim(LongDate(tl.Date))))
	if len(tl.Sessions) == 0 {
		b.WriteString(Dim("No sessions for this client on this day.") + "\n")
		return RenderBox("Timeline", b.String())
	}

	loc := tl.Date.Location()
	labelWidth := 0
	for _, u := range tl.Users {
		if w := lipgloss.Width(u); w > labelWidth {
			labelWidth = w
		}
	}

	b.WriteString(strings.Repeat(" ", labelWidth+2) + timelineAxis(tl.StartHour, tl.EndHour) + "\n")

	for _, s := range tl.Sessions {
		if s.EndTime == nil {
			continue
		}
		from := int(tl.Position(s.StartTime) / 100 * timelineWidth)
		to := int(tl.Position(*s.EndTime) / 100 * timelineWidth)
		if to <= from {
			to = from + 1
		}
		if to > timelineWidth {
			to = timelineWidth
			if from >= to {
				from = to - 1
			}
		}
		bar := strings.Repeat(" ", from) +
			StyleBlue.Render(strings.Repeat("█", to-from)) +
			strings.Repeat(" ", timelineWidth-to)
		b.WriteString(fmt.Sprintf("%s  %s  %s %s\n",
			pad(s.UserName, labelWidth),
			bar,
			Dim(fmt.Sprintf("%s-%s", ClockTime(s.StartTime.In(loc)), ClockTime(s.EndTime.In(loc)))),
			StyleFg.Render(s.ProjectName)))
	}

	return RenderBox("Timeline", b.String())
}

func timelineAxis(startHour, endHour int) string {
	span := endHour - startHour
	if span <= 0 {
		return ""
	}
	axis := []rune(strings.Repeat(" ", timelineWidth+3))
	for h := startHour; h <= endHour; h++ {
		col := (h - startHour) * timelineWidth / span
		label := []rune(fmt.Sprintf("%d", h))
		for i, r := range label {
			if col+i < len(axis) {
				axis[col+i] = r
			}
		}
	}
	return Dim(strings.TrimRight(string(axis), " "))
}

func intensityLegend() string {
	bands := []aggregate.Intensity{
		aggregate.IntensityLight,
		aggregate.IntensityModerate,
		aggregate.IntensityHigh,
		aggregate.IntensityFull,
	}
	parts := make([]string, 0, len(bands))
	for _, i := range bands {
		parts = append(parts, IntensityStyle(i).Render("■ "+string(i)))
	}
	return strings.Join(parts, "  ")
}

func pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
