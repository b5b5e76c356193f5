package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
)

// FormatClock renders seconds as zero-padded HH:MM:SS. Hours do not wrap,
// so 100 hours renders as "100:00:00". Negative input clamps to zero.
func FormatClock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatDuration renders whole minutes as "XhYm", or "Ym" under an hour.
// Fractional minutes are truncated.
func FormatDuration(minutes float64) string {
	total := int(math.Max(0, math.Trunc(minutes)))
	h := total / 60
	m := total % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh%dm", h, m)
}

// FormatDurationWithSeconds renders fractional minutes as "(XhYmZs)" with
// the sub-minute part expanded to whole seconds, truncating the remainder.
func FormatDurationWithSeconds(minutes float64) string {
	total := int64(math.Floor(math.Max(0, minutes)*60 + 1e-6))
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("(%dh%dm%ds)", h, m, s)
}

// FormatValue renders an aggregated value in its display unit.
func FormatValue(value float64, unit domain.TimeUnit) string {
	if unit == domain.UnitHours {
		return fmt.Sprintf("%.1fh", value)
	}
	return fmt.Sprintf("%.0fm", value)
}

// FormatPercent renders a percentage without trailing ".0".
func FormatPercent(p float64) string {
	s := fmt.Sprintf("%.1f", p)
	return strings.TrimSuffix(s, ".0") + "%"
}

// ClockTime renders t as HH:MM in t's location.
func ClockTime(t time.Time) string {
	return t.Format("15:04")
}
