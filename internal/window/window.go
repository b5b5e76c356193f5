// Package window maps dashboard filter tokens to explicit time ranges.
//
// All calendar arithmetic happens in the location of the supplied "now",
// so a caller that passes time.Now() gets local-midnight boundaries.
package window

import (
	"fmt"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
)

// Window is an inclusive [Start, End] range.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Resolve returns the window for filter as seen at now.
//
// "yesterday" is the whole previous calendar day ending at 23:59:59.999,
// not a rolling 24 hours. Every other filter ends at now.
func Resolve(filter domain.TimeFilter, now time.Time) (Window, error) {
	today := StartOfDay(now)
	switch filter {
	case domain.FilterToday:
		return Window{Start: today, End: now}, nil
	case domain.FilterYesterday:
		start := today.AddDate(0, 0, -1)
		return Window{Start: start, End: EndOfDay(start)}, nil
	case domain.Filter7Days:
		return Window{Start: today.AddDate(0, 0, -7), End: now}, nil
	case domain.Filter30Days:
		return Window{Start: today.AddDate(0, 0, -30), End: now}, nil
	case domain.Filter365Days:
		return Window{Start: today.AddDate(0, 0, -365), End: now}, nil
	default:
		return Window{}, fmt.Errorf("unknown time filter %q", filter)
	}
}

// ParseFilter validates a user-supplied filter token.
func ParseFilter(s string) (domain.TimeFilter, error) {
	f := domain.TimeFilter(s)
	if !domain.ValidTimeFilters[f] {
		return "", fmt.Errorf("unknown time filter %q (want today, yesterday, 7days, 30days or 365days)", s)
	}
	return f, nil
}

// StartOfDay is local midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay is 23:59:59.999 of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// Day returns the window covering t's whole calendar day.
func Day(t time.Time) Window {
	return Window{Start: StartOfDay(t), End: EndOfDay(t)}
}

// Month returns the window covering the calendar month containing t.
func Month(t time.Time) Window {
	y, m, _ := t.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return Window{Start: first, End: EndOfDay(last)}
}
