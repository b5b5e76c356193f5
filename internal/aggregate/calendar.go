package aggregate

import (
	"sort"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
)

// Intensity bands a day's tracked total for calendar shading.
type Intensity string

const (
	IntensityNone     Intensity = "none"
	IntensityLight    Intensity = "<1h"
	IntensityModerate Intensity = "1-3h"
	IntensityHigh     Intensity = "3-6h"
	IntensityFull     Intensity = "6h+"
)

// IntensityFor returns the band for a day total in minutes.
func IntensityFor(minutes float64) Intensity {
	switch {
	case minutes <= 0:
		return IntensityNone
	case minutes < 60:
		return IntensityLight
	case minutes < 180:
		return IntensityModerate
	case minutes < 360:
		return IntensityHigh
	default:
		return IntensityFull
	}
}

// Day is one calendar day of a two-level aggregation.
type Day struct {
	Date         time.Time
	TotalMinutes float64
	// Top is the highest ranked secondary key, "" for an empty day.
	Top       string
	Breakdown Result
	Intensity Intensity
}

// ByDayThen groups closed sessions by the calendar day of their end time in
// loc, then by secondary within each day. Days come back in date order.
func ByDayThen(sessions []domain.TimeSession, loc *time.Location, secondary KeyFunc, policy domain.PercentPolicy) []Day {
	dayKey := ByDay(loc)
	grouped := make(map[string][]domain.TimeSession)
	var order []string
	for _, s := range sessions {
		if !s.IsClosed() {
			continue
		}
		k := dayKey(s)
		if _, ok := grouped[k]; !ok {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], s)
	}
	sort.Strings(order)

	days := make([]Day, 0, len(order))
	for _, k := range order {
		date, err := time.ParseInLocation(time.DateOnly, k, loc)
		if err != nil {
			continue
		}
		days = append(days, buildDay(date, grouped[k], secondary, policy))
	}
	return days
}

func buildDay(date time.Time, sessions []domain.TimeSession, secondary KeyFunc, policy domain.PercentPolicy) Day {
	breakdown := Aggregate(sessions, secondary, domain.UnitMinutes, policy)
	return Day{
		Date:         date,
		TotalMinutes: breakdown.TotalMinutes,
		Top:          breakdown.Top(),
		Breakdown:    breakdown,
		Intensity:    IntensityFor(breakdown.TotalMinutes),
	}
}

// MonthGrid is a month of per-day client breakdowns laid out for a
// Sunday-first calendar grid.
type MonthGrid struct {
	Month time.Time
	// LeadingBlanks is the weekday of the 1st, Sunday = 0.
	LeadingBlanks int
	Days          []Day
	TotalMinutes  float64
}

// Month builds the client calendar for the month containing month. Every day
// of the month is present, empty days included. Percentages use one decimal.
func Month(sessions []domain.TimeSession, month time.Time) MonthGrid {
	loc := month.Location()
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, loc)
	monthKey := first.Format("2006-01")
	inMonth := Filter(sessions, func(s domain.TimeSession) bool {
		return ByMonth(loc)(s) == monthKey
	})
	byDate := make(map[string]Day)
	for _, d := range ByDayThen(inMonth, loc, ByClient, domain.PercentDecimal) {
		byDate[d.Date.Format(time.DateOnly)] = d
	}

	grid := MonthGrid{Month: first, LeadingBlanks: int(first.Weekday())}
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		day, ok := byDate[d.Format(time.DateOnly)]
		if !ok {
			day = Day{Date: d, Intensity: IntensityNone,
				Breakdown: Result{Unit: domain.UnitMinutes, Policy: domain.PercentDecimal}}
		}
		grid.Days = append(grid.Days, day)
		grid.TotalMinutes += day.TotalMinutes
	}
	return grid
}

// DayBreakdown is the single-day client distribution with whole percentages.
// day's location decides which sessions fall on it.
func DayBreakdown(sessions []domain.TimeSession, day time.Time) Day {
	loc := day.Location()
	date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	key := date.Format(time.DateOnly)
	onDay := Filter(sessions, func(s domain.TimeSession) bool {
		return s.IsClosed() && ByDay(loc)(s) == key
	})
	return buildDay(date, onDay, ByClient, domain.PercentWhole)
}
