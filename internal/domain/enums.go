package domain

// TimeFilter is a coarse reporting window token.
type TimeFilter string

const (
	FilterToday     TimeFilter = "today"
	FilterYesterday TimeFilter = "yesterday"
	Filter7Days     TimeFilter = "7days"
	Filter30Days    TimeFilter = "30days"
	Filter365Days   TimeFilter = "365days"
)

// ValidTimeFilters is the canonical set of accepted filter tokens.
var ValidTimeFilters = map[TimeFilter]bool{
	FilterToday: true, FilterYesterday: true,
	Filter7Days: true, Filter30Days: true, Filter365Days: true,
}

// Label returns the dashboard caption for the filter.
func (f TimeFilter) Label() string {
	switch f {
	case FilterToday:
		return "Today"
	case FilterYesterday:
		return "Yesterday"
	case Filter7Days:
		return "Last 7 Days"
	case Filter30Days:
		return "Last 30 Days"
	case Filter365Days:
		return "Last Year"
	default:
		return string(f)
	}
}

// TimeUnit selects how aggregated totals are displayed.
type TimeUnit string

const (
	UnitMinutes TimeUnit = "minutes"
	UnitHours   TimeUnit = "hours"
)

// PercentPolicy selects percentage rounding for one aggregation result.
type PercentPolicy string

const (
	PercentWhole   PercentPolicy = "whole"
	PercentDecimal PercentPolicy = "decimal"
)

// DefaultProjectTypes are offered by the interactive start form.
var DefaultProjectTypes = []string{
	"VISUAL IMAGE",
	"CAROUSEL",
	"VIDEO MOTION",
	"GENERAL",
}
