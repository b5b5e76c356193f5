// Package aggregate turns closed time sessions into ranked, normalized
// breakdowns. Every function here is pure: no clock, no store, no logging.
package aggregate

import (
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
)

// KeyFunc maps a closed session to its grouping key.
type KeyFunc func(s domain.TimeSession) string

// Bucket is one group of an aggregation result.
type Bucket struct {
	Key string
	// Minutes is the raw, unrounded sum used for ranking and percentages.
	Minutes float64
	// Value is Minutes expressed in the requested display unit.
	Value      float64
	Percentage float64
	Sessions   int
}

// Result is a ranked list of buckets produced by one aggregation call.
type Result struct {
	Buckets      []Bucket
	TotalMinutes float64
	Unit         domain.TimeUnit
	Policy       domain.PercentPolicy
}

// Top returns the highest ranked key, or "" when the result is empty.
func (r Result) Top() string {
	if len(r.Buckets) == 0 {
		return ""
	}
	return r.Buckets[0].Key
}

// Aggregate groups the closed sessions by key, converts totals to unit and
// ranks them by raw minutes descending. Ties keep first-appearance order.
// Open sessions are dropped before grouping.
func Aggregate(sessions []domain.TimeSession, key KeyFunc, unit domain.TimeUnit, policy domain.PercentPolicy) Result {
	res := Result{Unit: unit, Policy: policy}
	index := make(map[string]int)

	for i := range sessions {
		s := sessions[i]
		if !s.IsClosed() {
			continue
		}
		k := key(s)
		pos, ok := index[k]
		if !ok {
			pos = len(res.Buckets)
			index[k] = pos
			res.Buckets = append(res.Buckets, Bucket{Key: k})
		}
		res.Buckets[pos].Minutes += s.Minutes()
		res.Buckets[pos].Sessions++
		res.TotalMinutes += s.Minutes()
	}

	sort.SliceStable(res.Buckets, func(i, j int) bool {
		return res.Buckets[i].Minutes > res.Buckets[j].Minutes
	})

	for i := range res.Buckets {
		b := &res.Buckets[i]
		b.Value = ConvertMinutes(b.Minutes, unit)
		b.Percentage = Percent(b.Minutes, res.TotalMinutes, policy)
	}
	return res
}

// ConvertMinutes rounds minutes for display: whole minutes, or hours with
// one decimal place.
func ConvertMinutes(minutes float64, unit domain.TimeUnit) float64 {
	if unit == domain.UnitHours {
		return math.Round(minutes/60*10) / 10
	}
	return math.Round(minutes)
}

// Percent returns part's share of total under policy. A zero total yields 0.
func Percent(part, total float64, policy domain.PercentPolicy) float64 {
	if total <= 0 {
		return 0
	}
	p := part / total * 100
	if policy == domain.PercentDecimal {
		return math.Round(p*10) / 10
	}
	return math.Round(p)
}

// ByClient groups by client name.
func ByClient(s domain.TimeSession) string { return s.ClientName }

// ByUser groups by user name.
func ByUser(s domain.TimeSession) string { return s.UserName }

// ByProjectType groups by project type.
func ByProjectType(s domain.TimeSession) string { return s.ProjectType }

// ByDay groups by the calendar day of the session's end time in loc.
func ByDay(loc *time.Location) KeyFunc {
	return func(s domain.TimeSession) string {
		if s.EndTime == nil {
			return ""
		}
		return s.EndTime.In(loc).Format(time.DateOnly)
	}
}

// ByMonth groups by the calendar month of the session's end time in loc.
func ByMonth(loc *time.Location) KeyFunc {
	return func(s domain.TimeSession) string {
		if s.EndTime == nil {
			return ""
		}
		return s.EndTime.In(loc).Format("2006-01")
	}
}

// Filter returns the sessions for which keep reports true.
func Filter(sessions []domain.TimeSession, keep func(domain.TimeSession) bool) []domain.TimeSession {
	out := make([]domain.TimeSession, 0, len(sessions))
	for _, s := range sessions {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

// ForUser keeps sessions owned by user.
func ForUser(user string) func(domain.TimeSession) bool {
	return func(s domain.TimeSession) bool { return s.UserName == user }
}

// ForClient keeps sessions tagged with client.
func ForClient(client string) func(domain.TimeSession) bool {
	return func(s domain.TimeSession) bool { return s.ClientName == client }
}
