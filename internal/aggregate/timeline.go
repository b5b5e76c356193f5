package aggregate

import (
	"sort"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
)

const (
	timelineFirstHour = 9
	timelineLastHour  = 17
	timelineMinSpan   = 4
)

// Timeline is the per-client view of one day: who worked when.
type Timeline struct {
	Client    string
	Date      time.Time
	Sessions  []domain.TimeSession
	Users     []string
	StartHour int
	EndHour   int
}

// ClientTimeline collects the client's closed sessions ending on day (in
// day's location), ordered by start time. The hour range hugs the data with
// one hour of padding, clamped to 09-17, and spans at least four hours
// where the clamp allows.
func ClientTimeline(sessions []domain.TimeSession, day time.Time, client string) Timeline {
	loc := day.Location()
	date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	key := date.Format(time.DateOnly)
	dayKey := ByDay(loc)

	tl := Timeline{Client: client, Date: date}
	seen := make(map[string]bool)
	for _, s := range sessions {
		if !s.IsClosed() || s.ClientName != client || dayKey(s) != key {
			continue
		}
		tl.Sessions = append(tl.Sessions, s)
		if !seen[s.UserName] {
			seen[s.UserName] = true
			tl.Users = append(tl.Users, s.UserName)
		}
	}
	sort.SliceStable(tl.Sessions, func(i, j int) bool {
		return tl.Sessions[i].StartTime.Before(tl.Sessions[j].StartTime)
	})
	sort.Strings(tl.Users)
	tl.StartHour, tl.EndHour = hourRange(tl.Sessions, loc)
	return tl
}

func hourRange(sessions []domain.TimeSession, loc *time.Location) (int, int) {
	if len(sessions) == 0 {
		return timelineFirstHour, timelineLastHour
	}
	minHour, maxHour := 24, 0
	for _, s := range sessions {
		minHour = min(minHour, s.StartTime.In(loc).Hour())
		maxHour = max(maxHour, s.EndTime.In(loc).Hour())
	}
	start := max(timelineFirstHour, minHour-1)
	end := min(timelineLastHour, maxHour+1)
	if end-start < timelineMinSpan {
		mid := (start + end) / 2
		start = max(timelineFirstHour, mid-timelineMinSpan/2)
		end = min(timelineLastHour, mid+timelineMinSpan/2)
	}
	return start, end
}

// Position maps t to a 0-100 offset within the timeline's hour range.
func (tl Timeline) Position(t time.Time) float64 {
	local := t.In(tl.Date.Location())
	hours := float64(local.Hour()) + float64(local.Minute())/60
	span := float64(tl.EndHour - tl.StartHour)
	switch {
	case span <= 0 || hours < float64(tl.StartHour):
		return 0
	case hours > float64(tl.EndHour):
		return 100
	}
	return (hours - float64(tl.StartHour)) / span * 100
}
