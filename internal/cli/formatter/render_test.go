package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/tally/internal/aggregate"
	"github.com/alexanderramin/tally/internal/contract"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/testutil"
	"github.com/alexanderramin/tally/internal/timer"
	"github.com/alexanderramin/tally/internal/window"
	"github.com/stretchr/testify/assert"
)

var fmtDay = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func fmtSessions() []domain.TimeSession {
	return []domain.TimeSession{
		*testutil.NewClosedSession("alice", "IDEOLA", 120, fmtDay.Add(11*time.Hour), testutil.WithProjectType("CAROUSEL")),
		*testutil.NewClosedSession("bob", "ACME", 60, fmtDay.Add(15*time.Hour), testutil.WithProjectType("GENERAL")),
	}
}

func TestFormatReport_RendersAllBreakdowns(t *testing.T) {
	sessions := fmtSessions()
	resp := &contract.ReportResponse{
		Filter:        domain.FilterToday,
		Window:        window.Window{Start: fmtDay, End: fmtDay.Add(16 * time.Hour)},
		ByClient:      aggregate.Aggregate(sessions, aggregate.ByClient, domain.UnitHours, domain.PercentDecimal),
		ByUser:        aggregate.Aggregate(sessions, aggregate.ByUser, domain.UnitHours, domain.PercentDecimal),
		ByProjectType: aggregate.Aggregate(sessions, aggregate.ByProjectType, domain.UnitHours, domain.PercentDecimal),
		SessionCount:  2,
		TotalMinutes:  180,
	}

	out := stripANSI(FormatReport(resp))
	assert.Contains(t, out, "Today")
	assert.Contains(t, out, "BY CLIENT")
	assert.Contains(t, out, "BY USER")
	assert.Contains(t, out, "BY PROJECT TYPE")
	assert.Contains(t, out, "IDEOLA")
	assert.Contains(t, out, "CAROUSEL")
	assert.Contains(t, out, "2.0h")
	assert.Contains(t, out, "66.7%")
	assert.Contains(t, out, "3h0m across 2 sessions")
}

func TestFormatReport_Empty(t *testing.T) {
	resp := &contract.ReportResponse{Filter: domain.FilterYesterday}
	out := stripANSI(FormatReport(resp))
	assert.Contains(t, out, "Yesterday")
	assert.Contains(t, out, "No completed sessions")
}

func TestFormatMonth_ShowsEveryDayAndTopClient(t *testing.T) {
	grid := aggregate.Month(fmtSessions(), fmtDay)
	out := stripANSI(FormatMonth(&grid))

	assert.Contains(t, out, "March 2024")
	assert.Contains(t, out, "Sun")
	assert.Contains(t, out, "31")
	assert.Contains(t, out, "15 3h0m")
	assert.Contains(t, out, "IDEOLA")
	assert.Contains(t, out, "Month total:")
}

func TestFormatDay(t *testing.T) {
	day := aggregate.DayBreakdown(fmtSessions(), fmtDay)
	out := stripANSI(FormatDay(&day))
	assert.Contains(t, out, "Friday, 15 March 2024")
	assert.Contains(t, out, "67%")
	assert.Contains(t, out, "3-6h")

	empty := aggregate.DayBreakdown(nil, fmtDay)
	assert.Contains(t, stripANSI(FormatDay(&empty)), "Nothing tracked")
}

func TestFormatTimeline(t *testing.T) {
	tl := aggregate.ClientTimeline(fmtSessions(), fmtDay, "IDEOLA")
	out := stripANSI(FormatTimeline(&tl))
	assert.Contains(t, out, "IDEOLA")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "09:00-11:00")
	assert.Contains(t, out, "█")

	none := aggregate.ClientTimeline(fmtSessions(), fmtDay, "NOBODY")
	assert.Contains(t, stripANSI(FormatTimeline(&none)), "No sessions")
}

func TestFormatActive(t *testing.T) {
	now := fmtDay.Add(10 * time.Hour)
	resp := &contract.ActiveResponse{
		GeneratedAt: now,
		Users: []contract.ActiveUserView{{
			ActiveUser: domain.ActiveUser{
				SessionID: "s1", UserName: "alice", ClientName: "IDEOLA",
				ProjectType: "GENERAL", ProjectName: "SITE", StartTime: now.Add(-3661 * time.Second),
			},
			ElapsedSeconds: 3661,
		}},
	}
	out := stripANSI(FormatActive(resp))
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "01:01:01")
	assert.Contains(t, out, "1 active")

	empty := stripANSI(FormatActive(&contract.ActiveResponse{GeneratedAt: now}))
	assert.Contains(t, empty, "Nobody is tracking")
}

func TestFormatToday(t *testing.T) {
	resp := &contract.TodayResponse{UserName: "alice", Date: fmtDay, Sessions: fmtSessions()[:1], TotalMinutes: 120}
	out := stripANSI(FormatToday(resp))
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "09:00")
	assert.Contains(t, out, "11:00")
	assert.Contains(t, out, "2h0m")
}

func TestFormatStopped(t *testing.T) {
	assert.Contains(t, stripANSI(FormatStopped(nil)), "No session")
	assert.Contains(t, stripANSI(FormatStopped(&timer.StopResult{SessionID: "abc", AlreadyClosed: true})), "already closed")

	out := stripANSI(FormatStopped(&timer.StopResult{SessionID: "abc", DurationMinutes: 1.5}))
	assert.Contains(t, out, "Stopped")
	assert.Contains(t, out, "(0h1m30s)")
}

func TestFormatSessionStatus(t *testing.T) {
	s := testutil.NewTestSession("alice")
	out := stripANSI(FormatSessionStatus("alice", s, s.StartTime.Add(90*time.Second)))
	assert.Contains(t, out, "RUNNING")
	assert.Contains(t, out, "00:01:30")
	assert.Contains(t, out, "IDEOLA")

	idle := stripANSI(FormatSessionStatus("bob", nil, time.Now()))
	assert.Contains(t, idle, "no open session for bob")
}
