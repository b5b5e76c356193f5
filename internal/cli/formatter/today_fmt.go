package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tally/internal/contract"
)

// FormatToday renders a user's closed sessions for the current day.
func FormatToday(resp *contract.TodayResponse) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s\n\n", Bold(resp.UserName), Dim(LongDate(resp.Date))))

	if len(resp.Sessions) == 0 {
		b.WriteString(Dim("No completed sessions today.") + "\n")
		return RenderBox("Today", b.String())
	}

	headers := []string{"FROM", "TO", "DURATION", "CLIENT", "PROJECT", "TYPE"}
	rows := make([][]string, 0, len(resp.Sessions))
	for _, s := range resp.Sessions {
		end := "--:--"
		if s.EndTime != nil {
			end = ClockTime(s.EndTime.In(resp.Date.Location()))
		}
		rows = append(rows, []string{
			ClockTime(s.StartTime.In(resp.Date.Location())),
			end,
			StyleGreen.Render(FormatDuration(s.Minutes())),
			StyleFg.Render(s.ClientName),
			Bold(s.ProjectName),
			Dim(s.ProjectType),
		})
	}
	b.WriteString(RenderTable(headers, rows, 2))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Total:"), Bold(FormatDuration(resp.TotalMinutes))))

	return RenderBox("Today", b.String())
}

// DailySummary is the plain-text digest a user pastes into a chat or a
// timesheet: the user name, the long date, then one line per session.
func DailySummary(resp *contract.TodayResponse) string {
	loc := resp.Date.Location()
	lines := []string{resp.UserName, LongDate(resp.Date)}
	for _, s := range resp.Sessions {
		if s.EndTime == nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s - %s %s : (%s) %s",
			ClockTime(s.StartTime.In(loc)),
			ClockTime(s.EndTime.In(loc)),
			FormatDurationWithSeconds(s.Minutes()),
			s.ClientName,
			s.ProjectName))
	}
	return strings.Join(lines, "\n")
}
