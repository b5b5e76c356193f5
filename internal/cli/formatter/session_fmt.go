package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/timer"
)

// FormatStarted confirms a newly opened session.
func FormatStarted(s *domain.TimeSession) string {
	return fmt.Sprintf("%s %s %s %s %s\n",
		StyleGreen.Render("Started"),
		Bold(s.ProjectName),
		Dim("for"),
		StyleFg.Render(s.ClientName),
		Dim(fmt.Sprintf("(%s, %s) at %s", s.ProjectType, s.UserName, ClockTime(s.StartTime.Local()))))
}

// FormatStopped reports the outcome of a stop.
func FormatStopped(res *timer.StopResult) string {
	if res == nil || res.SessionID == "" {
		return Dim("No session is running.") + "\n"
	}
	if res.AlreadyClosed {
		return fmt.Sprintf("%s %s\n",
			StyleYellow.Render("Session was already closed elsewhere."),
			TruncID(res.SessionID))
	}
	return fmt.Sprintf("%s %s %s\n",
		StyleGreen.Render("Stopped"),
		Bold(FormatDuration(res.DurationMinutes)),
		Dim(FormatDurationWithSeconds(res.DurationMinutes)))
}

// FormatSessionStatus renders the running session of a user, if any.
func FormatSessionStatus(user string, s *domain.TimeSession, now time.Time) string {
	var b strings.Builder
	if s == nil {
		b.WriteString(StateIndicator(false) + "  " + Dim(fmt.Sprintf("no open session for %s", user)) + "\n")
		return b.String()
	}
	b.WriteString(StateIndicator(true) + "  " + StyleGreen.Render(FormatClock(s.ElapsedSeconds(now))) + "\n")
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("user   "), Bold(s.UserName)))
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("client "), StyleFg.Render(s.ClientName)))
	b.WriteString(fmt.Sprintf("  %s  %s %s\n", Dim("project"), StyleFg.Render(s.ProjectName), Dim("("+s.ProjectType+")")))
	b.WriteString(fmt.Sprintf("  %s  %s %s\n", Dim("since  "), ClockTime(s.StartTime.In(now.Location())), TruncID(s.ID)))
	return b.String()
}
