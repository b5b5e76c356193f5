package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tally/internal/contract"
)

// FormatActive renders who is working right now with a live elapsed clock
// for each open session.
func FormatActive(resp *contract.ActiveResponse) string {
	var b strings.Builder

	if len(resp.Users) == 0 {
		b.WriteString(Dim("Nobody is tracking time right now.") + "\n")
	} else {
		headers := []string{"USER", "CLIENT", "PROJECT", "TYPE", "SINCE", "ELAPSED"}
		rows := make([][]string, 0, len(resp.Users))
		for _, u := range resp.Users {
			rows = append(rows, []string{
				Bold(u.UserName),
				StyleFg.Render(u.ClientName),
				StyleFg.Render(u.ProjectName),
				Dim(u.ProjectType),
				Dim(ClockTime(u.StartTime.In(resp.GeneratedAt.Location()))),
				StyleGreen.Render(FormatClock(u.ElapsedSeconds)),
			})
		}
		b.WriteString(RenderTable(headers, rows, 5))
	}

	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%d active · as of %s", len(resp.Users), resp.GeneratedAt.Format("15:04:05"))) + "\n")

	return RenderBox("Active now", b.String())
}
