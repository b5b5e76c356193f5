package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tally/internal/aggregate"
	"github.com/alexanderramin/tally/internal/contract"
)

const reportShareBarWidth = 12

// FormatReport renders the client, user and project type breakdowns of a
// report as three ranked tables.
func FormatReport(resp *contract.ReportResponse) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s\n\n",
		Bold(resp.Filter.Label()),
		Dim(fmt.Sprintf("%s → %s",
			resp.Window.Start.Format("Jan 2 15:04"),
			resp.Window.End.Format("Jan 2 15:04")))))

	if resp.SessionCount == 0 {
		b.WriteString(Dim("No completed sessions in this window.") + "\n")
		return RenderBox("Report", b.String())
	}

	b.WriteString(Header("By client") + "\n")
	b.WriteString(formatBreakdown("CLIENT", resp.ByClient))
	b.WriteString("\n")
	b.WriteString(Header("By user") + "\n")
	b.WriteString(formatBreakdown("USER", resp.ByUser))
	b.WriteString("\n")
	b.WriteString(Header("By project type") + "\n")
	b.WriteString(formatBreakdown("TYPE", resp.ByProjectType))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%s %s across %d sessions\n",
		Dim("Total:"), Bold(FormatDuration(resp.TotalMinutes)), resp.SessionCount))

	return RenderBox("Report", b.String())
}

func formatBreakdown(keyHeader string, res aggregate.Result) string {
	if len(res.Buckets) == 0 {
		return Dim("  (none)") + "\n"
	}
	headers := []string{keyHeader, "TIME", "SHARE", "SESSIONS"}
	rows := make([][]string, 0, len(res.Buckets))
	for i, bk := range res.Buckets {
		key := StyleFg.Render(bk.Key)
		if i == 0 {
			key = Bold(bk.Key)
		}
		rows = append(rows, []string{
			key,
			FormatValue(bk.Value, res.Unit),
			RenderShare(bk.Percentage, reportShareBarWidth),
			Dim(fmt.Sprintf("%d", bk.Sessions)),
		})
	}
	return RenderTable(headers, rows, 1, 3)
}
