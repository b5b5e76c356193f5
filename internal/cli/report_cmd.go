package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/contract"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	var unit, percent, forUser, forClient string
	filter := newWindowFlag(domain.FilterToday)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Time per client, user and project type over a window",
		Long: `Time per client, user and project type over a window.

Windows: today, yesterday, 7days, 30days, 365days.
--user and --client narrow the project type breakdown only.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.NewReportRequest()
			req.Filter = filter.filter
			req.Unit = domain.TimeUnit(unit)
			req.Percent = domain.PercentPolicy(percent)
			req.ForUser = forUser
			req.ForClient = forClient

			resp, err := app.Report.Report(context.Background(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatReport(resp))
			return nil
		},
	}

	cmd.Flags().Var(filter, "window", "Reporting window: today, yesterday, 7days, 30days or 365days")
	cmd.Flags().StringVar(&unit, "unit", string(domain.UnitHours), "Display unit: hours or minutes")
	cmd.Flags().StringVar(&percent, "percent", string(domain.PercentDecimal), "Percent rounding: decimal or whole")
	cmd.Flags().StringVar(&forUser, "user", "", "Narrow project types to one user")
	cmd.Flags().StringVar(&forClient, "client", "", "Narrow project types to one client")

	return cmd
}
