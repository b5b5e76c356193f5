package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/contract"
	"github.com/spf13/cobra"
)

func newTodayCmd(app *App) *cobra.Command {
	var userFlag string
	var summary bool

	cmd := &cobra.Command{
		Use:   "today",
		Short: "A user's completed sessions today",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := resolveUser(ctx, app, userFlag)
			if err != nil {
				return err
			}
			resp, err := app.Today.Today(ctx, contract.TodayRequest{UserName: user})
			if err != nil {
				return err
			}
			if summary {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.DailySummary(resp))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatToday(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&userFlag, "user", "", "User name (default: TALLY_USER or last user)")
	cmd.Flags().BoolVar(&summary, "summary", false, "Print a plain-text digest for pasting")

	return cmd
}
