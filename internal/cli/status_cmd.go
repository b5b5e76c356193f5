package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	var userFlag string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the running session of a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := resolveUser(ctx, app, userFlag)
			if err != nil {
				return err
			}
			s, err := app.Tracking.FindOpen(ctx, user)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSessionStatus(user, s, time.Now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&userFlag, "user", "", "User name (default: TALLY_USER or last user)")

	return cmd
}
