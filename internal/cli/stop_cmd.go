package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStopCmd(app *App) *cobra.Command {
	var userFlag string

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := resolveUser(ctx, app, userFlag)
			if err != nil {
				return err
			}

			engine := app.newEngine(nil)
			defer engine.Detach()
			if _, err := engine.Reconcile(ctx, user); err != nil {
				return err
			}
			res, err := engine.Stop(ctx)
			if err != nil {
				return fmt.Errorf("stopping session for %s: %w", user, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStopped(&res))
			return nil
		},
	}

	cmd.Flags().StringVar(&userFlag, "user", "", "User name (default: TALLY_USER or last user)")

	return cmd
}
