package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newWatchCmd(app *App) *cobra.Command {
	var userFlag string
	var stopOnExit bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Attach a live clock to the running session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := resolveUser(ctx, app, userFlag)
			if err != nil {
				return err
			}

			m := newTrackerModel(app, user, stopOnExit)
			s, err := m.engine.Reconcile(ctx, user)
			if err != nil {
				return err
			}
			if s == nil {
				return fmt.Errorf("no open session for %s; start one with \"tally start --watch\"", user)
			}
			return runTracker(m)
		},
	}

	cmd.Flags().StringVar(&userFlag, "user", "", "User name (default: TALLY_USER or last user)")
	cmd.Flags().BoolVar(&stopOnExit, "stop-on-exit", false, "Close the session when the clock exits")

	return cmd
}
