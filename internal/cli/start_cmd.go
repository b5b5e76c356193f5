package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/spf13/cobra"
)

func newStartCmd(app *App) *cobra.Command {
	var in domain.StartInput
	var watch, stopOnExit bool

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a session for a client project",
		Long: `Start a session for a client project.

Missing fields are asked for interactively when stdin is a terminal.
The session stays open after the command exits; stop it with "tally stop"
or attach a live clock with --watch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if in.UserName == "" {
				if u, err := resolveUser(ctx, app, ""); err == nil {
					in.UserName = u
				}
			}
			if app.interactive() {
				if form := newStartForm(&in); form != nil {
					if err := form.Run(); err != nil {
						return err
					}
				}
			}

			if !watch {
				engine := app.newEngine(nil)
				defer engine.Detach()
				s, err := engine.Start(ctx, in)
				if err != nil {
					return startError(err, in.UserName)
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStarted(s))
				return nil
			}

			m := newTrackerModel(app, strings.TrimSpace(in.UserName), stopOnExit)
			if _, err := m.engine.Start(ctx, in); err != nil {
				m.engine.Detach()
				return startError(err, in.UserName)
			}
			return runTracker(m)
		},
	}

	cmd.Flags().StringVar(&in.UserName, "user", "", "User name (default: TALLY_USER or last user)")
	cmd.Flags().StringVar(&in.ClientName, "client", "", "Client name")
	cmd.Flags().StringVar(&in.ProjectType, "type", "", "Project type")
	cmd.Flags().StringVar(&in.ProjectName, "project", "", "Project name")
	cmd.Flags().BoolVar(&watch, "watch", false, "Show a live clock after starting")
	cmd.Flags().BoolVar(&stopOnExit, "stop-on-exit", false, "With --watch, close the session when the clock exits")

	return cmd
}

func startError(err error, user string) error {
	if errors.Is(err, domain.ErrConflict) {
		return fmt.Errorf("%s already has a running session; run \"tally watch\" or \"tally stop\": %w", user, err)
	}
	return err
}
