package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/contract"
	"github.com/alexanderramin/tally/internal/observability"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newActiveCmd(app *App) *cobra.Command {
	var follow bool

	cmd := &cobra.Command{
		Use:   "active",
		Short: "Who is working right now",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !follow {
				resp, err := app.Active.Active(context.Background(), contract.ActiveRequest{})
				if err != nil {
					return err
				}
				observability.SetActiveUsers(len(resp.Users))
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatActive(resp))
				return nil
			}

			if app.Feed == nil {
				return fmt.Errorf("no live feed configured")
			}
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			updates, err := app.Feed.Subscribe(ctx)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(newActiveModel(updates)).Run()
			return err
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep the view open and update it live")

	return cmd
}
