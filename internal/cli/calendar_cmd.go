package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCalendarCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Per-day client calendars and timelines",
	}

	cmd.AddCommand(
		newCalendarMonthCmd(app),
		newCalendarDayCmd(app),
		newCalendarTimelineCmd(app),
	)

	return cmd
}

func newCalendarMonthCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Month grid of daily totals and top clients",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month := time.Now()
			if len(args) == 1 {
				parsed, err := time.ParseInLocation("2006-01", args[0], time.Local)
				if err != nil {
					return fmt.Errorf("invalid month %q: use YYYY-MM", args[0])
				}
				month = parsed
			}
			grid, err := app.Calendar.Month(context.Background(), month)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatMonth(grid))
			return nil
		},
	}
}

func newCalendarDayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "day [YYYY-MM-DD]",
		Short: "Client distribution for one day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := dayArg(args, 0)
			if err != nil {
				return err
			}
			d, err := app.Calendar.Day(context.Background(), day)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDay(d))
			return nil
		},
	}
}

func newCalendarTimelineCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "timeline CLIENT [YYYY-MM-DD]",
		Short: "One client's sessions laid out across the working day",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := dayArg(args, 1)
			if err != nil {
				return err
			}
			tl, err := app.Calendar.Timeline(context.Background(), day, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTimeline(tl))
			return nil
		},
	}
}

// dayArg parses args[i] as a local date, defaulting to today.
func dayArg(args []string, i int) (time.Time, error) {
	if len(args) <= i {
		return time.Now(), nil
	}
	d, err := time.ParseInLocation(time.DateOnly, args[i], time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", args[i])
	}
	return d, nil
}
