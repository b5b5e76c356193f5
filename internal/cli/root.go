package cli

import (
	"io"
	"log/slog"

	"github.com/alexanderramin/tally/internal/app"
	"github.com/alexanderramin/tally/internal/config"
	"github.com/alexanderramin/tally/internal/feed"
	"github.com/alexanderramin/tally/internal/service"
	"github.com/alexanderramin/tally/internal/timer"
	"github.com/spf13/cobra"
)

// App holds references to all services and settings used by CLI commands.
type App struct {
	Tracking service.TrackingService

	// Read-side use cases.
	Report   app.ReportUseCase
	Calendar app.CalendarUseCase
	Active   app.ActiveUseCase
	Today    app.TodayUseCase

	// Feed delivers "who is working now" updates for active --follow.
	Feed feed.Feed
	// OnChange observes engine transitions; main wires metrics and the
	// change publisher through it.
	OnChange func(timer.Event)

	Config config.Config
	Logger *slog.Logger

	// IsInteractive reports whether stdin is a terminal. Nil means false.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "tally" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "tally",
		Short:         "Time tracker for client work with live session analytics",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newStartCmd(app),
		newStopCmd(app),
		newStatusCmd(app),
		newWatchCmd(app),
		newReportCmd(app),
		newCalendarCmd(app),
		newActiveCmd(app),
		newTodayCmd(app),
	)

	return root
}

func (app *App) interactive() bool {
	return app.IsInteractive != nil && app.IsInteractive()
}

func (app *App) logger() *slog.Logger {
	if app.Logger != nil {
		return app.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newEngine builds a timer engine over the tracking service with the
// app's tick interval and change hook.
func (app *App) newEngine(onTick func(int64)) *timer.Engine {
	return timer.NewEngine(app.Tracking, timer.Options{
		Logger:       app.logger(),
		TickInterval: app.Config.TickInterval,
		OnTick:       onTick,
		OnChange:     app.OnChange,
	})
}
