package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/tally/internal/feed"
	"github.com/alexanderramin/tally/internal/observability"
	"github.com/alexanderramin/tally/internal/timer"
)

// publishTimeout bounds each change announcement.
const publishTimeout = 2 * time.Second

// NewChangeHook returns an engine OnChange hook that counts every
// transition and announces starts and stops on pub. Publish failures are
// logged; the session itself is already committed.
func NewChangeHook(pub feed.Publisher, logger *slog.Logger) func(timer.Event) {
	if pub == nil {
		pub = feed.NopPublisher{}
	}
	return func(ev timer.Event) {
		observability.RecordSessionEvent(string(ev.Kind))

		var kind feed.ChangeKind
		switch ev.Kind {
		case timer.EventStarted:
			kind = feed.ChangeStarted
		case timer.EventStopped:
			kind = feed.ChangeStopped
			if ev.Session.DurationMinutes != nil {
				observability.RecordSessionStopped(*ev.Session.DurationMinutes, ev.At)
			}
		default:
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		err := pub.Publish(ctx, feed.Change{
			Kind:      kind,
			SessionID: ev.Session.ID,
			UserName:  ev.Session.UserName,
			At:        ev.At,
		})
		if err != nil && logger != nil {
			logger.Warn("publishing session change", "kind", kind, "session_id", ev.Session.ID, "error", err)
		}
	}
}
