// Package feed delivers "who is working now" snapshots whenever the set of
// open sessions changes. Two backends share one interface: PollFeed rereads
// the store on an interval, RedisFeed rereads it when a change is announced
// over Redis pub/sub.
package feed

import (
	"context"
	"sort"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
)

// Source lists the currently open sessions.
type Source interface {
	ListOpen(ctx context.Context) ([]*domain.TimeSession, error)
}

// ChangeKind says what happened to an open session.
type ChangeKind string

const (
	ChangeStarted ChangeKind = "started"
	ChangeStopped ChangeKind = "stopped"
)

// Change is the announcement published when a session opens or closes.
type Change struct {
	Kind      ChangeKind `json:"kind"`
	SessionID string     `json:"session_id"`
	UserName  string     `json:"user_name"`
	At        time.Time  `json:"at"`
}

// Update is one delivery to a subscriber.
type Update struct {
	Active []domain.ActiveUser
	// Change is the announcement that triggered the update, nil for polls
	// and the initial snapshot.
	Change *Change
	Err    error
}

// Feed is a subscription to open-session changes. The returned channel is
// closed when ctx is done.
type Feed interface {
	Subscribe(ctx context.Context) (<-chan Update, error)
}

// Publisher announces changes to other subscribers.
type Publisher interface {
	Publish(ctx context.Context, c Change) error
}

// NopPublisher drops every change. Poll subscribers need no announcement.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Change) error { return nil }

// Snapshot reads the open sessions as active users ordered by start time.
func Snapshot(ctx context.Context, src Source) ([]domain.ActiveUser, error) {
	open, err := src.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]domain.ActiveUser, 0, len(open))
	for _, s := range open {
		users = append(users, domain.ActiveUserFrom(s))
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].StartTime.Before(users[j].StartTime)
	})
	return users, nil
}

func sameActive(a, b []domain.ActiveUser) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].SessionID != b[i].SessionID {
			return false
		}
	}
	return true
}

func send(ctx context.Context, out chan<- Update, u Update) bool {
	select {
	case out <- u:
		return true
	case <-ctx.Done():
		return false
	}
}
