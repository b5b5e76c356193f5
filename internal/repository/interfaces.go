package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
)

var (
	ErrNotFound = domain.ErrNotFound
	ErrConflict = domain.ErrConflict
)

// ClosedQuery selects closed sessions whose end time falls in [Start, End].
// A zero Limit means no limit. UserName narrows to one user when set.
type ClosedQuery struct {
	Start    time.Time
	End      time.Time
	UserName string
	Limit    int
	Offset   int
}

// SessionRepo is the durable session store. It is the only authority on
// whether a user has an open session.
type SessionRepo interface {
	// Insert stores a new open session, assigning an ID when empty. The
	// stored start time is written back to s. Fails with ErrConflict when
	// the user already has an open session.
	Insert(ctx context.Context, s *domain.TimeSession) error
	// Close sets end time and duration on an open session. Fails with
	// ErrNotFound when the id is unknown or already closed.
	Close(ctx context.Context, id string, end time.Time, durationMinutes float64) error
	GetByID(ctx context.Context, id string) (*domain.TimeSession, error)
	// FindOpen returns the user's open session, or nil when there is none.
	FindOpen(ctx context.Context, userName string) (*domain.TimeSession, error)
	ListOpen(ctx context.Context) ([]*domain.TimeSession, error)
	// ListClosed returns closed sessions ordered by end time, newest first.
	ListClosed(ctx context.Context, q ClosedQuery) ([]*domain.TimeSession, error)
}

// PreferenceRepo stores small key/value settings such as the last used user.
type PreferenceRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
