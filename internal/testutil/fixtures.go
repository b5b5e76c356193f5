package testutil

import (
	"time"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/google/uuid"
)

// SessionOption customizes a test session.
type SessionOption func(*domain.TimeSession)

func WithClient(c string) SessionOption {
	return func(s *domain.TimeSession) {
		s.ClientName = c
	}
}

func WithProjectType(pt string) SessionOption {
	return func(s *domain.TimeSession) {
		s.ProjectType = pt
	}
}

func WithProjectName(n string) SessionOption {
	return func(s *domain.TimeSession) {
		s.ProjectName = n
	}
}

func WithStartTime(t time.Time) SessionOption {
	return func(s *domain.TimeSession) {
		s.StartTime = t
	}
}

// ClosedAfter closes the session d after its start time.
func ClosedAfter(d time.Duration) SessionOption {
	return func(s *domain.TimeSession) {
		_ = s.Close(s.StartTime.Add(d))
	}
}

// ClosedMinutes closes the session so that it lasted exactly min minutes.
func ClosedMinutes(min float64) SessionOption {
	return ClosedAfter(time.Duration(min * float64(time.Minute)))
}

// NewTestSession builds an open session for user. Options are applied in
// order, so set the start time before closing.
func NewTestSession(user string, opts ...SessionOption) *domain.TimeSession {
	s := &domain.TimeSession{
		ID:          uuid.New().String(),
		UserName:    user,
		ClientName:  "IDEOLA",
		ProjectType: "GENERAL",
		ProjectName: "TEST PROJECT",
		StartTime:   time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewClosedSession is shorthand for a closed session ending at end and
// lasting min minutes.
func NewClosedSession(user, client string, min float64, end time.Time, opts ...SessionOption) *domain.TimeSession {
	start := end.Add(-time.Duration(min * float64(time.Minute)))
	all := append([]SessionOption{WithClient(client), WithStartTime(start)}, opts...)
	all = append(all, ClosedMinutes(min))
	return NewTestSession(user, all...)
}
