package timer

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
)

// State is the lifecycle phase of an Engine.
type State int

const (
	Idle State = iota
	Starting
	Running
	Stopping
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Starting:
		return "starting"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	default:
		return "unknown"
	}
}

var (
	// ErrBusy is returned when a call arrives while a start or stop is in flight.
	ErrBusy = errors.New("timer: transition in progress")
	// ErrSuperseded is returned when local state moved on while a store call
	// was in flight. The store write itself may have succeeded.
	ErrSuperseded = errors.New("timer: superseded by a newer transition")
)

// Store is the slice of the session store the engine writes through.
type Store interface {
	Insert(ctx context.Context, s *domain.TimeSession) error
	Close(ctx context.Context, id string, end time.Time, durationMinutes float64) error
	FindOpen(ctx context.Context, user string) (*domain.TimeSession, error)
}

// Clock returns the current instant.
type Clock func() time.Time

// EventKind names an engine state change worth announcing.
type EventKind string

const (
	EventStarted EventKind = "started"
	EventStopped EventKind = "stopped"
	EventAdopted EventKind = "adopted"
	EventCleared EventKind = "cleared"
)

// Event is delivered to Options.OnChange after a transition commits.
type Event struct {
	Kind    EventKind
	Session domain.TimeSession
	At      time.Time
}

// StopResult describes the outcome of Stop.
type StopResult struct {
	SessionID       string
	EndTime         time.Time
	DurationMinutes float64
	// AlreadyClosed is set when the store no longer had the session open.
	AlreadyClosed bool
}
