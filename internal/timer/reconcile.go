package timer

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/tally/internal/domain"
)

// Reconcile asks the store for user's open session and aligns local state
// with it. It never creates or closes sessions. With no store change in
// between, repeated calls return the same verdict.
//
//   - none open: the engine goes Idle and the cache is dropped.
//   - same id as cached: stays Running, refreshed from the store record.
//   - anything else: the store record is adopted and ticking restarts.
func (e *Engine) Reconcile(ctx context.Context, user string) (*domain.TimeSession, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return nil, &domain.ValidationError{Fields: []string{"user"}}
	}

	e.mu.Lock()
	if e.state == Starting || e.state == Stopping {
		state := e.state
		e.mu.Unlock()
		return nil, fmt.Errorf("reconcile while %s: %w", state, ErrBusy)
	}
	gen := e.gen
	e.mu.Unlock()

	open, err := e.store.FindOpen(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("reconcile %s: %w", user, classify(err))
	}

	e.mu.Lock()
	if e.gen != gen || e.state == Starting || e.state == Stopping {
		e.mu.Unlock()
		return nil, ErrSuperseded
	}

	if open == nil {
		had := e.session
		var done <-chan struct{}
		if had != nil {
			done = e.stopTickerLocked()
			e.clearLocked()
		}
		e.mu.Unlock()
		waitTicker(done)
		if had != nil {
			e.logger.Info("cached session no longer open; cleared", "session_id", had.ID)
			e.emit(EventCleared, *had)
		}
		return nil, nil
	}

	if e.state == Running && e.session != nil && e.session.ID == open.ID {
		refreshed := *open
		e.session = &refreshed
		e.mu.Unlock()
		cp := *open
		return &cp, nil
	}

	done := e.stopTickerLocked()
	adopted := *open
	e.state = Running
	e.session = &adopted
	e.gen++
	e.startTickerLocked(e.gen)
	e.mu.Unlock()
	waitTicker(done)

	e.logger.Info("adopted open session", "user", user, "session_id", open.ID)
	e.emit(EventAdopted, adopted)
	cp := *open
	return &cp, nil
}
