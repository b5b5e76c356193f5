// Package timer owns the lifecycle of one user's active time session:
// starting, ticking, stopping, exit-time cleanup and reconciliation against
// the store. The store is always authoritative; the engine only caches.
package timer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
)

const DefaultTickInterval = time.Second

// Options configures an Engine. Zero values select defaults.
type Options struct {
	Clock        Clock
	Logger       *slog.Logger
	TickInterval time.Duration
	// OnTick receives the recomputed elapsed seconds on every tick. It runs
	// on the ticker goroutine and must not block.
	OnTick func(elapsedSeconds int64)
	// OnChange is called after start, stop, adoption and clearing.
	OnChange func(Event)
}

// Engine is safe for concurrent use. Store calls are made without holding
// the internal lock.
type Engine struct {
	store    Store
	now      Clock
	logger   *slog.Logger
	interval time.Duration
	onTick   func(int64)
	onChange func(Event)

	mu      sync.Mutex
	state   State
	session *domain.TimeSession
	// gen advances whenever the engine adopts or drops a session. Store
	// completions compare against it before applying side effects.
	gen        uint64
	cancelTick context.CancelFunc
	tickDone   chan struct{}
}

func NewEngine(store Store, opts Options) *Engine {
	e := &Engine{
		store:    store,
		now:      opts.Clock,
		logger:   opts.Logger,
		interval: opts.TickInterval,
		onTick:   opts.OnTick,
		onChange: opts.OnChange,
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if e.interval <= 0 {
		e.interval = DefaultTickInterval
	}
	return e
}

// State returns the current lifecycle phase.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Session returns a copy of the cached active session, or nil.
func (e *Engine) Session() *domain.TimeSession {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return nil
	}
	cp := *e.session
	return &cp
}

// ElapsedSeconds is recomputed from the authoritative start time on every
// call, so it is never staler than the clock.
func (e *Engine) ElapsedSeconds() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil || (e.state != Running && e.state != Stopping) {
		return 0
	}
	return e.session.ElapsedSeconds(e.now())
}

// Start validates the input, inserts an open session and begins ticking.
// Validation failures never reach the store. A conflict leaves the engine
// Idle; callers should Reconcile rather than retry.
func (e *Engine) Start(ctx context.Context, in domain.StartInput) (*domain.TimeSession, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	if e.state != Idle {
		state := e.state
		e.mu.Unlock()
		return nil, fmt.Errorf("start while %s: %w", state, ErrBusy)
	}
	e.state = Starting
	e.gen++
	gen := e.gen
	e.mu.Unlock()

	s := &domain.TimeSession{
		UserName:    in.UserName,
		ClientName:  in.ClientName,
		ProjectType: in.ProjectType,
		ProjectName: in.ProjectName,
		StartTime:   e.now().UTC(),
	}
	err := e.store.Insert(ctx, s)

	e.mu.Lock()
	if e.gen != gen {
		e.mu.Unlock()
		e.logger.Warn("start completed after local state moved on",
			"user", in.UserName, "session_id", s.ID, "error", err)
		if err != nil {
			return nil, classify(err)
		}
		return s, ErrSuperseded
	}
	if err != nil {
		e.state = Idle
		e.mu.Unlock()
		return nil, fmt.Errorf("start session for %s: %w", in.UserName, classify(err))
	}

	e.state = Running
	e.session = s
	e.startTickerLocked(gen)
	e.mu.Unlock()

	e.logger.Info("session started", "user", s.UserName, "session_id", s.ID, "client", s.ClientName)
	e.emit(EventStarted, *s)
	cp := *s
	return &cp, nil
}

// Stop closes the running session. It is a no-op while Idle. A store
// NotFound means another path already closed the session and is reported
// as AlreadyClosed with a nil error.
func (e *Engine) Stop(ctx context.Context) (StopResult, error) {
	e.mu.Lock()
	switch e.state {
	case Idle:
		e.mu.Unlock()
		return StopResult{}, nil
	case Starting, Stopping:
		state := e.state
		e.mu.Unlock()
		return StopResult{}, fmt.Errorf("stop while %s: %w", state, ErrBusy)
	}
	e.state = Stopping
	s := *e.session
	gen := e.gen
	done := e.stopTickerLocked()
	e.mu.Unlock()
	waitTicker(done)

	end := e.now().UTC()
	res := StopResult{
		SessionID:       s.ID,
		EndTime:         end,
		DurationMinutes: domain.DurationMinutes(s.StartTime, end),
	}
	err := e.store.Close(ctx, s.ID, end, res.DurationMinutes)
	alreadyClosed := errors.Is(err, domain.ErrNotFound)

	e.mu.Lock()
	if e.gen != gen {
		e.mu.Unlock()
		e.logger.Warn("stop completed after local state moved on",
			"session_id", s.ID, "error", err)
		if err != nil && !alreadyClosed {
			return res, classify(err)
		}
		res.AlreadyClosed = alreadyClosed
		return res, ErrSuperseded
	}
	if err != nil && !alreadyClosed {
		e.state = Running
		e.startTickerLocked(gen)
		e.mu.Unlock()
		return StopResult{}, fmt.Errorf("stop session %s: %w", s.ID, classify(err))
	}
	e.clearLocked()
	e.mu.Unlock()

	if alreadyClosed {
		res.AlreadyClosed = true
		e.logger.Info("session already closed in store", "session_id", s.ID)
	} else {
		e.logger.Info("session stopped", "session_id", s.ID, "duration_minutes", res.DurationMinutes)
		s.EndTime = &res.EndTime
		s.DurationMinutes = &res.DurationMinutes
	}
	e.emit(EventStopped, s)
	return res, nil
}

// CloseOnExit makes one close attempt for the running session as the
// process goes away. There is no retry and failures are only logged; a
// session left open is picked up by the next Reconcile. Local state is
// dropped to Idle whatever the outcome.
func (e *Engine) CloseOnExit(ctx context.Context) {
	e.mu.Lock()
	if e.state != Running || e.session == nil {
		e.mu.Unlock()
		return
	}
	s := *e.session
	done := e.stopTickerLocked()
	e.clearLocked()
	e.mu.Unlock()
	waitTicker(done)

	end := e.now().UTC()
	dur := domain.DurationMinutes(s.StartTime, end)
	if err := e.store.Close(ctx, s.ID, end, dur); err != nil {
		e.logger.Warn("exit close failed; session stays open", "session_id", s.ID, "error", err)
		return
	}
	e.logger.Info("session closed on exit", "session_id", s.ID, "duration_minutes", dur)
	s.EndTime = &end
	s.DurationMinutes = &dur
	e.emit(EventStopped, s)
}

// Detach leaves Running without touching the store, as when the viewer
// navigates away. Any store call still in flight is treated as stale.
func (e *Engine) Detach() {
	e.mu.Lock()
	done := e.stopTickerLocked()
	if e.session != nil || e.state != Idle {
		e.clearLocked()
	}
	e.mu.Unlock()
	waitTicker(done)
}

// clearLocked moves to Idle, drops the cached session and advances gen.
func (e *Engine) clearLocked() {
	e.stopTickerLocked()
	e.state = Idle
	e.session = nil
	e.gen++
}

func (e *Engine) startTickerLocked(gen uint64) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	e.cancelTick = cancel
	e.tickDone = done
	go e.runTicker(ctx, gen, done)
}

// stopTickerLocked cancels the ticker and returns the channel closed when
// its goroutine exits. Wait on it only after releasing the lock.
func (e *Engine) stopTickerLocked() <-chan struct{} {
	if e.cancelTick == nil {
		return nil
	}
	e.cancelTick()
	done := e.tickDone
	e.cancelTick = nil
	e.tickDone = nil
	return done
}

func waitTicker(done <-chan struct{}) {
	if done != nil {
		<-done
	}
}

func (e *Engine) runTicker(ctx context.Context, gen uint64, done chan struct{}) {
	defer close(done)
	t := time.NewTicker(e.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			e.mu.Lock()
			if e.gen != gen || e.state != Running || e.session == nil {
				e.mu.Unlock()
				return
			}
			secs := e.session.ElapsedSeconds(e.now())
			e.mu.Unlock()
			if e.onTick != nil {
				e.onTick(secs)
			}
		}
	}
}

func (e *Engine) ticking() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cancelTick != nil
}

func (e *Engine) emit(kind EventKind, s domain.TimeSession) {
	if e.onChange == nil {
		return
	}
	e.onChange(Event{Kind: kind, Session: s, At: e.now().UTC()})
}

// classify keeps conflict and not-found errors as they are and files
// everything else under ErrPersistence.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrPersistence):
		return err
	default:
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
}
