package timer

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{now: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// memStore is an in-memory Store with failure and blocking hooks.
type memStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.TimeSession
	seq      int

	// startSkew shifts the stored start time to prove the engine uses it.
	startSkew time.Duration

	insertErr  error
	closeErr   error
	findErr    error
	closeGate  chan struct{}
	closeEnter chan string

	inserts int
	closes  int
	finds   int
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]*domain.TimeSession)}
}

func (m *memStore) Insert(_ context.Context, s *domain.TimeSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inserts++
	if m.insertErr != nil {
		return m.insertErr
	}
	for _, existing := range m.sessions {
		if existing.UserName == s.UserName && existing.IsOpen() {
			return domain.ErrConflict
		}
	}
	m.seq++
	s.ID = "s" + strconv.Itoa(m.seq)
	s.StartTime = s.StartTime.Add(m.startSkew).Truncate(time.Millisecond)
	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

func (m *memStore) Close(_ context.Context, id string, end time.Time, dur float64) error {
	m.mu.Lock()
	gate, enter := m.closeGate, m.closeEnter
	m.closes++
	m.mu.Unlock()

	if enter != nil {
		enter <- id
	}
	if gate != nil {
		<-gate
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closeErr != nil {
		return m.closeErr
	}
	s, ok := m.sessions[id]
	if !ok || !s.IsOpen() {
		return domain.ErrNotFound
	}
	s.EndTime = &end
	s.DurationMinutes = &dur
	return nil
}

func (m *memStore) FindOpen(_ context.Context, user string) (*domain.TimeSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finds++
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, s := range m.sessions {
		if s.UserName == user && s.IsOpen() {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) get(id string) *domain.TimeSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *m.sessions[id]
	return &cp
}

func (m *memStore) counts() (inserts, closes, finds int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inserts, m.closes, m.finds
}

// seedOpen puts an open session straight into the store, as another device would.
func (m *memStore) seedOpen(user, client string, start time.Time) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	id := "s" + strconv.Itoa(m.seq)
	m.sessions[id] = &domain.TimeSession{
		ID: id, UserName: user, ClientName: client,
		ProjectType: "GENERAL", ProjectName: "SEEDED", StartTime: start,
	}
	return id
}
