package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/repository"
	"github.com/alexanderramin/tally/internal/testutil"
	"github.com/alexanderramin/tally/internal/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestE2E_ConcurrentStarts_AtMostOneOpen races several engines (think
// several terminals) starting a session for the same user. The store must
// accept exactly one; the rest see ErrConflict and can reconcile onto it.
func TestE2E_ConcurrentStarts_AtMostOneOpen(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	sessions := repository.NewSQLiteSessionRepo(database)
	svc := NewTrackingService(sessions, repository.NewSQLitePreferenceRepo(database), testutil.NewTestUoW(database))
	ctx := context.Background()

	const n = 6
	engines := make([]*timer.Engine, n)
	for i := range engines {
		engines[i] = timer.NewEngine(svc, timer.Options{TickInterval: time.Hour})
		t.Cleanup(engines[i].Detach)
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range engines {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engines[i].Start(ctx, startInput("alice"))
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflicts)

	open, err := sessions.ListOpen(ctx)
	require.NoError(t, err)
	assert.Len(t, open, 1)

	for _, e := range engines {
		got, err := e.Reconcile(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, open[0].ID, got.ID)
	}
}

// TestE2E_ConcurrentUsers_Independent checks that different users never
// block each other.
func TestE2E_ConcurrentUsers_Independent(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	sessions := repository.NewSQLiteSessionRepo(database)
	svc := NewTrackingService(sessions, repository.NewSQLitePreferenceRepo(database), testutil.NewTestUoW(database))
	ctx := context.Background()

	users := []string{"alice", "bob", "carol", "dan"}
	var wg sync.WaitGroup
	errs := make([]error, len(users))
	for i, u := range users {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			e := timer.NewEngine(svc, timer.Options{TickInterval: time.Hour})
			if _, err := e.Start(ctx, startInput(u)); err != nil {
				errs[i] = err
				return
			}
			_, errs[i] = e.Stop(ctx)
		}(i, u)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	open, err := sessions.ListOpen(ctx)
	require.NoError(t, err)
	assert.Empty(t, open)
}
