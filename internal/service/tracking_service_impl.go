package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/tally/internal/db"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/repository"
)

type trackingService struct {
	sessions repository.SessionRepo
	prefs    repository.PreferenceRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewTrackingService(sessions repository.SessionRepo, prefs repository.PreferenceRepo, uow db.UnitOfWork, observers ...UseCaseObserver) TrackingService {
	return &trackingService{
		sessions: sessions,
		prefs:    prefs,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Insert writes the new session and the last-used-user preference in one
// transaction.
func (s *trackingService) Insert(ctx context.Context, session *domain.TimeSession) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user": session.UserName, "client": session.ClientName}
	defer func() {
		if session.ID != "" {
			fields["session_id"] = session.ID
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "start-session",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteSessionRepo(tx).Insert(ctx, session); err != nil {
			return err
		}
		return repository.NewSQLitePreferenceRepo(tx).Set(ctx, repository.PrefLastUser, session.UserName)
	})
	if err != nil {
		session.ID = ""
		return persistenceErr("starting session", err)
	}
	return nil
}

func (s *trackingService) Close(ctx context.Context, id string, end time.Time, durationMinutes float64) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "stop-session",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil || errors.Is(err, domain.ErrNotFound),
			Err:       err,
			Fields:    map[string]any{"session_id": id, "duration_minutes": durationMinutes},
		})
	}()

	return persistenceErr("stopping session", s.sessions.Close(ctx, id, end, durationMinutes))
}

func (s *trackingService) FindOpen(ctx context.Context, user string) (*domain.TimeSession, error) {
	open, err := s.sessions.FindOpen(ctx, user)
	if err != nil {
		return nil, persistenceErr("finding open session", err)
	}
	return open, nil
}

// LastUser returns "" when no user has started a session yet.
func (s *trackingService) LastUser(ctx context.Context) (string, error) {
	v, err := s.prefs.Get(ctx, repository.PrefLastUser)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", persistenceErr("reading last user", err)
	}
	return v, nil
}
