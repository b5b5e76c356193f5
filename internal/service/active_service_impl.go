package service

import (
	"context"
	"time"

	"github.com/alexanderramin/tally/internal/contract"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/feed"
	"github.com/alexanderramin/tally/internal/repository"
)

type activeService struct {
	sessions repository.SessionRepo
	now      func() time.Time
	observer UseCaseObserver
}

func NewActiveService(sessions repository.SessionRepo, observers ...UseCaseObserver) ActiveService {
	return &activeService{
		sessions: sessions,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *activeService) Active(ctx context.Context, req contract.ActiveRequest) (resp *contract.ActiveResponse, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		fields := map[string]any{}
		if resp != nil {
			fields["active"] = len(resp.Users)
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "active-users",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	var users []domain.ActiveUser
	users, err = feed.Snapshot(ctx, s.sessions)
	if err != nil {
		return nil, persistenceErr("listing active users", err)
	}
	return ActiveResponseAt(users, nowOr(req.Now, s.now)), nil
}

// ActiveResponseAt stamps each active user with elapsed seconds at now.
func ActiveResponseAt(users []domain.ActiveUser, now time.Time) *contract.ActiveResponse {
	resp := &contract.ActiveResponse{GeneratedAt: now, Users: make([]contract.ActiveUserView, 0, len(users))}
	for _, u := range users {
		elapsed := now.Sub(u.StartTime)
		if elapsed < 0 {
			elapsed = 0
		}
		resp.Users = append(resp.Users, contract.ActiveUserView{
			ActiveUser:     u,
			ElapsedSeconds: int64(elapsed / time.Second),
		})
	}
	return resp
}
