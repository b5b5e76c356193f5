package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/tally/internal/contract"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/repository"
	"github.com/alexanderramin/tally/internal/window"
)

type todayService struct {
	sessions repository.SessionRepo
	pageSize int
	now      func() time.Time
	observer UseCaseObserver
}

func NewTodayService(sessions repository.SessionRepo, pageSize int, observers ...UseCaseObserver) TodayService {
	return &todayService{
		sessions: sessions,
		pageSize: pageSize,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Today lists the user's sessions that ended today, earliest start first.
func (s *todayService) Today(ctx context.Context, req contract.TodayRequest) (resp *contract.TodayResponse, err error) {
	startedAt := time.Now().UTC()
	user := strings.TrimSpace(req.UserName)
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "today",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"user": user},
		})
	}()

	if user == "" {
		return nil, &domain.ValidationError{Fields: []string{"user"}}
	}

	now := nowOr(req.Now, s.now)
	w, err := window.Resolve(domain.FilterToday, now)
	if err != nil {
		return nil, err
	}
	log, err := readClosed(ctx, s.sessions, repository.ClosedQuery{Start: w.Start, End: w.End, UserName: user}, s.pageSize)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(log, func(i, j int) bool { return log[i].StartTime.Before(log[j].StartTime) })

	resp = &contract.TodayResponse{UserName: user, Date: w.Start, Sessions: log}
	for i := range log {
		resp.TotalMinutes += log[i].Minutes()
	}
	return resp, nil
}
