package service

import (
	"context"
	"time"

	"github.com/alexanderramin/tally/internal/aggregate"
	"github.com/alexanderramin/tally/internal/repository"
	"github.com/alexanderramin/tally/internal/window"
)

type calendarService struct {
	sessions repository.SessionRepo
	pageSize int
	observer UseCaseObserver
}

func NewCalendarService(sessions repository.SessionRepo, pageSize int, observers ...UseCaseObserver) CalendarService {
	return &calendarService{
		sessions: sessions,
		pageSize: pageSize,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *calendarService) observe(ctx context.Context, name string, startedAt time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

// Month reads every session ending inside month's calendar month, in
// month's location.
func (s *calendarService) Month(ctx context.Context, month time.Time) (grid *aggregate.MonthGrid, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observe(ctx, "calendar-month", startedAt, err, map[string]any{"month": month.Format("2006-01")})
	}()

	w := window.Month(month)
	log, err := readClosed(ctx, s.sessions, repository.ClosedQuery{Start: w.Start, End: w.End}, s.pageSize)
	if err != nil {
		return nil, err
	}
	g := aggregate.Month(log, month)
	return &g, nil
}

func (s *calendarService) Day(ctx context.Context, day time.Time) (d *aggregate.Day, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observe(ctx, "calendar-day", startedAt, err, map[string]any{"day": day.Format(time.DateOnly)})
	}()

	w := window.Day(day)
	log, err := readClosed(ctx, s.sessions, repository.ClosedQuery{Start: w.Start, End: w.End}, s.pageSize)
	if err != nil {
		return nil, err
	}
	breakdown := aggregate.DayBreakdown(log, day)
	return &breakdown, nil
}

func (s *calendarService) Timeline(ctx context.Context, day time.Time, client string) (tl *aggregate.Timeline, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observe(ctx, "client-timeline", startedAt, err, map[string]any{"day": day.Format(time.DateOnly), "client": client})
	}()

	w := window.Day(day)
	log, err := readClosed(ctx, s.sessions, repository.ClosedQuery{Start: w.Start, End: w.End}, s.pageSize)
	if err != nil {
		return nil, err
	}
	t := aggregate.ClientTimeline(log, day, client)
	return &t, nil
}
