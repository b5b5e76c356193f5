package service

import (
	"context"
	"time"

	"github.com/alexanderramin/tally/internal/aggregate"
	"github.com/alexanderramin/tally/internal/contract"
	"github.com/alexanderramin/tally/internal/domain"
)

// TrackingService is the store side of the timer engine plus the
// last-used-user preference.
type TrackingService interface {
	Insert(ctx context.Context, s *domain.TimeSession) error
	Close(ctx context.Context, id string, end time.Time, durationMinutes float64) error
	FindOpen(ctx context.Context, user string) (*domain.TimeSession, error)
	LastUser(ctx context.Context) (string, error)
}

type ReportService interface {
	Report(ctx context.Context, req contract.ReportRequest) (*contract.ReportResponse, error)
}

type CalendarService interface {
	Month(ctx context.Context, month time.Time) (*aggregate.MonthGrid, error)
	Day(ctx context.Context, day time.Time) (*aggregate.Day, error)
	Timeline(ctx context.Context, day time.Time, client string) (*aggregate.Timeline, error)
}

type ActiveService interface {
	Active(ctx context.Context, req contract.ActiveRequest) (*contract.ActiveResponse, error)
}

type TodayService interface {
	Today(ctx context.Context, req contract.TodayRequest) (*contract.TodayResponse, error)
}
