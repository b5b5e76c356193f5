package app

import (
	"context"
	"time"

	"github.com/alexanderramin/tally/internal/aggregate"
)

type ReportUseCase interface {
	Report(ctx context.Context, req ReportRequest) (*ReportResponse, error)
}

type CalendarUseCase interface {
	Month(ctx context.Context, month time.Time) (*aggregate.MonthGrid, error)
	Day(ctx context.Context, day time.Time) (*aggregate.Day, error)
	Timeline(ctx context.Context, day time.Time, client string) (*aggregate.Timeline, error)
}

type ActiveUseCase interface {
	Active(ctx context.Context, req ActiveRequest) (*ActiveResponse, error)
}

type TodayUseCase interface {
	Today(ctx context.Context, req TodayRequest) (*TodayResponse, error)
}
