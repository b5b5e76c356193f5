package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/tally/internal/aggregate"
	"github.com/alexanderramin/tally/internal/contract"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/repository"
	"github.com/alexanderramin/tally/internal/window"
)

type reportService struct {
	sessions repository.SessionRepo
	pageSize int
	now      func() time.Time
	observer UseCaseObserver
}

func NewReportService(sessions repository.SessionRepo, pageSize int, observers ...UseCaseObserver) ReportService {
	return &reportService{
		sessions: sessions,
		pageSize: pageSize,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *reportService) Report(ctx context.Context, req contract.ReportRequest) (resp *contract.ReportResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"filter": string(req.Filter), "unit": string(req.Unit)}
	defer func() {
		if resp != nil {
			fields["sessions"] = resp.SessionCount
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "report",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if err = validateReportRequest(req); err != nil {
		return nil, err
	}

	var w window.Window
	w, err = window.Resolve(req.Filter, nowOr(req.Now, s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	var log []domain.TimeSession
	log, err = readClosed(ctx, s.sessions, repository.ClosedQuery{Start: w.Start, End: w.End}, s.pageSize)
	if err != nil {
		return nil, err
	}

	typed := log
	if req.ForUser != "" {
		typed = aggregate.Filter(typed, aggregate.ForUser(req.ForUser))
	}
	if req.ForClient != "" {
		typed = aggregate.Filter(typed, aggregate.ForClient(req.ForClient))
	}

	byClient := aggregate.Aggregate(log, aggregate.ByClient, req.Unit, req.Percent)
	return &contract.ReportResponse{
		Filter:        req.Filter,
		Window:        w,
		ByClient:      byClient,
		ByUser:        aggregate.Aggregate(log, aggregate.ByUser, req.Unit, req.Percent),
		ByProjectType: aggregate.Aggregate(typed, aggregate.ByProjectType, req.Unit, req.Percent),
		SessionCount:  len(log),
		TotalMinutes:  byClient.TotalMinutes,
	}, nil
}

func validateReportRequest(req contract.ReportRequest) error {
	var bad []string
	if !domain.ValidTimeFilters[req.Filter] {
		bad = append(bad, "filter")
	}
	if req.Unit != domain.UnitHours && req.Unit != domain.UnitMinutes {
		bad = append(bad, "unit")
	}
	if req.Percent != domain.PercentWhole && req.Percent != domain.PercentDecimal {
		bad = append(bad, "percent")
	}
	if len(bad) > 0 {
		return &domain.ValidationError{Fields: bad}
	}
	return nil
}
