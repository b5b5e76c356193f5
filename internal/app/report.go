package app

import (
	"time"

	"github.com/alexanderramin/tally/internal/aggregate"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/window"
)

type ReportRequest struct {
	Now     *time.Time
	Filter  domain.TimeFilter
	Unit    domain.TimeUnit
	Percent domain.PercentPolicy
	// ForUser and ForClient narrow the project-type breakdown only.
	ForUser   string
	ForClient string
}

func NewReportRequest() ReportRequest {
	return ReportRequest{
		Filter:  domain.FilterToday,
		Unit:    domain.UnitHours,
		Percent: domain.PercentDecimal,
	}
}

type ReportResponse struct {
	Filter        domain.TimeFilter
	Window        window.Window
	ByClient      aggregate.Result
	ByUser        aggregate.Result
	ByProjectType aggregate.Result
	SessionCount  int
	TotalMinutes  float64
}
