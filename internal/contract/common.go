package contract

import "github.com/alexanderramin/tally/internal/app"

type ReportRequest = app.ReportRequest

func NewReportRequest() ReportRequest {
	return app.NewReportRequest()
}

type ReportResponse = app.ReportResponse

type ActiveRequest = app.ActiveRequest

type ActiveUserView = app.ActiveUserView

type ActiveResponse = app.ActiveResponse

type TodayRequest = app.TodayRequest

type TodayResponse = app.TodayResponse
