package app

import (
	"time"

	"github.com/alexanderramin/tally/internal/domain"
)

type ActiveRequest struct {
	Now *time.Time
}

type ActiveUserView struct {
	domain.ActiveUser
	ElapsedSeconds int64
}

type ActiveResponse struct {
	GeneratedAt time.Time
	Users       []ActiveUserView
}

type TodayRequest struct {
	Now      *time.Time
	UserName string
}

type TodayResponse struct {
	UserName     string
	Date         time.Time
	Sessions     []domain.TimeSession
	TotalMinutes float64
}
