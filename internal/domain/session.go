package domain

import (
	"strings"
	"time"
)

// TimeSession is one timed block of work for a user against a
// (client, project type, project name) tuple. EndTime and DurationMinutes
// are nil while the session is open.
type TimeSession struct {
	ID              string
	UserName        string
	ClientName      string
	ProjectType     string
	ProjectName     string
	StartTime       time.Time
	EndTime         *time.Time
	DurationMinutes *float64
}

// IsOpen reports whether the session is still running.
func (s *TimeSession) IsOpen() bool {
	return s.EndTime == nil
}

// IsClosed reports whether the session carries both an end time and a
// duration. Sessions that are neither open nor closed are malformed.
func (s *TimeSession) IsClosed() bool {
	return s.EndTime != nil && s.DurationMinutes != nil
}

// Minutes returns the stored duration, or 0 when absent.
func (s *TimeSession) Minutes() float64 {
	if s.DurationMinutes == nil {
		return 0
	}
	return *s.DurationMinutes
}

// Elapsed returns the running time of the session as of now, measured from
// the stored start time. Negative clock skew clamps to zero.
func (s *TimeSession) Elapsed(now time.Time) time.Duration {
	end := now
	if s.EndTime != nil {
		end = *s.EndTime
	}
	d := end.Sub(s.StartTime)
	if d < 0 {
		return 0
	}
	return d
}

// ElapsedSeconds is floor(elapsed / 1s).
func (s *TimeSession) ElapsedSeconds(now time.Time) int64 {
	return int64(s.Elapsed(now) / time.Second)
}

// Close sets the end time and the derived duration. Closing twice fails
// with ErrNotFound, matching what the store reports for a closed id.
func (s *TimeSession) Close(end time.Time) error {
	if !s.IsOpen() {
		return ErrNotFound
	}
	end = end.UTC()
	d := DurationMinutes(s.StartTime, end)
	s.EndTime = &end
	s.DurationMinutes = &d
	return nil
}

// DurationMinutes is (end - start) in fractional minutes. Sub-minute
// precision is kept so re-aggregation stays exact.
func DurationMinutes(start, end time.Time) float64 {
	return float64(end.Sub(start).Milliseconds()) / 60000
}

// StartInput is the user-supplied part of a new session.
type StartInput struct {
	UserName    string
	ClientName  string
	ProjectType string
	ProjectName string
}

// Normalize trims every field and upper-cases the project name.
func (in StartInput) Normalize() StartInput {
	return StartInput{
		UserName:    strings.TrimSpace(in.UserName),
		ClientName:  strings.TrimSpace(in.ClientName),
		ProjectType: strings.TrimSpace(in.ProjectType),
		ProjectName: strings.ToUpper(strings.TrimSpace(in.ProjectName)),
	}
}

// Validate requires all four fields to be non-blank.
func (in StartInput) Validate() error {
	var missing []string
	if strings.TrimSpace(in.UserName) == "" {
		missing = append(missing, "user")
	}
	if strings.TrimSpace(in.ClientName) == "" {
		missing = append(missing, "client")
	}
	if strings.TrimSpace(in.ProjectType) == "" {
		missing = append(missing, "project type")
	}
	if strings.TrimSpace(in.ProjectName) == "" {
		missing = append(missing, "project name")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// ActiveUser is a row of the "who is working now" view.
type ActiveUser struct {
	SessionID   string
	UserName    string
	ClientName  string
	ProjectType string
	ProjectName string
	StartTime   time.Time
}

// ActiveUserFrom projects an open session into its active-user view.
func ActiveUserFrom(s *TimeSession) ActiveUser {
	return ActiveUser{
		SessionID:   s.ID,
		UserName:    s.UserName,
		ClientName:  s.ClientName,
		ProjectType: s.ProjectType,
		ProjectName: s.ProjectName,
		StartTime:   s.StartTime,
	}
}
