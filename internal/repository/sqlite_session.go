package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tally/internal/db"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/google/uuid"
)

const sessionColumns = `id, user_name, client_name, project_type, project_name, start_time, end_time, duration_minutes`

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db db.DBTX
}

func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

func (r *SQLiteSessionRepo) Insert(ctx context.Context, s *domain.TimeSession) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	// Store precision is milliseconds; hand the stored value back so
	// callers measure elapsed time from exactly what a later read returns.
	s.StartTime = s.StartTime.UTC().Truncate(time.Millisecond)
	s.EndTime = nil
	s.DurationMinutes = nil

	query := `INSERT INTO time_sessions (id, user_name, client_name, project_type, project_name, start_time)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserName,
		s.ClientName,
		s.ProjectType,
		s.ProjectName,
		formatTime(s.StartTime),
	)
	if err != nil {
		if isOpenSessionConflict(err) {
			return fmt.Errorf("user %s: %w", s.UserName, ErrConflict)
		}
		return fmt.Errorf("inserting time session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) Close(ctx context.Context, id string, end time.Time, durationMinutes float64) error {
	query := `UPDATE time_sessions SET end_time = ?, duration_minutes = ?
		WHERE id = ? AND end_time IS NULL`
	res, err := r.db.ExecContext(ctx, query, formatTime(end), durationMinutes, id)
	if err != nil {
		return fmt.Errorf("closing time session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("closing time session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("closing session %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.TimeSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM time_sessions WHERE id = ?`
	s, err := r.scanSession(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("time session %s: %w", id, ErrNotFound)
	}
	return s, err
}

func (r *SQLiteSessionRepo) FindOpen(ctx context.Context, userName string) (*domain.TimeSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM time_sessions
		WHERE user_name = ? AND end_time IS NULL`
	s, err := r.scanSession(r.db.QueryRowContext(ctx, query, userName))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

func (r *SQLiteSessionRepo) ListOpen(ctx context.Context) ([]*domain.TimeSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM time_sessions
		WHERE end_time IS NULL ORDER BY start_time`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing open sessions: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) ListClosed(ctx context.Context, q ClosedQuery) ([]*domain.TimeSession, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + sessionColumns + ` FROM time_sessions
		WHERE end_time IS NOT NULL AND end_time >= ? AND end_time <= ?`)
	args := []any{formatTime(q.Start), formatTime(q.End)}
	if q.UserName != "" {
		b.WriteString(` AND user_name = ?`)
		args = append(args, q.UserName)
	}
	b.WriteString(` ORDER BY end_time DESC, id`)
	if q.Limit > 0 {
		b.WriteString(` LIMIT ? OFFSET ?`)
		args = append(args, q.Limit, q.Offset)
	}

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("listing closed sessions: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanSession scans a single session. sql.ErrNoRows is returned unwrapped
// so callers can decide between "absent" and ErrNotFound.
func (r *SQLiteSessionRepo) scanSession(row rowScanner) (*domain.TimeSession, error) {
	var s domain.TimeSession
	var startStr string
	var endStr sql.NullString
	var dur sql.NullFloat64

	err := row.Scan(
		&s.ID, &s.UserName, &s.ClientName, &s.ProjectType, &s.ProjectName,
		&startStr, &endStr, &dur,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning time session: %w", err)
	}
	return r.populateSession(&s, startStr, endStr, dur)
}

func (r *SQLiteSessionRepo) scanSessions(rows *sql.Rows) ([]*domain.TimeSession, error) {
	var sessions []*domain.TimeSession
	for rows.Next() {
		s, err := r.scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

// populateSession fills in parsed fields after scanning raw strings.
func (r *SQLiteSessionRepo) populateSession(s *domain.TimeSession, startStr string, endStr sql.NullString, dur sql.NullFloat64) (*domain.TimeSession, error) {
	var err error
	s.StartTime, err = parseTime(startStr)
	if err != nil {
		return nil, fmt.Errorf("parsing start_time: %w", err)
	}
	s.EndTime, err = parseNullableTime(endStr)
	if err != nil {
		return nil, fmt.Errorf("parsing end_time: %w", err)
	}
	s.DurationMinutes = nullableFloat(dur)
	return s, nil
}
