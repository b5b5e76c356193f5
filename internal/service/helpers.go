package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/repository"
)

// DefaultPageSize bounds a single log read. Larger ranges are paged.
const DefaultPageSize = 1000

// persistenceErr files store failures under ErrPersistence while keeping
// conflict and not-found as they are.
func persistenceErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrNotFound):
		return err
	default:
		return fmt.Errorf("%w: %s: %w", domain.ErrPersistence, op, err)
	}
}

// readClosed pages through every closed session in q's range, stopping at
// the first short page.
func readClosed(ctx context.Context, sessions repository.SessionRepo, q repository.ClosedQuery, pageSize int) ([]domain.TimeSession, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	var out []domain.TimeSession
	q.Limit = pageSize
	q.Offset = 0
	for {
		page, err := sessions.ListClosed(ctx, q)
		if err != nil {
			return nil, persistenceErr("reading session log", err)
		}
		for _, s := range page {
			out = append(out, *s)
		}
		if len(page) == 0 || len(page) < pageSize {
			return out, nil
		}
		q.Offset += len(page)
	}
}

func nowOr(now *time.Time, clock func() time.Time) time.Time {
	if now != nil {
		return *now
	}
	return clock()
}
