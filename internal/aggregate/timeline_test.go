package aggregate

import (
	"testing"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(h, m int) time.Time {
	return time.Date(2024, 3, 15, h, m, 0, 0, time.UTC)
}

func TestClientTimeline_SortsAndCollectsUsers(t *testing.T) {
	sessions := []domain.TimeSession{
		closed("zoe", "ACME", 60, at(14, 0)),
		closed("adam", "ACME", 30, at(10, 30)),
		closed("zoe", "ACME", 15, at(11, 0)),
		closed("adam", "OTHER", 30, at(12, 0)),
		closed("adam", "ACME", 30, at(12, 0).AddDate(0, 0, 1)),
	}

	tl := ClientTimeline(sessions, at(0, 0), "ACME")

	require.Len(t, tl.Sessions, 3)
	assert.Equal(t, at(10, 0), tl.Sessions[0].StartTime)
	assert.Equal(t, at(10, 45), tl.Sessions[1].StartTime)
	assert.Equal(t, at(13, 0), tl.Sessions[2].StartTime)
	assert.Equal(t, []string{"adam", "zoe"}, tl.Users)
	assert.Equal(t, 9, tl.StartHour)
	assert.Equal(t, 15, tl.EndHour)
}

func TestClientTimeline_HourRange(t *testing.T) {
	tests := []struct {
		name      string
		sessions  []domain.TimeSession
		wantStart int
		wantEnd   int
	}{
		{"empty defaults to office hours", nil, 9, 17},
		{"short span widened", []domain.TimeSession{closed("a", "C", 30, at(13, 0))}, 10, 14},
		{"clamped to office hours", []domain.TimeSession{
			closed("a", "C", 60, at(8, 0)),
			closed("a", "C", 60, at(20, 0)),
		}, 9, 17},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := ClientTimeline(tt.sessions, at(0, 0), "C")
			assert.Equal(t, tt.wantStart, tl.StartHour)
			assert.Equal(t, tt.wantEnd, tl.EndHour)
		})
	}
}

func TestTimeline_Position(t *testing.T) {
	tl := Timeline{Date: at(0, 0), StartHour: 9, EndHour: 17}

	assert.Equal(t, 0.0, tl.Position(at(8, 0)))
	assert.Equal(t, 50.0, tl.Position(at(13, 0)))
	assert.Equal(t, 100.0, tl.Position(at(18, 0)))
}
