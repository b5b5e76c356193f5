package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func TestDurationMinutes(t *testing.T) {
	cases := []struct {
		name string
		d    time.Duration
		want float64
	}{
		{"zero", 0, 0},
		{"ninety seconds", 90 * time.Second, 1.5},
		{"one hour", time.Hour, 60},
		{"sub-second", 1500 * time.Millisecond, 0.025},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, DurationMinutes(testNow, testNow.Add(tc.d)), 1e-9)
		})
	}
}

func TestClose_SetsEndAndDuration(t *testing.T) {
	s := &TimeSession{ID: "s1", StartTime: testNow}
	require.True(t, s.IsOpen())

	require.NoError(t, s.Close(testNow.Add(90*time.Second)))

	assert.False(t, s.IsOpen())
	assert.True(t, s.IsClosed())
	assert.InDelta(t, 1.5, s.Minutes(), 1e-9)
	assert.InDelta(t, DurationMinutes(s.StartTime, *s.EndTime), *s.DurationMinutes, 1e-12,
		"recomputing the duration must reproduce the stored value")
}

func TestClose_Twice(t *testing.T) {
	s := &TimeSession{ID: "s1", StartTime: testNow}
	require.NoError(t, s.Close(testNow.Add(time.Minute)))
	end := *s.EndTime

	err := s.Close(testNow.Add(time.Hour))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, end, *s.EndTime, "closed sessions are immutable")
}

func TestElapsedSeconds(t *testing.T) {
	s := &TimeSession{StartTime: testNow}
	assert.Equal(t, int64(61), s.ElapsedSeconds(testNow.Add(61*time.Second+999*time.Millisecond)))
	assert.Equal(t, int64(0), s.ElapsedSeconds(testNow.Add(-5*time.Second)), "clock skew clamps to zero")
}

func TestStartInput_Validate(t *testing.T) {
	ok := StartInput{UserName: "naomi", ClientName: "IDEOLA", ProjectType: "GENERAL", ProjectName: "logo"}
	require.NoError(t, ok.Validate())

	bad := StartInput{UserName: "naomi", ClientName: "  ", ProjectType: "", ProjectName: "logo"}
	err := bad.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"client", "project type"}, ve.Fields)
}

func TestStartInput_Normalize(t *testing.T) {
	in := StartInput{UserName: " naomi ", ClientName: "IDEOLA ", ProjectType: " GENERAL", ProjectName: " spring campaign "}
	got := in.Normalize()
	assert.Equal(t, "naomi", got.UserName)
	assert.Equal(t, "IDEOLA", got.ClientName)
	assert.Equal(t, "GENERAL", got.ProjectType)
	assert.Equal(t, "SPRING CAMPAIGN", got.ProjectName)
}

func TestTimeFilterLabel(t *testing.T) {
	assert.Equal(t, "Last 7 Days", Filter7Days.Label())
	assert.Equal(t, "Yesterday", FilterYesterday.Label())
	assert.True(t, ValidTimeFilters[Filter365Days])
	assert.False(t, ValidTimeFilters[TimeFilter("90days")])
}
