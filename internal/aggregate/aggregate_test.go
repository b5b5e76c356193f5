package aggregate

import (
	"testing"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noon = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func closed(user, client string, min float64, end time.Time, opts ...testutil.SessionOption) domain.TimeSession {
	return *testutil.NewClosedSession(user, client, min, end, opts...)
}

func TestAggregate_TotalsConservation(t *testing.T) {
	sessions := []domain.TimeSession{
		closed("alice", "A", 30, noon),
		closed("bob", "B", 45, noon),
		closed("alice", "A", 25, noon),
	}

	res := Aggregate(sessions, ByClient, domain.UnitMinutes, domain.PercentWhole)

	require.Len(t, res.Buckets, 2)
	assert.Equal(t, "A", res.Buckets[0].Key)
	assert.InDelta(t, 55, res.Buckets[0].Minutes, 1e-9)
	assert.Equal(t, 2, res.Buckets[0].Sessions)
	assert.Equal(t, "B", res.Buckets[1].Key)
	assert.InDelta(t, 45, res.Buckets[1].Minutes, 1e-9)
	assert.InDelta(t, 100, res.TotalMinutes, 1e-9)
	assert.Equal(t, 55.0, res.Buckets[0].Percentage)
	assert.Equal(t, 45.0, res.Buckets[1].Percentage)
}

func TestAggregate_ExcludesOpenSessions(t *testing.T) {
	open := *testutil.NewTestSession("carol", testutil.WithClient("A"))
	sessions := []domain.TimeSession{closed("alice", "A", 30, noon), open}

	res := Aggregate(sessions, ByClient, domain.UnitMinutes, domain.PercentWhole)

	require.Len(t, res.Buckets, 1)
	assert.Equal(t, 1, res.Buckets[0].Sessions)
	assert.InDelta(t, 30, res.TotalMinutes, 1e-9)
}

func TestAggregate_PercentagesSumToHundred(t *testing.T) {
	sessions := []domain.TimeSession{
		closed("a", "X", 10, noon),
		closed("b", "Y", 10, noon),
		closed("c", "Z", 10, noon),
	}

	for _, policy := range []domain.PercentPolicy{domain.PercentWhole, domain.PercentDecimal} {
		t.Run(string(policy), func(t *testing.T) {
			res := Aggregate(sessions, ByUser, domain.UnitMinutes, policy)
			var sum float64
			for _, b := range res.Buckets {
				sum += b.Percentage
			}
			assert.InDelta(t, 100, sum, 1.5)
		})
	}

	res := Aggregate(sessions, ByUser, domain.UnitMinutes, domain.PercentDecimal)
	assert.Equal(t, 33.3, res.Buckets[0].Percentage)
	res = Aggregate(sessions, ByUser, domain.UnitMinutes, domain.PercentWhole)
	assert.Equal(t, 33.0, res.Buckets[0].Percentage)
}

func TestAggregate_ZeroTotalYieldsZeroPercent(t *testing.T) {
	sessions := []domain.TimeSession{
		closed("a", "X", 0, noon),
		closed("b", "Y", 0, noon),
	}

	res := Aggregate(sessions, ByClient, domain.UnitHours, domain.PercentDecimal)

	require.Len(t, res.Buckets, 2)
	for _, b := range res.Buckets {
		assert.Zero(t, b.Percentage)
		assert.Zero(t, b.Value)
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	res := Aggregate(nil, ByClient, domain.UnitMinutes, domain.PercentWhole)
	assert.Empty(t, res.Buckets)
	assert.Zero(t, res.TotalMinutes)
	assert.Equal(t, "", res.Top())
}

func TestAggregate_TiesKeepFirstAppearance(t *testing.T) {
	sessions := []domain.TimeSession{
		closed("a", "ZETA", 20, noon),
		closed("a", "ALPHA", 20, noon),
		closed("a", "MID", 50, noon),
		closed("a", "BETA", 20, noon),
	}

	for i := 0; i < 5; i++ {
		res := Aggregate(sessions, ByClient, domain.UnitMinutes, domain.PercentWhole)
		keys := make([]string, 0, len(res.Buckets))
		for _, b := range res.Buckets {
			keys = append(keys, b.Key)
		}
		assert.Equal(t, []string{"MID", "ZETA", "ALPHA", "BETA"}, keys)
	}
}

func TestAggregate_RanksByRawMinutes(t *testing.T) {
	// Both display as 0.5h but the raw totals differ.
	sessions := []domain.TimeSession{
		closed("a", "LOW", 29.9, noon),
		closed("a", "HIGH", 30.1, noon),
	}

	res := Aggregate(sessions, ByClient, domain.UnitHours, domain.PercentDecimal)

	assert.Equal(t, "HIGH", res.Buckets[0].Key)
	assert.Equal(t, res.Buckets[0].Value, res.Buckets[1].Value)
}

func TestConvertMinutes(t *testing.T) {
	tests := []struct {
		minutes float64
		unit    domain.TimeUnit
		want    float64
	}{
		{90, domain.UnitHours, 1.5},
		{100, domain.UnitHours, 1.7},
		{59.4, domain.UnitMinutes, 59},
		{59.5, domain.UnitMinutes, 60},
		{0, domain.UnitHours, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ConvertMinutes(tt.minutes, tt.unit), "%v %s", tt.minutes, tt.unit)
	}
}

func TestAggregate_MissingDurationCountsAsZero(t *testing.T) {
	end := noon
	s := domain.TimeSession{UserName: "a", ClientName: "X", StartTime: noon.Add(-time.Hour), EndTime: &end}

	res := Aggregate([]domain.TimeSession{s}, ByClient, domain.UnitMinutes, domain.PercentWhole)

	assert.Empty(t, res.Buckets, "sessions without a duration are not closed")
}

func TestKeyFuncs_DayAndMonthUseEndTime(t *testing.T) {
	// Starts on the 14th, ends on the 15th.
	s := closed("a", "X", 120, time.Date(2024, 3, 15, 1, 0, 0, 0, time.UTC))

	assert.Equal(t, "2024-03-15", ByDay(time.UTC)(s))
	assert.Equal(t, "2024-03", ByMonth(time.UTC)(s))

	west := time.FixedZone("UTC-5", -5*60*60)
	assert.Equal(t, "2024-03-14", ByDay(west)(s))
}

func TestFilterHelpers(t *testing.T) {
	sessions := []domain.TimeSession{
		closed("alice", "A", 10, noon),
		closed("bob", "A", 10, noon),
		closed("alice", "B", 10, noon),
	}

	assert.Len(t, Filter(sessions, ForUser("alice")), 2)
	assert.Len(t, Filter(sessions, ForClient("A")), 2)
}
