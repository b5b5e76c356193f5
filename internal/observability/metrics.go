package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	sessionEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tally",
		Subsystem: "sessions",
		Name:      "events_total",
		Help:      "Session lifecycle transitions observed by the timer engine.",
	}, []string{"kind"})

	sessionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "tally",
		Subsystem: "sessions",
		Name:      "duration_minutes",
		Help:      "Duration of sessions closed through the timer engine.",
		Buckets:   []float64{5, 15, 30, 60, 120, 240, 480},
	})

	lastStopGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tally",
		Subsystem: "sessions",
		Name:      "last_stop_timestamp_seconds",
		Help:      "Unix timestamp of the most recent session close.",
	})

	activeUsersGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tally",
		Subsystem: "sessions",
		Name:      "active_users",
		Help:      "Users with an open session at the last snapshot.",
	})

	useCaseDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tally",
		Subsystem: "service",
		Name:      "use_case_duration_seconds",
		Help:      "Latency of service use cases.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"use_case", "success"})
)

func init() {
	prometheus.MustRegister(sessionEvents, sessionDuration, lastStopGauge, activeUsersGauge, useCaseDuration)
}

// RecordSessionEvent counts one lifecycle transition.
func RecordSessionEvent(kind string) {
	sessionEvents.WithLabelValues(kind).Inc()
}

// RecordSessionStopped records a close and moves the stop watermark.
func RecordSessionStopped(minutes float64, ts time.Time) {
	sessionDuration.Observe(minutes)
	if ts.IsZero() {
		return
	}
	lastStopGauge.Set(float64(ts.Unix()))
}

// SetActiveUsers publishes the size of the latest active-user snapshot.
func SetActiveUsers(n int) {
	activeUsersGauge.Set(float64(n))
}

// RecordUseCase observes one service use-case execution.
func RecordUseCase(name string, success bool, d time.Duration) {
	useCaseDuration.WithLabelValues(name, strconv.FormatBool(success)).Observe(d.Seconds())
}
