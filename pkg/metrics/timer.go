package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Timer provides a convenient way to time an operation and record the
// elapsed duration to a histogram.
type Timer struct {
	start time.Time
}

// NewTimer starts a timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Duration returns the elapsed time since the timer was created. It
// may be called more than once; each call reflects the time elapsed
// up to that call.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// ObserveDuration records the elapsed duration, in seconds, to
// observer.
func (t *Timer) ObserveDuration(observer prometheus.Observer) {
	observer.Observe(t.Duration().Seconds())
}

// ObserveDurationVec records the elapsed duration, in seconds, to
// vec's observer for the given label values.
func (t *Timer) ObserveDurationVec(vec *prometheus.HistogramVec, labelValues ...string) {
	vec.WithLabelValues(labelValues...).Observe(t.Duration().Seconds())
}
