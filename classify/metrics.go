package classify

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts classification outcomes. A nil *Metrics records nothing.
type Metrics struct {
	classified *prometheus.CounterVec
	failed     *prometheus.CounterVec
	duration   prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg (if non-nil).
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		classified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spendclass",
			Name:      "classified_total",
			Help:      "Spends classified, by spend kind and version.",
		}, []string{"shape", "version"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spendclass",
			Name:      "classify_errors_total",
			Help:      "Classification failures, by error kind and stage.",
		}, []string{"kind", "stage"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "spendclass",
			Name:      "classify_duration_seconds",
			Help:      "Time spent classifying one parsed pair.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.classified, m.failed, m.duration} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func (m *Metrics) observe(s KnownSpend, err error, d time.Duration) {
	if m == nil {
		return
	}
	if err != nil {
		kind, stage := "Internal", "unknown"
		var e *Error
		if errors.As(err, &e) {
			kind, stage = string(e.Kind), string(e.Stage)
		}
		m.failed.WithLabelValues(kind, stage).Inc()
		return
	}
	m.duration.Observe(d.Seconds())
	m.classified.WithLabelValues(string(s.Kind()), versionLabel(s)).Inc()
}

func versionLabel(s KnownSpend) string {
	if c, ok := s.(*CATSpend); ok {
		return c.Version.String()
	}
	return ""
}
