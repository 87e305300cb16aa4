package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcomes
const (
	OutcomeCreated    = "created"
	OutcomeInvalid    = "invalid"
	OutcomeIdentity   = "identity_failed"
	OutcomeDuplicate  = "duplicate"
	OutcomeInProgress = "in_progress"
	OutcomeRolledBack = "rolled_back"
)

// Metrics are the sign-up flow's prometheus collectors
type Metrics struct {
	submissions  *prometheus.CounterVec
	rollbacks    *prometheus.CounterVec
	degradations *prometheus.CounterVec
	duration     prometheus.Histogram
}

// NewMetrics registers the collectors with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_submissions_total",
			Help: "Profile submissions by outcome.",
		}, []string{"outcome"}),
		rollbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_rollbacks_total",
			Help: "Rollback steps attempted after a failed profile write.",
		}, []string{"step", "result"}),
		degradations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_degradations_total",
			Help: "Best-effort steps that failed without aborting the submission.",
		}, []string{"step"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "signup_duration_seconds",
			Help:    "Time spent processing a profile submission.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) submission(outcome string, started time.Time) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
	m.duration.Observe(time.Since(started).Seconds())
}

func (m *Metrics) rollback(step string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "failed"
	}
	m.rollbacks.WithLabelValues(step, result).Inc()
}

func (m *Metrics) degraded(step string) {
	if m == nil {
		return
	}
	m.degradations.WithLabelValues(step).Inc()
}
