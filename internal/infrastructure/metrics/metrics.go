package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the onboarding service. All methods are
// nil-safe so call sites can pass a nil instance in tests.
type Metrics struct {
	// Remote record fetches by outcome
	RecordFetches *prometheus.CounterVec

	// Step saves by wizard step name
	StepSaves *prometheus.CounterVec

	// Verification submissions by result
	VerificationSubmissions *prometheus.CounterVec

	// Remote fetch latency
	FetchLatency prometheus.Histogram
}

// New creates a new Metrics instance with all onboarding metrics registered.
func New() *Metrics {
	return &Metrics{
		RecordFetches: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "onboarding_record_fetches_total",
			Help: "Total compliance record fetches by outcome",
		}, []string{"outcome"}), // outcome: "ok", "not_started", "cached", "error"

		StepSaves: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "onboarding_step_saves_total",
			Help: "Total wizard step saves by step",
		}, []string{"step"}),

		VerificationSubmissions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "onboarding_verification_submissions_total",
			Help: "Total verification submissions by result",
		}, []string{"result"}), // result: "ok", "fallback", "error"

		FetchLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "onboarding_record_fetch_duration_seconds",
			Help:    "Duration of remote compliance record fetches",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// IncrementFetch records a remote fetch outcome.
func (m *Metrics) IncrementFetch(outcome string) {
	if m != nil {
		m.RecordFetches.WithLabelValues(outcome).Inc()
	}
}

// IncrementStepSave records a saved wizard step.
func (m *Metrics) IncrementStepSave(step string) {
	if m != nil {
		m.StepSaves.WithLabelValues(step).Inc()
	}
}

// IncrementSubmission records a verification submission result.
func (m *Metrics) IncrementSubmission(result string) {
	if m != nil {
		m.VerificationSubmissions.WithLabelValues(result).Inc()
	}
}

// ObserveFetchLatency records the duration of a remote fetch.
func (m *Metrics) ObserveFetchLatency(d time.Duration) {
	if m != nil {
		m.FetchLatency.Observe(d.Seconds())
	}
}
