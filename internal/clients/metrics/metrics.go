package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for client onboarding.
type Metrics struct {
	Onboardings      *prometheus.CounterVec
	Propagations     *prometheus.CounterVec
	OnboardDuration  prometheus.Histogram
	DeletionAttempts *prometheus.CounterVec
}

// New registers the client metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Onboardings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_onboardings_total",
			Help: "Onboarding attempts by terminal state",
		}, []string{"state"}),
		Propagations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_propagations_total",
			Help: "Per-system propagation outcomes (ok, failed, skipped)",
		}, []string{"system", "status"}),
		OnboardDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "backoffice_onboard_duration_seconds",
			Help:    "Duration of a full onboarding including propagation",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		DeletionAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_external_cleanup_total",
			Help: "Best-effort external cleanup on client deletion",
		}, []string{"system", "outcome"}),
	}
}

// IncrementOnboarding records the terminal state of one attempt.
func (m *Metrics) IncrementOnboarding(state string) {
	if m == nil {
		return
	}
	m.Onboardings.WithLabelValues(state).Inc()
}

func (m *Metrics) IncrementPropagation(system, status string) {
	if m == nil {
		return
	}
	m.Propagations.WithLabelValues(system, status).Inc()
}

func (m *Metrics) IncrementCleanup(system, outcome string) {
	if m == nil {
		return
	}
	m.DeletionAttempts.WithLabelValues(system, outcome).Inc()
}

// ObserveOnboard records the duration since start.
func (m *Metrics) ObserveOnboard(start time.Time) {
	if m == nil {
		return
	}
	m.OnboardDuration.Observe(time.Since(start).Seconds())
}
