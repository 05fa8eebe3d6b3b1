package integrations

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks every upstream call by system, operation and outcome.
type Metrics struct {
	CallDuration *prometheus.HistogramVec
	CallsTotal   *prometheus.CounterVec
}

// NewMetrics registers the adapter metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CallDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "backoffice_integration_call_duration_seconds",
			Help:    "Duration of external integration calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"system", "op"}),
		CallsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_integration_calls_total",
			Help: "External integration calls by outcome (ok or error kind)",
		}, []string{"system", "op", "outcome"}),
	}
}

func (m *Metrics) observe(system System, op string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = string(KindOf(err))
	}
	m.CallDuration.WithLabelValues(string(system), op).Observe(elapsed.Seconds())
	m.CallsTotal.WithLabelValues(string(system), op, outcome).Inc()
}
