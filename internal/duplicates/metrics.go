package duplicates

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts duplicate lookups per system and outcome.
type Metrics struct {
	Checks    *prometheus.CounterVec
	CacheHits *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Checks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_duplicate_checks_total",
			Help: "Duplicate lookups by system and outcome (match, clear, error)",
		}, []string{"system", "outcome"}),
		CacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_duplicate_cache_hits_total",
			Help: "Duplicate lookups answered from cache",
		}, []string{"system"}),
	}
}

func (m *Metrics) check(system, outcome string) {
	if m == nil {
		return
	}
	m.Checks.WithLabelValues(system, outcome).Inc()
}

func (m *Metrics) hit(system string) {
	if m == nil {
		return
	}
	m.CacheHits.WithLabelValues(system).Inc()
}
