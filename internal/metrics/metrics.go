// Package metrics counts transplants for batch runs and exports them in the
// node_exporter textfile format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Result label values for TransplantsTotal.
const (
	ResultFound    = "found"
	ResultNotFound = "not_found"
)

// Metrics holds the counters of one CLI invocation on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	TransplantsTotal *prometheus.CounterVec
	LogsScannedTotal prometheus.Counter
}

// New registers a fresh set of counters.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		TransplantsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scoremark",
			Name:      "transplants_total",
			Help:      "Marks copied into a destination log, by whether the pattern matched.",
		}, []string{"result"}),
		LogsScannedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scoremark",
			Name:      "logs_scanned_total",
			Help:      "Logs in the chains that were aligned.",
		}),
	}
	m.registry.MustRegister(m.TransplantsTotal, m.LogsScannedTotal)
	return m
}

// ObserveTransplant records one transplant over a chain of n logs.
func (m *Metrics) ObserveTransplant(found bool, n int) {
	result := ResultNotFound
	if found {
		result = ResultFound
	}
	m.TransplantsTotal.WithLabelValues(result).Inc()
	m.LogsScannedTotal.Add(float64(n))
}

// Gatherer exposes the registry, mainly for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the counters to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
