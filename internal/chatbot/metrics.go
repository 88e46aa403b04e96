package chatbot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the query engine.
type Metrics struct {
	// Queries processed, by classified intent.
	Queries *prometheus.CounterVec

	// Export artifacts produced, by format.
	Exports *prometheus.CounterVec
}

// NewMetrics creates a Metrics instance registered on the default registry.
func NewMetrics() *Metrics {
	return &Metrics{
		Queries: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "chatbot_queries_total",
			Help: "Total chatbot queries processed by classified intent",
		}, []string{"intent"}),

		Exports: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "chatbot_exports_total",
			Help: "Total export artifacts produced by format",
		}, []string{"format"}),
	}
}

// IncQuery records a processed query. Safe on a nil receiver.
func (m *Metrics) IncQuery(intent string) {
	if m != nil {
		m.Queries.WithLabelValues(intent).Inc()
	}
}

// IncExport records a produced export artifact. Safe on a nil receiver.
func (m *Metrics) IncExport(format string) {
	if m != nil {
		m.Exports.WithLabelValues(format).Inc()
	}
}
