package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	TransportErrors *prometheus.CounterVec
}

// NewMetrics creates metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "iats_requests_total",
				Help: "Total number of gateway calls by operation, family, and outcome",
			},
			[]string{"operation", "family", "outcome"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "iats_request_duration_seconds",
				Help:    "Gateway call duration in seconds by operation and family",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "family"},
		),
		TransportErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "iats_transport_errors_total",
				Help: "Total transport failures by family and error type",
			},
			[]string{"family", "error_type"},
		),
	}
}

// RecordRequest records a gateway call.
func (m *Metrics) RecordRequest(operation, family, outcome string, duration float64) {
	m.RequestsTotal.WithLabelValues(operation, family, outcome).Inc()
	m.RequestDuration.WithLabelValues(operation, family).Observe(duration)
}

// RecordTransportError records a transport failure.
func (m *Metrics) RecordTransportError(family, errorType string) {
	m.TransportErrors.WithLabelValues(family, errorType).Inc()
}
