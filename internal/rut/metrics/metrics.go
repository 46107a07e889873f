package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the RUT module.
type Metrics struct {
	// Validation outcomes: "valid", "mismatch", "malformed"
	Validations *prometheus.CounterVec

	// Identifiers produced by Generate
	Generated prometheus.Counter

	// Format requests rejected as malformed
	FormatFailures prometheus.Counter

	// Per-operation latency
	OperationLatency *prometheus.HistogramVec
}

// New creates the RUT module metrics registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Validations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rutkit_rut_validations_total",
			Help: "Total RUT validations by outcome",
		}, []string{"outcome"}),

		Generated: f.NewCounter(prometheus.CounterOpts{
			Name: "rutkit_rut_generated_total",
			Help: "Total RUTs generated",
		}),

		FormatFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "rutkit_rut_format_failures_total",
			Help: "Total format requests rejected as malformed",
		}),

		OperationLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rutkit_rut_operation_duration_seconds",
			Help:    "Duration of RUT operations",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}, []string{"operation"}), // operation: "validate", "batch", "format", "generate"
	}
}

// IncrementValidation records a validation outcome.
func (m *Metrics) IncrementValidation(outcome string) {
	if m != nil {
		m.Validations.WithLabelValues(outcome).Inc()
	}
}

// AddGenerated records n generated identifiers.
func (m *Metrics) AddGenerated(n int) {
	if m != nil {
		m.Generated.Add(float64(n))
	}
}

// IncrementFormatFailure records a rejected format request.
func (m *Metrics) IncrementFormatFailure() {
	if m != nil {
		m.FormatFailures.Inc()
	}
}

// ObserveOperation records how long an operation took.
func (m *Metrics) ObserveOperation(operation string, d time.Duration) {
	if m != nil {
		m.OperationLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}
