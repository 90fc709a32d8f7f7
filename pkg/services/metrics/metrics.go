package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/ephemeris"
)

// Metrics provides observability for calculations and ephemeris access.
type Metrics struct {
	// Calculations by kind and outcome
	Calculations *prometheus.CounterVec

	// Calculation latency by kind
	CalculationLatency *prometheus.HistogramVec

	// Ephemeris evaluations by body and outcome
	Evaluations *prometheus.CounterVec
}

// New creates a Metrics instance registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Calculations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "jyotish_calculations_total",
			Help: "Total calculations by kind and status",
		}, []string{"kind", "status"}),

		CalculationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jyotish_calculation_duration_seconds",
			Help:    "Duration of calculations by kind",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		}, []string{"kind"}),

		Evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "jyotish_ephemeris_evaluations_total",
			Help: "Ephemeris position lookups by body and status",
		}, []string{"body", "status"}),
	}
}

// ObserveCalculation records the outcome and latency of one calculation.
func (m *Metrics) ObserveCalculation(kind domain.CalculationKind, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.Calculations.WithLabelValues(string(kind), status(err)).Inc()
	m.CalculationLatency.WithLabelValues(string(kind)).Observe(d.Seconds())
}

// IncrementEvaluation records one ephemeris lookup.
func (m *Metrics) IncrementEvaluation(body domain.Body, err error) {
	if m != nil {
		m.Evaluations.WithLabelValues(body.String(), status(err)).Inc()
	}
}

// InstrumentProvider counts every position lookup going through p.
func (m *Metrics) InstrumentProvider(p ephemeris.Provider) ephemeris.Provider {
	if m == nil {
		return p
	}
	return ephemeris.ProviderFunc(func(ctx context.Context, jd float64, body domain.Body) (domain.Position, error) {
		pos, err := p.Position(ctx, jd, body)
		m.IncrementEvaluation(body, err)
		return pos, err
	})
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
