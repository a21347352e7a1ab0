package observability

import (
	"context"

	"github.com/aretw0/termuxdev/pkg/advice"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the gateway collectors.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	InFlight *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg (skipped when reg is nil).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termuxdev_gateway_requests_total",
				Help: "Total number of gateway calls by variant and outcome",
			},
			[]string{"variant", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "termuxdev_gateway_duration_seconds",
				Help:    "Duration of gateway calls, including the external request",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"variant"},
		),
		InFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "termuxdev_gateway_in_flight",
				Help: "Gateway calls waiting on the external service",
			},
			[]string{"variant"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Requests, m.Duration, m.InFlight)
	}
	return m
}

// Hooks returns gateway callbacks that record into m.
func (m *Metrics) Hooks() advice.Hooks {
	return advice.Hooks{
		OnCall: func(ctx context.Context, e *advice.CallEvent) {
			m.InFlight.WithLabelValues(string(e.Kind)).Inc()
		},
		OnResult: func(ctx context.Context, e *advice.CallEvent) {
			kind := string(e.Kind)
			m.InFlight.WithLabelValues(kind).Dec()
			m.Requests.WithLabelValues(kind, string(e.Outcome)).Inc()
			m.Duration.WithLabelValues(kind).Observe(e.Duration.Seconds())
		},
	}
}
