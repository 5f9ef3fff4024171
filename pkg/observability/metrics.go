// Package observability wires the engine's lifecycle hooks to Prometheus
// counters.
package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mitsumolabs/quotetree/pkg/domain"
)

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	StepsTotal           *prometheus.CounterVec
	ClassificationsTotal *prometheus.CounterVec
	FallbacksTotal       prometheus.Counter
	EstimatesTotal       prometheus.Counter
}

// NewMetrics creates and registers the collectors on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StepsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quotetree_steps_total",
			Help: "Steps entered, by step id.",
		}, []string{"step"}),
		ClassificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quotetree_classifications_total",
			Help: "Free-text classifications, by reported confidence.",
		}, []string{"confidence"}),
		FallbacksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quotetree_classifier_fallbacks_total",
			Help: "Classifications that degraded to the keyword fallback.",
		}),
		EstimatesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quotetree_estimates_total",
			Help: "Completed three-tier estimates.",
		}),
	}
	reg.MustRegister(m.StepsTotal, m.ClassificationsTotal, m.FallbacksTotal, m.EstimatesTotal)
	return m
}

// Hooks returns lifecycle hooks that feed these collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(_ context.Context, e *domain.StepEvent) {
			m.StepsTotal.WithLabelValues(e.StepID).Inc()
		},
		OnClassify: func(_ context.Context, e *domain.ClassifyEvent) {
			m.ClassificationsTotal.WithLabelValues(e.Confidence).Inc()
		},
		OnFallback: func(_ context.Context, _ *domain.ClassifyEvent) {
			m.FallbacksTotal.Inc()
		},
		OnEstimate: func(_ context.Context, _ *domain.EstimateEvent) {
			m.EstimatesTotal.Inc()
		},
	}
}
