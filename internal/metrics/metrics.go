package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the engine. A nil *Metrics is
// valid and records nothing, which is how metrics are disabled.
type Metrics struct {
	registry *prometheus.Registry

	Decisions          *prometheus.CounterVec
	Evaluations        *prometheus.CounterVec
	EvaluationDuration prometheus.Histogram
	Resolutions        *prometheus.CounterVec
	RefDataFallbacks   prometheus.Counter
}

// New creates and registers all collectors on a fresh registry.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decisions_total",
			Help:      "Retention decisions made per defendant, by matching rule and policy type",
		}, []string{"rule", "policy_type"}),
		Evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Hearing evaluations processed, by outcome",
		}, []string{"outcome"}),
		EvaluationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Time spent evaluating a hearing, including reference-data lookups",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		Resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "priority_resolutions_total",
			Help:      "Priority resolutions across competing policies, by selected policy type",
		}, []string{"policy_type"}),
		RefDataFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refdata_fallbacks_total",
			Help:      "Evaluations that used the configured remittal ids because reference data was unavailable",
		}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveDecision(rule, policyType string) {
	if m == nil {
		return
	}
	m.Decisions.WithLabelValues(rule, policyType).Inc()
}

func (m *Metrics) ObserveEvaluation(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Evaluations.WithLabelValues(outcome).Inc()
	m.EvaluationDuration.Observe(elapsed.Seconds())
}

// ObserveResolution counts a priority resolution; failed resolutions are
// labelled "error".
func (m *Metrics) ObserveResolution(policyType string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		policyType = "error"
	}
	m.Resolutions.WithLabelValues(policyType).Inc()
}

func (m *Metrics) IncRefDataFallback() {
	if m == nil {
		return
	}
	m.RefDataFallbacks.Inc()
}
