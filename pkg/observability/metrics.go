package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/requery/pkg/domain"
)

// Metrics bundles the prometheus collectors fed by engine lifecycle hooks.
type Metrics struct {
	generations *prometheus.CounterVec
	verdicts    *prometheus.CounterVec
	invocations *prometheus.CounterVec
	attempts    prometheus.Histogram
	portSeconds *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "requery_generations_total",
				Help: "Query generation attempts, by execution outcome",
			},
			[]string{"outcome"},
		),
		verdicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "requery_verdicts_total",
				Help: "Judge verdicts, by result (pass, fail, forced)",
			},
			[]string{"verdict"},
		),
		invocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "requery_invocations_total",
				Help: "Completed invocations, by outcome (pass, forced)",
			},
			[]string{"outcome"},
		),
		attempts: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "requery_invocation_attempts",
				Help:    "Generate/judge cycles used per completed invocation",
				Buckets: prometheus.LinearBuckets(1, 1, 10),
			},
		),
		portSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "requery_port_duration_seconds",
				Help: "Duration of capability port calls",
			},
			[]string{"port"},
		),
	}
	reg.MustRegister(m.generations, m.verdicts, m.invocations, m.attempts, m.portSeconds)
	return m
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnGenerate: func(ctx context.Context, e *domain.GenerateEvent) {
			outcome := "ok"
			if e.Failed {
				outcome = "failed"
			}
			m.generations.WithLabelValues(outcome).Inc()
			m.portSeconds.WithLabelValues(domain.PortQueryExecutor).Observe(e.Duration.Seconds())
		},
		OnVerdict: func(ctx context.Context, e *domain.VerdictEvent) {
			switch {
			case e.Pass:
				m.verdicts.WithLabelValues("pass").Inc()
			case e.Forced:
				m.verdicts.WithLabelValues("forced").Inc()
			default:
				m.verdicts.WithLabelValues("fail").Inc()
			}
			m.portSeconds.WithLabelValues(domain.PortJudge).Observe(e.Duration.Seconds())
		},
		OnAnswer: func(ctx context.Context, e *domain.AnswerEvent) {
			outcome := "pass"
			if e.Forced {
				outcome = "forced"
			}
			m.invocations.WithLabelValues(outcome).Inc()
			m.attempts.Observe(float64(e.Attempts))
		},
	}
}
