package observability

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/aretw0/requery/pkg/domain"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnGenerate(ctx, &domain.GenerateEvent{Failed: false})
	hooks.OnGenerate(ctx, &domain.GenerateEvent{Failed: true})
	hooks.OnVerdict(ctx, &domain.VerdictEvent{Pass: false})
	hooks.OnVerdict(ctx, &domain.VerdictEvent{Pass: true})
	hooks.OnAnswer(ctx, &domain.AnswerEvent{Attempts: 2})

	if got := testutil.ToFloat64(m.generations.WithLabelValues("ok")); got != 1 {
		t.Errorf("generations{ok} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.generations.WithLabelValues("failed")); got != 1 {
		t.Errorf("generations{failed} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.verdicts.WithLabelValues("fail")); got != 1 {
		t.Errorf("verdicts{fail} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.invocations.WithLabelValues("pass")); got != 1 {
		t.Errorf("invocations{pass} = %v, want 1", got)
	}
}

func TestMetrics_ForcedOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	hooks := m.Hooks()

	hooks.OnVerdict(context.Background(), &domain.VerdictEvent{Pass: false, Forced: true})
	hooks.OnAnswer(context.Background(), &domain.AnswerEvent{Attempts: 5, Forced: true})

	if got := testutil.ToFloat64(m.verdicts.WithLabelValues("forced")); got != 1 {
		t.Errorf("verdicts{forced} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.invocations.WithLabelValues("forced")); got != 1 {
		t.Errorf("invocations{forced} = %v, want 1", got)
	}
}
