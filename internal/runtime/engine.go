package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/requery/internal/logging"
	"github.com/aretw0/requery/pkg/domain"
	"github.com/aretw0/requery/pkg/ports"
)

const (
	// DefaultRetryBudget bounds the number of generate/judge cycles per
	// invocation before the last result is formatted as-is.
	DefaultRetryBudget = 5

	// DefaultMaxPayload caps query and result payloads (in bytes) before
	// they are threaded further through the loop.
	DefaultMaxPayload = 3000
)

// Engine drives the refinement state machine for one invocation at a time.
// It holds no per-invocation state itself; everything mutable lives in the
// *domain.State passed to Run, so a single Engine is safe for concurrent
// invocations.
type Engine struct {
	executor  ports.QueryExecutor
	judge     ports.Judge
	refiner   ports.Refiner
	formatter ports.Formatter

	dictionary  domain.Dictionary
	retryBudget int
	maxPayload  int
	portTimeout time.Duration
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
}

// NewEngine wires the four capability ports into a refinement engine.
func NewEngine(executor ports.QueryExecutor, judge ports.Judge, refiner ports.Refiner, formatter ports.Formatter, opts ...EngineOption) *Engine {
	e := &Engine{
		executor:    executor,
		judge:       judge,
		refiner:     refiner,
		formatter:   formatter,
		retryBudget: DefaultRetryBudget,
		maxPayload:  DefaultMaxPayload,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes the loop for one invocation until a final answer is written
// into st or a fatal port failure occurs.
//
// Transitions: Generating -> Judging always (execution failures degrade to
// the EmptyResult sentinel); Judging -> Formatting on a Pass verdict or an
// exhausted budget; Judging -> Refining otherwise; Refining -> Generating
// always. Exactly one judgment per generation, exactly one refinement per
// Fail verdict.
func (e *Engine) Run(ctx context.Context, st *domain.State) error {
	start := time.Now()
	forced := false

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Generate
		st.Phase = domain.PhaseGenerating
		genStart := time.Now()
		query, result, err := e.generate(ctx, st.Question)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			e.logger.Warn("query execution failed, substituting empty result",
				"invocation", st.ID, "err", err)
			query, result = domain.EmptyResult, domain.EmptyResult
		}
		st.Query = truncate(query, e.maxPayload)
		st.Result = truncate(result, e.maxPayload)
		e.emitGenerate(ctx, st, err != nil, time.Since(genStart))

		// Judge
		st.Phase = domain.PhaseJudging
		st.Attempts++
		judgeStart := time.Now()
		reply, err := e.evaluate(ctx, st.Question, st.Result)
		if err != nil {
			return &domain.PortError{Port: domain.PortJudge, Err: err}
		}
		verdict := domain.ParseVerdict(reply)
		exhausted := st.Attempts >= e.retryBudget
		forced = !verdict.Pass && exhausted
		e.emitVerdict(ctx, st, verdict, forced, time.Since(judgeStart))

		if verdict.Pass || exhausted {
			if forced {
				e.logger.Warn("retry budget exhausted, formatting last result",
					"invocation", st.ID, "attempts", st.Attempts)
			}
			break
		}

		// Refine
		st.Phase = domain.PhaseRefining
		next, err := e.rephrase(ctx, ports.RephraseRequest{
			Question:   st.Question,
			Feedback:   verdict.Reason,
			History:    st.QuestionHistory,
			Dictionary: e.dictionary,
		})
		if err != nil {
			return &domain.PortError{Port: domain.PortRefiner, Err: err}
		}
		st.Refine(next, verdict.Reason)
		e.emitRefine(ctx, st)
		e.logger.Debug("question refined",
			"invocation", st.ID, "turn", len(st.QuestionHistory), "question", next)
	}

	// Format
	st.Phase = domain.PhaseFormatting
	answer, err := e.format(ctx, st.Question, st.Query, st.Result)
	if err != nil {
		return &domain.PortError{Port: domain.PortFormatter, Err: err}
	}
	st.FinalAnswer = answer
	st.Phase = domain.PhaseDone
	e.emitAnswer(ctx, st, forced, time.Since(start))
	return nil
}

// callCtx bounds a single port call when a timeout is configured, while
// still propagating the caller's cancellation.
func (e *Engine) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.portTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, e.portTimeout)
}

func (e *Engine) generate(ctx context.Context, question string) (string, string, error) {
	ctx, cancel := e.callCtx(ctx)
	defer cancel()
	return e.executor.Generate(ctx, question)
}

func (e *Engine) evaluate(ctx context.Context, question, result string) (string, error) {
	ctx, cancel := e.callCtx(ctx)
	defer cancel()
	return e.judge.Evaluate(ctx, question, result)
}

func (e *Engine) rephrase(ctx context.Context, req ports.RephraseRequest) (string, error) {
	ctx, cancel := e.callCtx(ctx)
	defer cancel()
	return e.refiner.Rephrase(ctx, req)
}

func (e *Engine) format(ctx context.Context, question, query, result string) (string, error) {
	ctx, cancel := e.callCtx(ctx)
	defer cancel()
	return e.formatter.Format(ctx, question, query, result)
}

func (e *Engine) emitGenerate(ctx context.Context, st *domain.State, failed bool, d time.Duration) {
	if e.hooks.OnGenerate == nil {
		return
	}
	e.hooks.OnGenerate(ctx, &domain.GenerateEvent{
		InvocationID: st.ID,
		Attempt:      st.Attempts + 1,
		Question:     st.Question,
		Failed:       failed,
		Duration:     d,
	})
}

func (e *Engine) emitVerdict(ctx context.Context, st *domain.State, v domain.Verdict, forced bool, d time.Duration) {
	if e.hooks.OnVerdict == nil {
		return
	}
	e.hooks.OnVerdict(ctx, &domain.VerdictEvent{
		InvocationID: st.ID,
		Attempt:      st.Attempts,
		Pass:         v.Pass,
		Forced:       forced,
		Reason:       v.Reason,
		Duration:     d,
	})
}

func (e *Engine) emitRefine(ctx context.Context, st *domain.State) {
	if e.hooks.OnRefine == nil {
		return
	}
	e.hooks.OnRefine(ctx, &domain.RefineEvent{
		InvocationID: st.ID,
		Turn:         len(st.QuestionHistory),
		Question:     st.Question,
	})
}

func (e *Engine) emitAnswer(ctx context.Context, st *domain.State, forced bool, d time.Duration) {
	if e.hooks.OnAnswer == nil {
		return
	}
	e.hooks.OnAnswer(ctx, &domain.AnswerEvent{
		InvocationID: st.ID,
		Attempts:     st.Attempts,
		Forced:       forced,
		Duration:     d,
	})
}

func truncate(s string, max int) string {
	if max > 0 && len(s) > max {
		return s[:max]
	}
	return s
}
