// Package requery implements an iterative answer-refinement orchestrator:
// given a natural-language question over structured domain data, it asks a
// query-execution capability to produce and run a query, a judge capability
// to decide whether the result plausibly answers the question, and, on
// failure, a refiner capability to rephrase the question using feedback and
// a domain term dictionary before retrying. Once judged acceptable (or the
// retry budget is spent), a formatter capability turns the structured result
// into natural language.
//
// The capabilities are consumed through the narrow interfaces in pkg/ports;
// ready-made adapters live under pkg/adapters.
package requery

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/requery/internal/logging"
	"github.com/aretw0/requery/internal/runtime"
	"github.com/aretw0/requery/pkg/domain"
	"github.com/aretw0/requery/pkg/ports"
)

// Version is the library version, surfaced by the CLI and the MCP server.
const Version = "0.1.0"

// Engine is the high-level entry point. It wraps the internal refinement
// runtime and optionally archives completed invocations to a transcript
// store. A single Engine serves concurrent invocations; each Ask allocates
// its own conversation state.
type Engine struct {
	runtime *runtime.Engine
	store   ports.TranscriptStore
	logger  *slog.Logger

	dictionary  domain.Dictionary
	retryBudget int
	portTimeout time.Duration
	maxPayload  int
	hooks       domain.LifecycleHooks
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithDictionary sets the domain term dictionary supplied to every
// refinement. Empty by default.
func WithDictionary(d domain.Dictionary) Option {
	return func(e *Engine) {
		e.dictionary = d
	}
}

// WithRetryBudget sets the maximum number of generate/judge cycles per
// invocation (default 5).
func WithRetryBudget(budget int) Option {
	return func(e *Engine) {
		e.retryBudget = budget
	}
}

// WithPortTimeout bounds each individual capability call.
func WithPortTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.portTimeout = d
	}
}

// WithMaxPayload overrides the payload truncation bound (default 3000 bytes).
func WithMaxPayload(n int) Option {
	return func(e *Engine) {
		e.maxPayload = n
	}
}

// WithLogger sets a structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithTranscripts archives every completed invocation to the given store.
// Archiving is best effort: a store failure is logged, never surfaced.
func WithTranscripts(store ports.TranscriptStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// New wires the four capability ports into an Engine.
func New(executor ports.QueryExecutor, judge ports.Judge, refiner ports.Refiner, formatter ports.Formatter, opts ...Option) (*Engine, error) {
	if executor == nil || judge == nil || refiner == nil || formatter == nil {
		return nil, domain.ErrMissingPort
	}

	e := &Engine{
		retryBudget: runtime.DefaultRetryBudget,
		maxPayload:  runtime.DefaultMaxPayload,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.runtime = runtime.NewEngine(executor, judge, refiner, formatter,
		runtime.WithDictionary(e.dictionary),
		runtime.WithRetryBudget(e.retryBudget),
		runtime.WithPortTimeout(e.portTimeout),
		runtime.WithMaxPayload(e.maxPayload),
		runtime.WithLogger(e.logger),
		runtime.WithLifecycleHooks(e.hooks),
	)
	return e, nil
}

// Ask runs one invocation to completion and returns the final
// natural-language answer.
func (e *Engine) Ask(ctx context.Context, question string) (string, error) {
	t, err := e.Invoke(ctx, question)
	if err != nil {
		return "", err
	}
	return t.Answer, nil
}

// Invoke runs one invocation to completion and returns its full transcript
// (answer, attempts, question history). Callers that only need the answer
// can use Ask.
func (e *Engine) Invoke(ctx context.Context, question string) (domain.Transcript, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.Transcript{}, domain.ErrNoQuestion
	}

	st := domain.NewState(question)
	e.logger.Info("invocation started", "invocation", st.ID, "question", question)

	if err := e.runtime.Run(ctx, st); err != nil {
		e.logger.Error("invocation failed", "invocation", st.ID, "err", err)
		return domain.Transcript{}, err
	}

	t := domain.NewTranscript(st)
	e.logger.Info("invocation completed",
		"invocation", st.ID, "attempts", st.Attempts, "refinements", len(st.QuestionHistory))

	if e.store != nil {
		if err := e.store.Save(ctx, t); err != nil {
			e.logger.Warn("transcript archive failed", "invocation", st.ID, "err", err)
		}
	}
	return t, nil
}
