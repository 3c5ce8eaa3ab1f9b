package runtime

import (
	"log/slog"
	"time"

	"github.com/aretw0/requery/pkg/domain"
)

// EngineOption configures the refinement engine.
type EngineOption func(*Engine)

// WithRetryBudget sets the maximum number of generate/judge cycles per
// invocation. Values below 1 are ignored.
func WithRetryBudget(budget int) EngineOption {
	return func(e *Engine) {
		if budget >= 1 {
			e.retryBudget = budget
		}
	}
}

// WithDictionary sets the term dictionary supplied to every refinement.
func WithDictionary(d domain.Dictionary) EngineOption {
	return func(e *Engine) {
		e.dictionary = d
	}
}

// WithPortTimeout bounds each individual port call. Zero disables the bound
// (the caller's context still applies).
func WithPortTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.portTimeout = d
	}
}

// WithMaxPayload caps query/result payload size in bytes. Zero disables
// truncation.
func WithMaxPayload(n int) EngineOption {
	return func(e *Engine) {
		e.maxPayload = n
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}
