package domain

import (
	"context"
	"time"
)

// GenerateEvent is emitted after each query generation/execution attempt.
type GenerateEvent struct {
	InvocationID string        `json:"invocation_id"`
	Attempt      int           `json:"attempt"`
	Question     string        `json:"question"`
	Failed       bool          `json:"failed"`
	Duration     time.Duration `json:"duration"`
}

// VerdictEvent is emitted after each judgment.
type VerdictEvent struct {
	InvocationID string        `json:"invocation_id"`
	Attempt      int           `json:"attempt"`
	Pass         bool          `json:"pass"`
	// Forced is set when the retry budget expired and the verdict was
	// overridden to proceed with the last available result.
	Forced   bool          `json:"forced"`
	Reason   string        `json:"reason,omitempty"`
	Duration time.Duration `json:"duration"`
}

// RefineEvent is emitted after the refiner produces a replacement question.
type RefineEvent struct {
	InvocationID string `json:"invocation_id"`
	Turn         int    `json:"turn"`
	Question     string `json:"question"`
}

// AnswerEvent is emitted once per completed invocation.
type AnswerEvent struct {
	InvocationID string        `json:"invocation_id"`
	Attempts     int           `json:"attempts"`
	Forced       bool          `json:"forced"`
	Duration     time.Duration `json:"duration"`
}

// LifecycleHooks defines observability callbacks for the refinement engine.
// All fields are optional; nil hooks are skipped.
type LifecycleHooks struct {
	OnGenerate func(context.Context, *GenerateEvent)
	OnVerdict  func(context.Context, *VerdictEvent)
	OnRefine   func(context.Context, *RefineEvent)
	OnAnswer   func(context.Context, *AnswerEvent)
}
