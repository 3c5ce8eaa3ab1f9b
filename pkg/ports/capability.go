package ports

import (
	"context"

	"github.com/aretw0/requery/pkg/domain"
)

// QueryExecutor turns a natural-language question into a query artifact and
// its execution payload. Both are opaque text to the engine. An error is
// absorbed by the engine as domain.EmptyResult rather than aborting the
// invocation.
type QueryExecutor interface {
	Generate(ctx context.Context, question string) (query, result string, err error)
}

// Judge evaluates whether a result payload plausibly answers a question.
// It sees only the question and the result, never the query. The reply is
// the raw verdict text ("Pass" or "Fail: reason"), parsed by the engine via
// domain.ParseVerdict. An error is fatal to the invocation.
type Judge interface {
	Evaluate(ctx context.Context, question, result string) (string, error)
}

// RephraseRequest carries everything a refinement needs. History plus
// Question are the values the new phrasing must not reproduce; the
// constraint is advisory (enforced by the capability's contract, not
// mechanically by the engine, which cannot verify semantic equivalence).
type RephraseRequest struct {
	// Question is the phrasing that just failed.
	Question string
	// Feedback is the judge's Fail reason for the last attempt.
	Feedback string
	// History lists every previously attempted question, oldest first.
	History []string
	// Dictionary maps domain long forms to canonical short forms.
	Dictionary domain.Dictionary
}

// Refiner produces a replacement question from feedback and history.
// An error is fatal to the invocation.
type Refiner interface {
	Rephrase(ctx context.Context, req RephraseRequest) (string, error)
}

// Formatter converts the accepted result payload into the user-facing
// natural-language answer. Invoked exactly once per invocation; an error is
// fatal.
type Formatter interface {
	Format(ctx context.Context, question, query, result string) (string, error)
}
