package domain

import (
	"errors"
	"fmt"
)

// ErrNoQuestion is returned when an invocation is started with an empty question.
var ErrNoQuestion = errors.New("question is empty")

// ErrMissingPort is returned when the engine is constructed without one of
// its four capability ports.
var ErrMissingPort = errors.New("all four capability ports are required")

// ErrTranscriptNotFound is returned when a transcript ID cannot be found in the store.
var ErrTranscriptNotFound = errors.New("transcript not found")

// Port names used in PortError.
const (
	PortQueryExecutor = "query-executor"
	PortJudge         = "judge"
	PortRefiner       = "refiner"
	PortFormatter     = "formatter"
)

// PortError reports a capability failure the engine cannot recover from.
// Query execution failures are absorbed into the loop as EmptyResult and
// never surface as a PortError; judge, refiner and formatter failures do,
// and they terminate the invocation without a final answer.
type PortError struct {
	Port string
	Err  error
}

func (e *PortError) Error() string {
	return fmt.Sprintf("%s port: %v", e.Port, e.Err)
}

func (e *PortError) Unwrap() error {
	return e.Err
}
