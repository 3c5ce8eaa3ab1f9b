package domain

import (
	"time"

	"github.com/google/uuid"
)

// Phase identifies where an invocation currently sits in the refinement loop.
type Phase string

const (
	PhaseGenerating Phase = "generating"
	PhaseJudging    Phase = "judging"
	PhaseRefining   Phase = "refining"
	PhaseFormatting Phase = "formatting"
	PhaseDone       Phase = "done"
)

// EmptyResult is substituted for the query and result payloads when query
// execution fails. The loop still reaches a judgment so the invocation can
// recover by refining the question instead of aborting.
const EmptyResult = "NONE"

// State is the conversation state of a single invocation. It is created
// fresh per question, owned exclusively by the engine while the invocation
// runs, and discarded (or archived as a Transcript) afterwards. It is never
// shared between concurrent invocations.
type State struct {
	// ID correlates log lines, events and the archived transcript.
	ID string `json:"id"`

	// Phase tracks the current step of the loop.
	Phase Phase `json:"phase"`

	// Question is the question sent for query generation. Only a
	// refinement replaces it.
	Question string `json:"question"`

	// Query is the most recent generated query, opaque text.
	Query string `json:"query"`

	// Result is the most recent execution payload, opaque text.
	// EmptyResult when execution failed.
	Result string `json:"result"`

	// QuestionHistory holds every previously attempted question, oldest
	// first. It grows by exactly one entry per refinement and never
	// contains the present Question.
	QuestionHistory []string `json:"question_history"`

	// Feedback is the most recent Fail reason from the judge, consumed by
	// the next refinement.
	Feedback string `json:"feedback"`

	// Attempts counts completed generate/judge cycles.
	Attempts int `json:"attempts"`

	// FinalAnswer is written exactly once, by the terminal formatting
	// step. Non-empty means the invocation completed.
	FinalAnswer string `json:"final_answer"`

	// StartedAt records invocation start for transcripts and metrics.
	StartedAt time.Time `json:"started_at"`
}

// NewState creates a clean per-invocation state for the given question.
func NewState(question string) *State {
	return &State{
		ID:        uuid.NewString(),
		Phase:     PhaseGenerating,
		Question:  question,
		StartedAt: time.Now().UTC(),
	}
}

// Refine archives the current question into the history and replaces it.
// The append happens before the overwrite, so the history never contains
// the question currently in flight.
func (s *State) Refine(next, feedback string) {
	s.QuestionHistory = append(s.QuestionHistory, s.Question)
	s.Question = next
	s.Feedback = feedback
}

// Done reports whether a terminal answer has been written.
func (s *State) Done() bool {
	return s.Phase == PhaseDone
}
