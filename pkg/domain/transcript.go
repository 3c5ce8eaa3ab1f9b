package domain

import "time"

// Transcript is the write-once record of a completed invocation, archived
// for audit and debugging. The live State stays private to the engine; the
// transcript is built from it only after the terminal answer is written.
type Transcript struct {
	ID              string    `json:"id"`
	Question        string    `json:"question"`
	FinalQuestion   string    `json:"final_question"`
	Query           string    `json:"query"`
	Result          string    `json:"result"`
	Answer          string    `json:"answer"`
	Attempts        int       `json:"attempts"`
	QuestionHistory []string  `json:"question_history,omitempty"`
	StartedAt       time.Time `json:"started_at"`
	CompletedAt     time.Time `json:"completed_at"`
}

// NewTranscript snapshots a finished state into a transcript.
func NewTranscript(s *State) Transcript {
	original := s.Question
	if len(s.QuestionHistory) > 0 {
		original = s.QuestionHistory[0]
	}
	history := make([]string, len(s.QuestionHistory))
	copy(history, s.QuestionHistory)
	return Transcript{
		ID:              s.ID,
		Question:        original,
		FinalQuestion:   s.Question,
		Query:           s.Query,
		Result:          s.Result,
		Answer:          s.FinalAnswer,
		Attempts:        s.Attempts,
		QuestionHistory: history,
		StartedAt:       s.StartedAt,
		CompletedAt:     time.Now().UTC(),
	}
}
