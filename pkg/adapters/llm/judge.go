package llm

import (
	"context"
	"fmt"
)

// Judge implements ports.Judge on top of a ChatClient. The raw model reply
// is returned unparsed; the engine applies the verdict contract.
type Judge struct {
	client ChatClient
}

// NewJudge creates a judge capability backed by the given model client.
func NewJudge(client ChatClient) *Judge {
	return &Judge{client: client}
}

// Evaluate asks the model whether the result plausibly answers the question.
func (j *Judge) Evaluate(ctx context.Context, question, result string) (string, error) {
	reply, err := j.client.Complete(ctx, judgeSystemPrompt, buildJudgeUserPrompt(question, result))
	if err != nil {
		return "", fmt.Errorf("judge completion: %w", err)
	}
	return reply, nil
}
