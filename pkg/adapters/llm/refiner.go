package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/requery/pkg/ports"
)

// Refiner implements ports.Refiner on top of a ChatClient. The
// non-repetition and escalate-after-4-turns rules live in the prompt
// contract; the engine only supplies the history.
type Refiner struct {
	client ChatClient
}

// NewRefiner creates a refiner capability backed by the given model client.
func NewRefiner(client ChatClient) *Refiner {
	return &Refiner{client: client}
}

// Rephrase asks the model for a replacement question.
func (r *Refiner) Rephrase(ctx context.Context, req ports.RephraseRequest) (string, error) {
	reply, err := r.client.Complete(ctx, refinerSystemPrompt, buildRefinerUserPrompt(req))
	if err != nil {
		return "", fmt.Errorf("refiner completion: %w", err)
	}
	next := strings.TrimSpace(strings.Trim(strings.TrimSpace(reply), `"`))
	if next == "" {
		return "", fmt.Errorf("refiner returned an empty question")
	}
	return next, nil
}
