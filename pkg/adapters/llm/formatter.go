package llm

import (
	"context"
	"fmt"
)

// Formatter implements ports.Formatter on top of a ChatClient.
type Formatter struct {
	client ChatClient
}

// NewFormatter creates a formatter capability backed by the given model client.
func NewFormatter(client ChatClient) *Formatter {
	return &Formatter{client: client}
}

// Format converts the accepted result into the user-facing answer.
func (f *Formatter) Format(ctx context.Context, question, query, result string) (string, error) {
	reply, err := f.client.Complete(ctx, formatterSystemPrompt, buildFormatterUserPrompt(question, query, result))
	if err != nil {
		return "", fmt.Errorf("formatter completion: %w", err)
	}
	return reply, nil
}
