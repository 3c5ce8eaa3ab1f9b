package ports

import (
	"context"

	"github.com/aretw0/requery/pkg/domain"
)

// TranscriptStore archives completed invocations.
type TranscriptStore interface {
	// Save persists a transcript under its ID.
	Save(ctx context.Context, t domain.Transcript) error

	// Load retrieves a transcript by ID.
	// Returns domain.ErrTranscriptNotFound if it does not exist.
	Load(ctx context.Context, id string) (domain.Transcript, error)

	// List returns the IDs of stored transcripts.
	List(ctx context.Context) ([]string, error)

	// Delete removes a transcript.
	Delete(ctx context.Context, id string) error
}
