// Package memory provides an in-memory TranscriptStore, mainly for tests
// and single-process deployments.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/requery/pkg/domain"
)

// Store implements ports.TranscriptStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.Transcript
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Transcript),
	}
}

// Save persists the transcript in memory.
func (s *Store) Save(ctx context.Context, t domain.Transcript) error {
	// Copy the history so later caller mutation can't leak into the store.
	history := make([]string, len(t.QuestionHistory))
	copy(history, t.QuestionHistory)
	t.QuestionHistory = history

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[t.ID] = t
	return nil
}

// Load retrieves a transcript by ID.
func (s *Store) Load(ctx context.Context, id string) (domain.Transcript, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.data[id]
	if !ok {
		return domain.Transcript{}, domain.ErrTranscriptNotFound
	}

	history := make([]string, len(t.QuestionHistory))
	copy(history, t.QuestionHistory)
	t.QuestionHistory = history
	return t, nil
}

// List returns the stored transcript IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}

// Delete removes a transcript.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}
