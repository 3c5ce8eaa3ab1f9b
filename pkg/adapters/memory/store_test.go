package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/requery/pkg/domain"
)

func TestStore_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	tr := domain.Transcript{
		ID:              "inv-1",
		Question:        "Count subjects with CAD",
		Answer:          "There are 12.",
		Attempts:        2,
		QuestionHistory: []string{"original"},
	}
	if err := s.Save(ctx, tr); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.Load(ctx, "inv-1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Answer != "There are 12." || got.Attempts != 2 {
		t.Errorf("Loaded transcript wrong: %+v", got)
	}

	// Mutating the loaded copy must not affect the store.
	got.QuestionHistory[0] = "mutated"
	again, _ := s.Load(ctx, "inv-1")
	if again.QuestionHistory[0] != "original" {
		t.Error("Store leaked a mutable reference")
	}

	ids, err := s.List(ctx)
	if err != nil || len(ids) != 1 {
		t.Fatalf("List: ids=%v err=%v", ids, err)
	}

	if err := s.Delete(ctx, "inv-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Load(ctx, "inv-1"); !errors.Is(err, domain.ErrTranscriptNotFound) {
		t.Errorf("Expected ErrTranscriptNotFound, got %v", err)
	}
}

func TestStore_LoadMissing(t *testing.T) {
	s := NewStore()
	if _, err := s.Load(context.Background(), "nope"); !errors.Is(err, domain.ErrTranscriptNotFound) {
		t.Errorf("Expected ErrTranscriptNotFound, got %v", err)
	}
}
