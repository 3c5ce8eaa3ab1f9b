package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/requery/pkg/domain"
	"github.com/aretw0/requery/pkg/ports"
)

const mask = "***"

type redactionMiddleware struct {
	next     ports.TranscriptStore
	patterns []*regexp.Regexp
}

// NewRedactionMiddleware creates a middleware that masks every match of the
// given patterns in the free-text fields of a transcript before it is
// archived. Questions about patient data routinely quote names, record
// numbers and the like; the archive must not retain them verbatim.
func NewRedactionMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.TranscriptStore) ports.TranscriptStore {
		return &redactionMiddleware{next: next, patterns: patterns}
	}
}

func (m *redactionMiddleware) Save(ctx context.Context, t domain.Transcript) error {
	// Transcripts are passed by value, but the history slice is shared
	// with the caller. Copy it so the caller's transcript stays intact.
	history := make([]string, len(t.QuestionHistory))
	for i, q := range t.QuestionHistory {
		history[i] = m.scrub(q)
	}
	t.QuestionHistory = history

	t.Question = m.scrub(t.Question)
	t.FinalQuestion = m.scrub(t.FinalQuestion)
	t.Query = m.scrub(t.Query)
	t.Result = m.scrub(t.Result)
	t.Answer = m.scrub(t.Answer)

	return m.next.Save(ctx, t)
}

func (m *redactionMiddleware) Load(ctx context.Context, id string) (domain.Transcript, error) {
	return m.next.Load(ctx, id)
}

func (m *redactionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *redactionMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *redactionMiddleware) scrub(s string) string {
	for _, p := range m.patterns {
		s = p.ReplaceAllString(s, mask)
	}
	return s
}
