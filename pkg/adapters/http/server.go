// Package http exposes the refinement engine as a small JSON API:
// one question in, one natural-language answer out, plus read access to
// archived transcripts when a store is configured.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/requery/internal/logging"
	"github.com/aretw0/requery/pkg/domain"
	"github.com/aretw0/requery/pkg/ports"
)

// Engine is the slice of the requery engine the server needs.
type Engine interface {
	Invoke(ctx context.Context, question string) (domain.Transcript, error)
}

// Server handles the HTTP surface.
type Server struct {
	engine Engine
	store  ports.TranscriptStore
	logger *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithTranscriptStore enables the read-only /transcripts endpoints.
func WithTranscriptStore(store ports.TranscriptStore) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		engine: engine,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.health)
	r.Post("/ask", s.ask)
	if s.store != nil {
		r.Get("/transcripts", s.listTranscripts)
		r.Get("/transcripts/{id}", s.getTranscript)
	}
	return r
}

// AskRequest is the body of POST /ask.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse is the reply of POST /ask.
type AskResponse struct {
	InvocationID string `json:"invocation_id"`
	Answer       string `json:"answer"`
	Attempts     int    `json:"attempts"`
	Refinements  int    `json:"refinements"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) ask(w http.ResponseWriter, r *http.Request) {
	var body AskRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("ask: invalid request body", "err", err)
		return
	}

	t, err := s.engine.Invoke(r.Context(), body.Question)
	if err != nil {
		s.writeInvokeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AskResponse{
		InvocationID: t.ID,
		Answer:       t.Answer,
		Attempts:     t.Attempts,
		Refinements:  len(t.QuestionHistory),
	})
}

func (s *Server) writeInvokeError(w http.ResponseWriter, err error) {
	var pe *domain.PortError
	switch {
	case errors.Is(err, domain.ErrNoQuestion):
		http.Error(w, "question is required", http.StatusBadRequest)
	case errors.As(err, &pe):
		// A capability collaborator failed; the caller gets an explicit
		// error instead of a misleading empty answer.
		http.Error(w, pe.Error(), http.StatusBadGateway)
		s.logger.Error("ask: capability failure", "port", pe.Port, "err", pe.Err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		http.Error(w, "request cancelled", http.StatusRequestTimeout)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
		s.logger.Error("ask: invocation failed", "err", err)
	}
}

func (s *Server) listTranscripts(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		http.Error(w, "failed to list transcripts", http.StatusInternalServerError)
		s.logger.Error("transcripts: list failed", "err", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"ids": ids})
}

func (s *Server) getTranscript(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	t, err := s.store.Load(r.Context(), id)
	if errors.Is(err, domain.ErrTranscriptNotFound) {
		http.Error(w, "transcript not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "failed to load transcript", http.StatusInternalServerError)
		s.logger.Error("transcripts: load failed", "id", id, "err", err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}
