// Package selectai implements the query-execution port against a
// SelectAI-style NL2SQL gateway: an HTTP service that, given a
// natural-language prompt, either explains the SQL it would run ("showsql")
// or runs it and returns the rows as JSON ("runsql").
package selectai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/requery/pkg/domain"
)

const (
	actionShowSQL = "showsql"
	actionRunSQL  = "runsql"

	// maxPayload caps gateway payloads at the boundary, mirroring the
	// engine's own bound.
	maxPayload = 3000
)

// Executor implements ports.QueryExecutor over a SelectAI gateway.
type Executor struct {
	baseURL string
	profile string
	httpc   *http.Client
}

// Option configures the Executor.
type Option func(*Executor)

// WithProfile sets the AI profile name sent on every request.
func WithProfile(profile string) Option {
	return func(e *Executor) {
		e.profile = profile
	}
}

// WithHTTPClient overrides the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(e *Executor) {
		e.httpc = c
	}
}

// New creates an Executor for the gateway at baseURL.
func New(baseURL string, opts ...Option) *Executor {
	e := &Executor{
		baseURL: strings.TrimRight(baseURL, "/"),
		profile: "OCI_GENAI",
		httpc:   &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type generateRequest struct {
	Prompt  string `json:"prompt"`
	Action  string `json:"action"`
	Profile string `json:"profile"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// Generate produces the query artifact and its execution payload for a
// question. The two gateway actions degrade independently: a failed
// "showsql" aborts with an error (the engine substitutes the sentinel for
// both payloads), while a failed "runsql" keeps the query and degrades only
// the result to the sentinel, so the judge still sees what was attempted.
func (e *Executor) Generate(ctx context.Context, question string) (string, string, error) {
	query, err := e.call(ctx, question, actionShowSQL)
	if err != nil {
		return "", "", fmt.Errorf("generate query: %w", err)
	}

	result, err := e.call(ctx, question, actionRunSQL)
	if err != nil {
		if ctx.Err() != nil {
			return "", "", ctx.Err()
		}
		return query, domain.EmptyResult, nil
	}
	return query, result, nil
}

func (e *Executor) call(ctx context.Context, prompt, action string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Prompt:  prompt,
		Action:  action,
		Profile: e.profile,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/v1/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s request failed: %w", action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%s: gateway error %s - %s", action, resp.Status, strings.TrimSpace(string(payload)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%s: decode response: %w", action, err)
	}

	text := strings.TrimSpace(out.Text)
	if text == "" {
		return domain.EmptyResult, nil
	}
	if len(text) > maxPayload {
		text = text[:maxPayload]
	}
	return text, nil
}
