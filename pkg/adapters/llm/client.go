package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ChatClient is the minimal capability the adapters in this package need
// from a language model: one completion per call.
type ChatClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// HTTPClient implements ChatClient against an Ollama-compatible
// /api/generate endpoint.
type HTTPClient struct {
	endpoint string
	model    string
	httpc    *http.Client
}

// ClientOption configures the HTTPClient.
type ClientOption func(*HTTPClient)

// WithHTTPClient overrides the underlying *http.Client (e.g. for custom
// transports or tighter timeouts).
func WithHTTPClient(c *http.Client) ClientOption {
	return func(h *HTTPClient) {
		h.httpc = c
	}
}

// NewHTTPClient creates a chat client for the given endpoint and model.
func NewHTTPClient(endpoint, model string, opts ...ClientOption) *HTTPClient {
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "http://" + endpoint
	}
	h := &HTTPClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    model,
		httpc:    &http.Client{Timeout: 120 * time.Second},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	System string `json:"system,omitempty"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Complete sends one non-streaming completion request.
func (h *HTTPClient) Complete(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  h.model,
		Prompt: user,
		System: system,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("model API error: %s - %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return strings.TrimSpace(out.Response), nil
}
