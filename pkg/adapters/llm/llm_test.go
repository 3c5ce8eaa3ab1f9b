package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/requery/pkg/domain"
	"github.com/aretw0/requery/pkg/ports"
)

// fakeClient records the last prompt pair and replies with a canned string.
type fakeClient struct {
	reply  string
	err    error
	system string
	user   string
}

func (f *fakeClient) Complete(ctx context.Context, system, user string) (string, error) {
	f.system = system
	f.user = user
	return f.reply, f.err
}

func TestJudge_Evaluate(t *testing.T) {
	fc := &fakeClient{reply: "Fail: counts are missing"}
	j := NewJudge(fc)

	reply, err := j.Evaluate(context.Background(), "How many AEs per severity?", `[{"AESEV":"Mild"}]`)
	require.NoError(t, err)
	assert.Equal(t, "Fail: counts are missing", reply)

	assert.Contains(t, fc.user, "How many AEs per severity?")
	assert.Contains(t, fc.user, `[{"AESEV":"Mild"}]`)
	// The judge never sees the query; the prompt says so.
	assert.Contains(t, fc.system, "never see the query")
}

func TestJudge_Error(t *testing.T) {
	j := NewJudge(&fakeClient{err: errors.New("model down")})
	_, err := j.Evaluate(context.Background(), "q", "r")
	assert.Error(t, err)
}

func TestRefiner_Rephrase(t *testing.T) {
	dict, err := domain.ParseDictionary("Coronary Artery Disease = CAD\nPatient = Subject")
	require.NoError(t, err)

	fc := &fakeClient{reply: "\"List subject IDs with CAD\"\n"}
	r := NewRefiner(fc)

	req := ports.RephraseRequest{
		Question:   "Enumerate patients presenting coronary artery disease",
		Feedback:   "Fail: irrelevant columns",
		History:    []string{"first attempt", "second attempt"},
		Dictionary: dict,
	}
	next, err := r.Rephrase(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "List subject IDs with CAD", next)

	// The request threads everything the contract requires: the failed
	// question, the feedback, the full history and the dictionary.
	assert.Contains(t, fc.user, req.Question)
	assert.Contains(t, fc.user, req.Feedback)
	assert.Contains(t, fc.user, "first attempt")
	assert.Contains(t, fc.user, "second attempt")
	assert.Contains(t, fc.user, "Coronary Artery Disease = CAD")
	// Non-repetition and escalation are prompt contracts.
	assert.Contains(t, fc.system, "must not reproduce")
	assert.Contains(t, fc.system, "4 or more entries")
}

func TestRefiner_EmptyReply(t *testing.T) {
	r := NewRefiner(&fakeClient{reply: "  \n"})
	_, err := r.Rephrase(context.Background(), ports.RephraseRequest{Question: "q"})
	assert.Error(t, err)
}

func TestFormatter_Format(t *testing.T) {
	fc := &fakeClient{reply: "There are 12 subjects with CAD."}
	f := NewFormatter(fc)

	answer, err := f.Format(context.Background(), "Count subjects with CAD", "SELECT COUNT(*)", `[{"count":12}]`)
	require.NoError(t, err)
	assert.Equal(t, "There are 12 subjects with CAD.", answer)
	assert.Contains(t, fc.user, "SELECT COUNT(*)")
}

func TestFormatter_OmitsSentinelQuery(t *testing.T) {
	fc := &fakeClient{reply: "No data was available."}
	f := NewFormatter(fc)

	_, err := f.Format(context.Background(), "q", domain.EmptyResult, domain.EmptyResult)
	require.NoError(t, err)
	assert.NotContains(t, fc.user, "Generated Query")
}

func TestHTTPClient_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, "hello", req.Prompt)

		json.NewEncoder(w).Encode(generateResponse{Response: "  world \n", Done: true})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "test-model")
	out, err := c.Complete(context.Background(), "sys", "hello")
	require.NoError(t, err)
	assert.Equal(t, "world", out)
}

func TestHTTPClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "missing")
	_, err := c.Complete(context.Background(), "", "hi")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "model not found"))
}

func TestNewHTTPClient_SchemePrefix(t *testing.T) {
	c := NewHTTPClient("localhost:11434", "m")
	assert.Equal(t, "http://localhost:11434", c.endpoint)
}
