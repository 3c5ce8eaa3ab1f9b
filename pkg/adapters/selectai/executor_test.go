package selectai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/requery/pkg/domain"
)

func gateway(t *testing.T, handler func(action string, w http.ResponseWriter)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/generate", r.URL.Path)
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Prompt)
		handler(req.Action, w)
	}))
}

func respond(w http.ResponseWriter, text string) {
	json.NewEncoder(w).Encode(generateResponse{Text: text})
}

func TestExecutor_Generate(t *testing.T) {
	srv := gateway(t, func(action string, w http.ResponseWriter) {
		switch action {
		case "showsql":
			respond(w, "SELECT COUNT(*) FROM dm WHERE cad = 'Y'")
		case "runsql":
			respond(w, `[{"count":12}]`)
		}
	})
	defer srv.Close()

	ex := New(srv.URL)
	query, result, err := ex.Generate(context.Background(), "Count subjects with CAD")
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM dm WHERE cad = 'Y'", query)
	assert.Equal(t, `[{"count":12}]`, result)
}

func TestExecutor_ShowFailureAborts(t *testing.T) {
	srv := gateway(t, func(action string, w http.ResponseWriter) {
		http.Error(w, "profile not configured", http.StatusInternalServerError)
	})
	defer srv.Close()

	ex := New(srv.URL)
	_, _, err := ex.Generate(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate query")
}

func TestExecutor_RunFailureDegradesResult(t *testing.T) {
	srv := gateway(t, func(action string, w http.ResponseWriter) {
		if action == "runsql" {
			http.Error(w, "ORA-00942: table or view does not exist", http.StatusBadGateway)
			return
		}
		respond(w, "SELECT 1")
	})
	defer srv.Close()

	ex := New(srv.URL)
	query, result, err := ex.Generate(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1", query)
	assert.Equal(t, domain.EmptyResult, result)
}

func TestExecutor_EmptyPayloadIsSentinel(t *testing.T) {
	srv := gateway(t, func(action string, w http.ResponseWriter) {
		respond(w, "  ")
	})
	defer srv.Close()

	ex := New(srv.URL)
	query, result, err := ex.Generate(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, domain.EmptyResult, query)
	assert.Equal(t, domain.EmptyResult, result)
}

func TestExecutor_TruncatesPayloads(t *testing.T) {
	srv := gateway(t, func(action string, w http.ResponseWriter) {
		respond(w, strings.Repeat("a", 5000))
	})
	defer srv.Close()

	ex := New(srv.URL)
	query, result, err := ex.Generate(context.Background(), "q")
	require.NoError(t, err)
	assert.Len(t, query, 3000)
	assert.Len(t, result, 3000)
}

func TestExecutor_ProfileHeader(t *testing.T) {
	var gotProfile string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotProfile = req.Profile
		respond(w, "x")
	}))
	defer srv.Close()

	ex := New(srv.URL, WithProfile("CLINICAL"))
	_, _, err := ex.Generate(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "CLINICAL", gotProfile)
}
