package config

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "requery.yaml", `
retry_budget: 3
port_timeout: 30s
listen: ":9090"
log_level: debug
executor:
  type: selectai
  settings:
    base_url: http://gateway:8000
    profile: CLINICAL
llm:
  type: chat
  settings:
    endpoint: http://localhost:11434
    model: llama3
transcripts:
  type: redis
  settings:
    addr: localhost:6379
    ttl: 24h
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.RetryBudget)
	assert.Equal(t, 30*time.Second, cfg.PortTimeout)
	assert.Equal(t, ":9090", cfg.Listen)

	var ex SelectAISettings
	require.NoError(t, cfg.Executor.Decode(&ex))
	assert.Equal(t, "http://gateway:8000", ex.BaseURL)
	assert.Equal(t, "CLINICAL", ex.Profile)

	var chat ChatSettings
	require.NoError(t, cfg.LLM.Decode(&chat))
	assert.Equal(t, "llama3", chat.Model)

	var rs RedisSettings
	require.NoError(t, cfg.Transcripts.Decode(&rs))
	assert.Equal(t, "localhost:6379", rs.Addr)
	assert.Equal(t, 24*time.Hour, rs.TTL)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeFile(t, "requery.yaml", "{}"))
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.RetryBudget)
	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, "memory", cfg.Transcripts.Type)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeFile(t, "requery.yaml", "retry_budget: 0"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "requery.yaml", "transcripts:\n  type: cassandra"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_ArchiveProtection(t *testing.T) {
	key := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte("k"), 32))
	cfg, err := Load(writeFile(t, "requery.yaml", `
redact_patterns:
  - 'MRN-\d+'
encryption_key: "`+key+`"
`))
	require.NoError(t, err)

	decoded, err := cfg.DecodeEncryptionKey()
	require.NoError(t, err)
	assert.Len(t, decoded, 32)
	assert.Equal(t, []string{`MRN-\d+`}, cfg.RedactPatterns)

	_, err = Load(writeFile(t, "requery.yaml", "redact_patterns:\n  - '['"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "requery.yaml", `encryption_key: "dG9vc2hvcnQ="`))
	assert.Error(t, err)
}

func TestLoadDictionary(t *testing.T) {
	dictPath := writeFile(t, "terms.txt", "Patient = Subject\nCoronary Artery Disease = CAD\n")
	cfg := Default()
	cfg.Dictionary = dictPath

	d, err := cfg.LoadDictionary()
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())

	cfg.Dictionary = ""
	d, err = cfg.LoadDictionary()
	require.NoError(t, err)
	assert.Equal(t, 0, d.Len())
}
