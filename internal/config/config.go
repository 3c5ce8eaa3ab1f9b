// Package config loads the application configuration file. Adapter-specific
// settings are kept as free-form maps in YAML and decoded into typed structs
// with mapstructure, so each backend owns its own schema.
package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/requery/pkg/domain"
)

// Config is the root configuration.
type Config struct {
	// RetryBudget bounds generate/judge cycles per invocation.
	RetryBudget int `yaml:"retry_budget"`

	// PortTimeout bounds each capability call. Zero disables the bound.
	PortTimeout time.Duration `yaml:"port_timeout"`

	// Dictionary is the path to the newline-delimited "Long = Short"
	// term dictionary.
	Dictionary string `yaml:"dictionary"`

	// Listen is the HTTP API address for the serve command.
	Listen string `yaml:"listen"`

	// MetricsListen is the prometheus endpoint address. Empty disables it.
	MetricsListen string `yaml:"metrics_listen"`

	LogLevel string `yaml:"log_level"`

	// Executor configures the query-execution backend.
	Executor Backend `yaml:"executor"`

	// LLM configures the judge/refiner/formatter model backend.
	LLM Backend `yaml:"llm"`

	// Transcripts configures the invocation archive. Type "none"
	// disables archiving.
	Transcripts Backend `yaml:"transcripts"`

	// RedactPatterns are regular expressions whose matches are masked in
	// transcripts before they are archived.
	RedactPatterns []string `yaml:"redact_patterns"`

	// EncryptionKey is a base64-encoded 32-byte AES-256 key. When set,
	// transcripts are encrypted at rest.
	EncryptionKey string `yaml:"encryption_key"`
}

// Backend is a backend selector plus its free-form settings.
type Backend struct {
	Type     string         `yaml:"type"`
	Settings map[string]any `yaml:"settings"`
}

// Decode maps the backend settings into a typed struct.
func (b Backend) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return fmt.Errorf("settings decoder: %w", err)
	}
	if err := dec.Decode(b.Settings); err != nil {
		return fmt.Errorf("decode %s settings: %w", b.Type, err)
	}
	return nil
}

// SelectAISettings configures the SelectAI gateway executor.
type SelectAISettings struct {
	BaseURL string `mapstructure:"base_url"`
	Profile string `mapstructure:"profile"`
}

// ChatSettings configures the chat-completion model backend.
type ChatSettings struct {
	Endpoint string `mapstructure:"endpoint"`
	Model    string `mapstructure:"model"`
}

// RedisSettings configures the Redis transcript store.
type RedisSettings struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
	Prefix   string        `mapstructure:"prefix"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		RetryBudget:   5,
		PortTimeout:   90 * time.Second,
		Listen:        ":8080",
		MetricsListen: "",
		LogLevel:      "info",
		Executor:      Backend{Type: "selectai"},
		LLM:           Backend{Type: "chat"},
		Transcripts:   Backend{Type: "memory"},
	}
}

// Load reads and validates a YAML config file, applying defaults for
// anything unset.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if c.RetryBudget < 1 {
		return fmt.Errorf("retry_budget must be at least 1, got %d", c.RetryBudget)
	}
	if c.PortTimeout < 0 {
		return fmt.Errorf("port_timeout must not be negative")
	}
	switch c.Transcripts.Type {
	case "", "none", "memory", "redis":
	default:
		return fmt.Errorf("unknown transcripts backend %q", c.Transcripts.Type)
	}
	for _, p := range c.RedactPatterns {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("invalid redact pattern %q: %w", p, err)
		}
	}
	if c.EncryptionKey != "" {
		key, err := base64.StdEncoding.DecodeString(c.EncryptionKey)
		if err != nil {
			return fmt.Errorf("encryption_key is not valid base64: %w", err)
		}
		if len(key) != 32 {
			return fmt.Errorf("encryption_key must decode to 32 bytes, got %d", len(key))
		}
	}
	return nil
}

// DecodeEncryptionKey returns the decoded AES key, or nil when unset.
func (c *Config) DecodeEncryptionKey() ([]byte, error) {
	if c.EncryptionKey == "" {
		return nil, nil
	}
	key, err := base64.StdEncoding.DecodeString(c.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("encryption_key is not valid base64: %w", err)
	}
	return key, nil
}

// LoadDictionary reads and parses the configured dictionary file.
// An unset path yields an empty dictionary.
func (c *Config) LoadDictionary() (domain.Dictionary, error) {
	if c.Dictionary == "" {
		return domain.Dictionary{}, nil
	}
	raw, err := os.ReadFile(c.Dictionary)
	if err != nil {
		return domain.Dictionary{}, fmt.Errorf("read dictionary: %w", err)
	}
	d, err := domain.ParseDictionary(string(raw))
	if err != nil {
		return domain.Dictionary{}, fmt.Errorf("parse dictionary %s: %w", c.Dictionary, err)
	}
	return d, nil
}
