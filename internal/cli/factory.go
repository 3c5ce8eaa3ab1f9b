// Package cli assembles a configured engine from the application config,
// shared by the ask, serve and mcp commands.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/requery"
	"github.com/aretw0/requery/internal/config"
	"github.com/aretw0/requery/pkg/adapters/llm"
	"github.com/aretw0/requery/pkg/adapters/memory"
	redisstore "github.com/aretw0/requery/pkg/adapters/redis"
	"github.com/aretw0/requery/pkg/adapters/selectai"
	"github.com/aretw0/requery/pkg/observability"
	"github.com/aretw0/requery/pkg/persistence/middleware"
	"github.com/aretw0/requery/pkg/ports"
)

// BuildResult carries the engine plus the pieces commands need alongside it.
type BuildResult struct {
	Engine *requery.Engine
	Store  ports.TranscriptStore
}

// Build wires adapters per the config into a ready engine. When reg is
// non-nil, engine lifecycle metrics are registered on it.
func Build(cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) (*BuildResult, error) {
	executor, err := buildExecutor(cfg)
	if err != nil {
		return nil, err
	}

	client, err := buildChatClient(cfg)
	if err != nil {
		return nil, err
	}

	dict, err := cfg.LoadDictionary()
	if err != nil {
		return nil, err
	}

	store, err := buildStore(cfg)
	if err != nil {
		return nil, err
	}
	if store != nil {
		store, err = wrapStore(cfg, store)
		if err != nil {
			return nil, err
		}
	}

	opts := []requery.Option{
		requery.WithDictionary(dict),
		requery.WithRetryBudget(cfg.RetryBudget),
		requery.WithPortTimeout(cfg.PortTimeout),
		requery.WithLogger(logger),
	}
	if store != nil {
		opts = append(opts, requery.WithTranscripts(store))
	}
	if reg != nil {
		opts = append(opts, requery.WithLifecycleHooks(observability.NewMetrics(reg).Hooks()))
	}

	eng, err := requery.New(
		executor,
		llm.NewJudge(client),
		llm.NewRefiner(client),
		llm.NewFormatter(client),
		opts...,
	)
	if err != nil {
		return nil, err
	}
	return &BuildResult{Engine: eng, Store: store}, nil
}

func buildExecutor(cfg *config.Config) (ports.QueryExecutor, error) {
	switch cfg.Executor.Type {
	case "", "selectai":
		var s config.SelectAISettings
		if err := cfg.Executor.Decode(&s); err != nil {
			return nil, err
		}
		if s.BaseURL == "" {
			return nil, fmt.Errorf("executor.settings.base_url is required")
		}
		var opts []selectai.Option
		if s.Profile != "" {
			opts = append(opts, selectai.WithProfile(s.Profile))
		}
		return selectai.New(s.BaseURL, opts...), nil
	default:
		return nil, fmt.Errorf("unknown executor backend %q", cfg.Executor.Type)
	}
}

func buildChatClient(cfg *config.Config) (llm.ChatClient, error) {
	switch cfg.LLM.Type {
	case "", "chat":
		var s config.ChatSettings
		if err := cfg.LLM.Decode(&s); err != nil {
			return nil, err
		}
		if s.Endpoint == "" || s.Model == "" {
			return nil, fmt.Errorf("llm.settings.endpoint and llm.settings.model are required")
		}
		return llm.NewHTTPClient(s.Endpoint, s.Model), nil
	default:
		return nil, fmt.Errorf("unknown llm backend %q", cfg.LLM.Type)
	}
}

func buildStore(cfg *config.Config) (ports.TranscriptStore, error) {
	switch cfg.Transcripts.Type {
	case "none":
		return nil, nil
	case "", "memory":
		return memory.NewStore(), nil
	case "redis":
		var s config.RedisSettings
		if err := cfg.Transcripts.Decode(&s); err != nil {
			return nil, err
		}
		if s.Addr == "" {
			return nil, fmt.Errorf("transcripts.settings.addr is required for redis")
		}
		var opts []redisstore.Option
		if s.TTL > 0 {
			opts = append(opts, redisstore.WithTTL(s.TTL))
		}
		if s.Prefix != "" {
			opts = append(opts, redisstore.WithPrefix(s.Prefix))
		}
		return redisstore.New(s.Addr, s.Password, s.DB, opts...), nil
	default:
		return nil, fmt.Errorf("unknown transcripts backend %q", cfg.Transcripts.Type)
	}
}

// wrapStore layers the archive middlewares: encryption innermost, so the
// redacted text is what gets sealed.
func wrapStore(cfg *config.Config, store ports.TranscriptStore) (ports.TranscriptStore, error) {
	key, err := cfg.DecodeEncryptionKey()
	if err != nil {
		return nil, err
	}
	if key != nil {
		store = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})(store)
	}
	if len(cfg.RedactPatterns) > 0 {
		store = middleware.NewRedactionMiddleware(cfg.RedactPatterns)(store)
	}
	return store, nil
}
