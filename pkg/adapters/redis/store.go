// Package redis provides a Redis-backed TranscriptStore for deployments
// where the archive must survive the process or be shared between replicas.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/requery/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.TranscriptStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures the Store.
type Option func(*Store)

// WithTTL sets the expiration for archived transcripts.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for transcripts.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "requery:transcript:",
		ttl:    0, // No expiration by default
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the transcript to Redis and adds it to the index set.
func (s *Store) Save(ctx context.Context, t domain.Transcript) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal transcript: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(t.ID), data, s.ttl)
	pipe.SAdd(ctx, s.indexKey(), t.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save transcript: %w", err)
	}
	return nil
}

// Load retrieves a transcript by ID.
func (s *Store) Load(ctx context.Context, id string) (domain.Transcript, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, backend.Nil) {
		return domain.Transcript{}, domain.ErrTranscriptNotFound
	}
	if err != nil {
		return domain.Transcript{}, fmt.Errorf("failed to load transcript: %w", err)
	}

	var t domain.Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return domain.Transcript{}, fmt.Errorf("failed to unmarshal transcript: %w", err)
	}
	return t, nil
}

// List returns the IDs in the index set. Expired entries are pruned lazily.
func (s *Store) List(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list transcripts: %w", err)
	}

	live := make([]string, 0, len(ids))
	for _, id := range ids {
		exists, err := s.client.Exists(ctx, s.key(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to check transcript %s: %w", id, err)
		}
		if exists == 0 {
			s.client.SRem(ctx, s.indexKey(), id)
			continue
		}
		live = append(live, id)
	}
	return live, nil
}

// Delete removes a transcript and its index entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(id))
	pipe.SRem(ctx, s.indexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete transcript: %w", err)
	}
	return nil
}
