// Package middleware wraps a TranscriptStore with cross-cutting behavior:
// redaction of sensitive text before archiving and encryption at rest.
// Middlewares compose, innermost first:
//
//	store = middleware.NewEncryptionMiddleware(cfg)(redisStore)
//	store = middleware.NewRedactionMiddleware(patterns)(store)
package middleware

import "github.com/aretw0/requery/pkg/ports"

// Middleware allows wrapping a TranscriptStore to add behavior.
type Middleware func(ports.TranscriptStore) ports.TranscriptStore
