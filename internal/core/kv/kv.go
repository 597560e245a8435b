// Package kv defines a small persistent key-value cache for state that lives
// outside the notification and search engines.
package kv

import (
	"context"
	"time"
)

// KV is a persistent key-value store. Values are JSON-serializable.
// Get on a missing or expired key returns an error wrapping sql.ErrNoRows.
type KV interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
	SetTTL(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
