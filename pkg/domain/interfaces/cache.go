package interfaces

import (
	"context"
	"time"
)

// Cache is a key-value store with per-entry TTL used for dashboard
// response caching. Values are opaque marshaled payloads and are immutable
// once stored; concurrent writers may race and last-writer-wins is fine
// since recomputation is idempotent.
type Cache interface {
	// Get returns the value for key, and whether a live entry existed
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for the given TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
