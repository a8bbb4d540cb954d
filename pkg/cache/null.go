package cache

import (
	"context"
	"time"
)

// NullCache stores nothing, so every render runs in full. The CLI selects
// it for --no-cache and for `[cache] disabled = true`.
type NullCache struct{}

var _ Cache = (*NullCache)(nil)

// NewNullCache returns a cache that always misses.
func NewNullCache() Cache { return &NullCache{} }

// Get always misses.
func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards data.
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete is a no-op.
func (*NullCache) Delete(context.Context, string) error { return nil }

// Close is a no-op.
func (*NullCache) Close() error { return nil }
