package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCorrupt marks a stored value that exists but cannot be decoded.
var ErrCorrupt = errors.New("corrupt cache entry")

// Cache stores JSON encoded values under string keys.
type Cache interface {
	// Get decodes the value under key into value and reports whether it was
	// found. A positive ttl also pushes the entry's expiry out, so entries that
	// keep being read stay alive.
	Get(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	// Set stores value for ttl; ttl <= 0 falls back to the default TTL.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

const (
	CartKeyPrefix = "cart"
)
