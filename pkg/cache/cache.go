// Package cache stores rearrangement results so identical runs can skip the
// engine.
//
// A result depends only on the raw puzzle text and the mode, so keys are a
// content hash of both (see [Keyer]). Three backends implement [Cache]:
//   - [NullCache]: caching disabled
//   - [FileCache]: JSON files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP API
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long results stay cached when no TTL is configured.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. An expired entry
	// is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
