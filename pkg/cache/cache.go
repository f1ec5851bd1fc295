// Package cache provides render-result caching for the CLI and server.
//
// A [Cache] stores opaque byte values under string keys with optional
// expiration. The [FileCache] backs the CLI, [RedisCache] backs server
// deployments and [NullCache] disables caching entirely. A [Keyer]
// derives stable cache keys from diagram sources and render options, so
// the same source rendered with the same options always hits the same
// entry.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with TTL support.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// RenderKeyOpts are the render options that participate in the cache
// key. Two renders with equal source hashes and equal options produce
// identical output, so they may share a cache entry.
type RenderKeyOpts struct {
	Format    string `json:"format"`
	Charset   string `json:"charset"`
	Direction string `json:"direction"`
	Padding   int    `json:"padding"`
}

// Keyer derives cache keys.
type Keyer interface {
	// SourceKey generates a key for parsed-graph caching from the raw
	// diagram source.
	SourceKey(sourceHash string) string

	// RenderKey generates a key for render-output caching.
	RenderKey(sourceHash string, opts RenderKeyOpts) string
}

// DefaultKeyer is the standard key schema.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SourceKey generates a key for parsed-graph caching.
func (k *DefaultKeyer) SourceKey(sourceHash string) string {
	return hashKey("source", sourceHash)
}

// RenderKey generates a key for render-output caching.
func (k *DefaultKeyer) RenderKey(sourceHash string, opts RenderKeyOpts) string {
	return hashKey("render", sourceHash, opts)
}
