// Package cache provides content-addressed caching for pipeline results.
//
// Mesh descriptions are deterministic inputs, so every derived result
// (converted T-meshes, rendered outputs) can be cached under a key computed
// from the input hash and the options that shaped the result.
// The CLI uses a file-backed cache under the user cache directory; tests and
// one-shot embedding use [NullCache].
package cache

import (
	"context"
	"time"
)

// Default TTLs per key type. Derived data never goes stale on its own, the
// TTLs only bound disk usage over time.
const (
	// TTLTMesh is the lifetime of cached T-mesh conversions.
	TTLTMesh = 30 * 24 * time.Hour

	// TTLArtifact is the lifetime of cached rendered artifacts.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key-value store with per-entry TTLs.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// TMeshKeyOpts are the options that distinguish T-mesh conversions of the
// same input mesh.
type TMeshKeyOpts struct {
	Levels int
}

// ArtifactKeyOpts are the options that distinguish rendered artifacts of
// the same conversion.
type ArtifactKeyOpts struct {
	Format string
	Levels int
	Labels bool
}

// Keyer generates cache keys for the pipeline stages. Building a mesh
// from its description is cheaper than reading a cached copy back, so
// keys exist only for the derived stages: conversions and artifacts.
type Keyer interface {
	// TMeshKey generates a key for a T-mesh conversion.
	TMeshKey(meshHash string, opts TMeshKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(meshHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key scheme: a type prefix plus a SHA-256
// over the identifying parts.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// TMeshKey generates a key for a T-mesh conversion.
func (k *DefaultKeyer) TMeshKey(meshHash string, opts TMeshKeyOpts) string {
	return hashKey("tmesh", meshHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(meshHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", meshHash, opts)
}
