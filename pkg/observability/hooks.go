// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about mesh refinement, conversion, and
// cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetMeshHooks(&myMeshHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Mesh().OnSubdivideStart(ctx, level, faceCount)
//	// ... refine ...
//	observability.Mesh().OnSubdivideComplete(ctx, level, faceCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Mesh Hooks
// =============================================================================

// MeshHooks receives events from mesh construction, refinement, and
// conversion.
type MeshHooks interface {
	// Build events
	OnBuildStart(ctx context.Context, input string)
	OnBuildComplete(ctx context.Context, input string, pointCount int, duration time.Duration, err error)

	// Subdivision events, one pair per refinement level
	OnSubdivideStart(ctx context.Context, level, faceCount int)
	OnSubdivideComplete(ctx context.Context, level, faceCount int, duration time.Duration, err error)

	// Conversion events
	OnConvertStart(ctx context.Context, levels int)
	OnConvertComplete(ctx context.Context, levels, pointCount int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopMeshHooks is a no-op implementation of MeshHooks.
type NoopMeshHooks struct{}

func (NoopMeshHooks) OnBuildStart(context.Context, string)                                 {}
func (NoopMeshHooks) OnBuildComplete(context.Context, string, int, time.Duration, error)   {}
func (NoopMeshHooks) OnSubdivideStart(context.Context, int, int)                           {}
func (NoopMeshHooks) OnSubdivideComplete(context.Context, int, int, time.Duration, error)  {}
func (NoopMeshHooks) OnConvertStart(context.Context, int)                                  {}
func (NoopMeshHooks) OnConvertComplete(context.Context, int, int, time.Duration, error)    {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	meshHooks  MeshHooks  = NoopMeshHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetMeshHooks registers custom mesh hooks.
// This should be called once at application startup before any mesh operations.
func SetMeshHooks(h MeshHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		meshHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Mesh returns the registered mesh hooks.
func Mesh() MeshHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return meshHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	meshHooks = NoopMeshHooks{}
	cacheHooks = NoopCacheHooks{}
}
