package cache

import (
	"context"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// Miss before Set
	if _, hit, _ := c.Get(ctx, "mesh:abc"); hit {
		t.Error("Get before Set should miss")
	}

	// Round trip
	if err := c.Set(ctx, "mesh:abc", []byte("payload"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "mesh:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit || string(data) != "payload" {
		t.Errorf("Get = (%q, %v), want (payload, true)", data, hit)
	}

	// Expired entries are treated as misses
	if err := c.Set(ctx, "mesh:old", []byte("stale"), -time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "mesh:old"); hit {
		t.Error("expired entry should miss")
	}

	// Delete removes entries; deleting twice is fine
	if err := c.Delete(ctx, "mesh:abc"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "mesh:abc"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "mesh:abc"); err != nil {
		t.Errorf("second Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// TMeshKey is deterministic and distinguishes inputs
	if k.TMeshKey("abc", TMeshKeyOpts{Levels: 1}) != k.TMeshKey("abc", TMeshKeyOpts{Levels: 1}) {
		t.Error("TMeshKey should be deterministic")
	}
	if k.TMeshKey("abc", TMeshKeyOpts{Levels: 1}) == k.TMeshKey("def", TMeshKeyOpts{Levels: 1}) {
		t.Error("Different mesh hashes should produce different keys")
	}

	// TMeshKey should include options in hash
	tk1 := k.TMeshKey("hash123", TMeshKeyOpts{Levels: 1})
	tk2 := k.TMeshKey("hash123", TMeshKeyOpts{Levels: 2})
	if tk1 == tk2 {
		t.Error("Different TMeshKeyOpts should produce different keys")
	}

	// ArtifactKey
	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "dot"})
	if ak1 == ak2 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "project:123:")

	// All keys should be prefixed
	opts := TMeshKeyOpts{Levels: 1}
	tmeshKey := scoped.TMeshKey("abc", opts)
	if len(tmeshKey) < 15 || tmeshKey[:12] != "project:123:" {
		t.Errorf("ScopedKeyer TMeshKey should be prefixed: %s", tmeshKey)
	}
	if tmeshKey[12:] != inner.TMeshKey("abc", opts) {
		t.Errorf("ScopedKeyer TMeshKey should wrap the inner key: %s", tmeshKey)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ArtifactKey("abc", ArtifactKeyOpts{Format: "dot"})
	if key[:7] != "prefix:" {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}
