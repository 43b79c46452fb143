package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey derives a namespaced cache key from its distinguishing parts.
// The parts are JSON-marshaled and hashed, so any comparable options
// struct can participate. Format: prefix:hex(sha256(parts)).
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the full 64-character hex SHA-256 digest of data. It keys
// built meshes by the content of their description, so an unchanged
// input file always maps to the same cache entries.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
