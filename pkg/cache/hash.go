package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey derives a cache key for one kind of entry, e.g.
// "texture:<sha256>" for a texture source hash and its output options.
// The parts are JSON-encoded before hashing, so field order matters.
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return kind + ":" + Hash(data)
}

// Hash returns the hex SHA-256 digest of data. Texture sources and
// converted outputs are compared by this digest.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
