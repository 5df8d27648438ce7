// Package cache stores derived export artifacts between runs.
//
// The exporter re-encodes every texture on each run unless it can prove the
// output is already current. A [Cache] remembers, per texture, the hash of
// the source bytes and the encoded output so unchanged textures are
// skipped. [FileCache] persists entries under the user cache directory;
// [NullCache] disables caching.
//
// Keys are produced by a [Keyer]. [ScopedKeyer] prefixes every key, which
// keeps exports into different output directories apart.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// TextureKeyOpts lists the encode settings that change texture output.
type TextureKeyOpts struct {
	Format string `json:"format"`
	Stem   string `json:"stem"`
}

// Keyer derives cache keys.
type Keyer interface {
	// TextureKey identifies an encoded texture by source content and settings.
	TextureKey(sourceHash string, opts TextureKeyOpts) string
}

// DefaultKeyer builds unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// TextureKey implements Keyer.
func (DefaultKeyer) TextureKey(sourceHash string, opts TextureKeyOpts) string {
	return hashKey("texture", sourceHash, opts)
}
