package cache

// ScopedKeyer wraps a Keyer with a prefix.
//
// Example usage:
//
//	// Keys for one output directory
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "out:"+cache.Hash([]byte(absDir))+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// TextureKey generates a prefixed key for texture caching.
func (k *ScopedKeyer) TextureKey(sourceHash string, opts TextureKeyOpts) string {
	return k.prefix + k.inner.TextureKey(sourceHash, opts)
}
