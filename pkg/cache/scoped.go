package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation. The
// CLI and server build one when cache.key_prefix is configured, keeping
// separate deployments sharing a Redis instance from reading each
// other's entries.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
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

// SourceKey generates a prefixed key for parsed-graph caching.
func (k *ScopedKeyer) SourceKey(sourceHash string) string {
	return k.prefix + k.inner.SourceKey(sourceHash)
}

// RenderKey generates a prefixed key for render-output caching.
func (k *ScopedKeyer) RenderKey(sourceHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(sourceHash, opts)
}
