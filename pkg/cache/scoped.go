package cache

// ScopedKeyer wraps a Keyer with a prefix so that several users of one
// store cannot see each other's entries.
//
// Example usage:
//
//	// Server entries apart from CLI entries in a shared directory
//	serverKeyer := NewScopedKeyer(NewDefaultKeyer(), "serve:")
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

// SearchKey generates a prefixed search key.
func (k *ScopedKeyer) SearchKey(inputHash string, opts SearchKeyOpts) string {
	return k.prefix + k.inner.SearchKey(inputHash, opts)
}
