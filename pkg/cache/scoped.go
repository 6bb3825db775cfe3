package cache

// ScopedKeyer prefixes every key of an inner Keyer, so several deployments
// can share one Redis or MongoDB cache without colliding.
//
//	k := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "museum-a:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer falls back
// to the default one.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ArtifactKey(recordsHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(recordsHash, opts)
}
