// Package cache provides the read-through cache capability injected into the
// services. Correctness never depends on a cache being present: Noop is a
// valid implementation and a failing backend degrades to misses.
package cache

// Cache stores values of type V by string key.
type Cache[V any] interface {
	// Get returns the cached value and whether it was present.
	Get(key string) (V, bool)
	// Put stores v under key, replacing any previous value.
	Put(key string, v V)
	// Evict removes key.
	Evict(key string)
}

// Noop is a Cache that never stores anything.
type Noop[V any] struct{}

// NewNoop returns a cache that always misses.
func NewNoop[V any]() Noop[V] { return Noop[V]{} }

func (Noop[V]) Get(string) (V, bool) {
	var zero V
	return zero, false
}

func (Noop[V]) Put(string, V) {}

func (Noop[V]) Evict(string) {}
