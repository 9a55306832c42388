package cache

import "sync"

// Cache is a generic thread-safe cache of values that must be destroyed
// explicitly. Entries live until Clear; callers may still hold references
// to a value after creating it, so nothing is evicted.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]V
	release func(V)
}

// New creates an empty cache. release is called for each value on Clear
// and may be nil.
func New[K comparable, V any](release func(V)) *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]V),
		release: release,
	}
}

// GetOrCreate returns the cached value or creates and stores it.
// create is called under the lock; a create error is returned and nothing
// is stored.
func (c *Cache[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.entries[key]; ok {
		return v, nil
	}

	v, err := create()
	if err != nil {
		var zero V
		return zero, err
	}
	c.entries[key] = v
	return v, nil
}

// Clear removes and releases all entries.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	old := c.entries
	c.entries = make(map[K]V)
	c.mu.Unlock()

	if c.release == nil {
		return
	}
	for _, v := range old {
		c.release(v)
	}
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
