package cache

import (
	"container/list"
	"sync"
	"time"
)

// Memory is an in-process LRU cache with a per-entry TTL.
type Memory[V any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List
	now     func() time.Time
}

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

// NewMemory creates an LRU cache holding at most maxSize entries, each
// living for ttl. A non-positive ttl disables expiry.
func NewMemory[V any](maxSize int, ttl time.Duration) *Memory[V] {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &Memory[V]{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
		now:     time.Now,
	}
}

// Get returns the value for key unless it is missing or expired.
func (c *Memory[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	elem, ok := c.items[key]
	if !ok {
		return zero, false
	}

	e := elem.Value.(*entry[V])
	if c.ttl > 0 && c.now().After(e.expiresAt) {
		c.remove(elem)
		return zero, false
	}

	c.lru.MoveToFront(elem)
	return e.value, true
}

// Put stores v and evicts the least recently used entry when full.
func (c *Memory[V]) Put(key string, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := &entry[V]{key: key, value: v, expiresAt: c.now().Add(c.ttl)}
	if elem, ok := c.items[key]; ok {
		elem.Value = e
		c.lru.MoveToFront(elem)
		return
	}

	c.items[key] = c.lru.PushFront(e)
	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.remove(oldest)
		}
	}
}

// Evict removes key if present.
func (c *Memory[V]) Evict(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.remove(elem)
	}
}

// Len returns the number of stored entries, expired ones included.
func (c *Memory[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Memory[V]) remove(elem *list.Element) {
	delete(c.items, elem.Value.(*entry[V]).key)
	c.lru.Remove(elem)
}
