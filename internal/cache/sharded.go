// Package cache provides a sharded LRU cache used for memoizing shaping
// results across frames.
package cache

import (
	"sync"
	"sync/atomic"
)

const (
	shardCount = 16
	shardMask  = shardCount - 1

	// DefaultCapacity is the per-shard capacity used when none is given.
	DefaultCapacity = 256
)

// Hasher selects a shard for a key.
type Hasher[K any] func(K) uint64

// Stats is a snapshot of cache counters.
type Stats struct {
	Len       int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Sharded is a concurrency-safe LRU cache split into 16 independently
// locked shards. Values are stored as-is and must not be modified after
// insertion.
type Sharded[K comparable, V any] struct {
	shards   [shardCount]shard[K, V]
	hasher   Hasher[K]
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard[K comparable, V any] struct {
	mu    sync.Mutex
	items map[K]*lruNode[K, V]
	order lruList[K, V]
}

// NewSharded creates a cache holding up to capacity entries per shard.
// A capacity <= 0 uses DefaultCapacity.
func NewSharded[K comparable, V any](capacity int, hasher Hasher[K]) *Sharded[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Sharded[K, V]{hasher: hasher, capacity: capacity}
	for i := range c.shards {
		c.shards[i].items = make(map[K]*lruNode[K, V])
	}
	return c
}

func (c *Sharded[K, V]) shardFor(key K) *shard[K, V] {
	return &c.shards[c.hasher(key)&shardMask]
}

// Get returns the cached value for key and marks it recently used.
func (c *Sharded[K, V]) Get(key K) (V, bool) {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if node, ok := s.items[key]; ok {
		s.order.MoveToFront(node)
		c.hits.Add(1)
		return node.value, true
	}
	c.misses.Add(1)
	var zero V
	return zero, false
}

// Set stores value under key, evicting the least recently used entries of
// the shard when it is full.
func (c *Sharded[K, V]) Set(key K, value V) {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	c.insertLocked(s, key, value)
}

// GetOrCreate returns the cached value for key, calling create on a miss.
// create runs with the shard locked, so concurrent callers for the same
// key compute the value once.
func (c *Sharded[K, V]) GetOrCreate(key K, create func() V) V {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if node, ok := s.items[key]; ok {
		s.order.MoveToFront(node)
		c.hits.Add(1)
		return node.value
	}
	c.misses.Add(1)
	v := create()
	c.insertLocked(s, key, v)
	return v
}

func (c *Sharded[K, V]) insertLocked(s *shard[K, V], key K, value V) {
	if node, ok := s.items[key]; ok {
		node.value = value
		s.order.MoveToFront(node)
		return
	}
	for s.order.Len() >= c.capacity {
		oldest, _ := s.order.RemoveOldest()
		delete(s.items, oldest)
		c.evictions.Add(1)
	}
	s.items[key] = s.order.PushFront(key, value)
}

// Delete removes key and reports whether it was present.
func (c *Sharded[K, V]) Delete(key K) bool {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.items[key]
	if !ok {
		return false
	}
	s.order.Remove(node)
	delete(s.items, key)
	return true
}

// Clear removes all entries. Counters are kept.
func (c *Sharded[K, V]) Clear() {
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		s.items = make(map[K]*lruNode[K, V])
		s.order.Clear()
		s.mu.Unlock()
	}
}

// Len returns the number of entries across all shards.
func (c *Sharded[K, V]) Len() int {
	n := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		n += len(s.items)
		s.mu.Unlock()
	}
	return n
}

// Stats returns the current counters.
func (c *Sharded[K, V]) Stats() Stats {
	return Stats{
		Len:       c.Len(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}
