// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package critbit

import (
	"github.com/cespare/xxhash/v2"
	"github.com/hashicorp/golang-lru/v2/simplelru"
)

type cacheEntry[V any] struct {
	key   string
	value V
}

// Cache is a fixed size cache keyed by byte strings. Entries live in an
// Index keyed by the 64-bit hash of their key, and the least recently used
// entry is evicted once the cache is full. Two keys with the same hash
// share a slot, the newer one wins. Cache is not safe for concurrent use.
type Cache[V any] struct {
	index Index[uint64, cacheEntry[V]]
	lru   *simplelru.LRU[uint64, struct{}]
}

// NewCache creates a cache holding at most size entries.
func NewCache[V any](size int) (*Cache[V], error) {
	c := &Cache[V]{}
	lru, err := simplelru.NewLRU[uint64, struct{}](size, c.onEvict)
	if err != nil {
		return nil, err
	}
	c.lru = lru
	return c, nil
}

func (c *Cache[V]) onEvict(h uint64, _ struct{}) {
	c.index.Remove(h)
}

// Add stores v under key and reports whether an older entry was evicted to
// make room.
func (c *Cache[V]) Add(key []byte, v V) bool {
	h := xxhash.Sum64(key)
	evicted := c.lru.Add(h, struct{}{})
	*c.index.Put(h) = cacheEntry[V]{key: string(key), value: v}
	return evicted
}

// Get returns the value stored under key and marks it as recently used.
func (c *Cache[V]) Get(key []byte) (V, bool) {
	var zero V
	h := xxhash.Sum64(key)
	e := c.index.Find(h)
	if e == nil || e.key != string(key) {
		return zero, false
	}
	c.lru.Get(h)
	return e.value, true
}

// Contains reports whether key is cached without updating its recency.
func (c *Cache[V]) Contains(key []byte) bool {
	e := c.index.Find(xxhash.Sum64(key))
	return e != nil && e.key == string(key)
}

// Remove drops key from the cache.
func (c *Cache[V]) Remove(key []byte) bool {
	h := xxhash.Sum64(key)
	e := c.index.Find(h)
	if e == nil || e.key != string(key) {
		return false
	}
	c.lru.Remove(h)
	return true
}

func (c *Cache[V]) Len() int {
	return c.index.Len()
}

// Purge empties the cache.
func (c *Cache[V]) Purge() {
	c.lru.Purge()
	c.index.Clear()
}
