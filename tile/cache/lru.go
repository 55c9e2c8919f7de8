// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package cache

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/spatialio/tilegrid/common"
	"github.com/spatialio/tilegrid/tile"
)

// LruCache is a byte-budgeted tile cache evicting least-recently-used
// tiles first. Unlike a count-bounded cache, its capacity is the total
// payload footprint of the cached tiles, so tiles of different sizes
// share one budget.
//
// If a single inserted tile alone exceeds the budget it is kept and the
// cache temporarily runs over budget until the next insert. Rejecting
// the insert instead would force every reader of such a tile back to
// the source on each access.
//
// The cache is safe for concurrent use.
type LruCache struct {
	mu    sync.Mutex
	cache map[Key]*entry
	size  int
	limit int
	head  *entry
	tail  *entry
}

var _ Cache = &LruCache{}

// entry is a cache item wrapping a key, a tile, and references to the
// previous and next elements of the LRU queue.
type entry struct {
	key  Key
	tile *tile.Tile
	prev *entry
	next *entry
}

// NewLruCache returns an empty cache with the given byte budget.
func NewLruCache(limit int) *LruCache {
	return &LruCache{
		cache: map[Key]*entry{},
		limit: limit,
	}
}

// NewDefaultLruCache returns an empty cache with the default byte budget.
func NewDefaultLruCache() *LruCache {
	return NewLruCache(DefaultByteLimit)
}

func (c *LruCache) Get(key Key) (*tile.Tile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, exists := c.cache[key]
	if !exists {
		return nil, false
	}
	c.touch(item)
	return item.tile, true
}

func (c *LruCache) Put(key Key, t *tile.Tile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, exists := c.cache[key]
	if exists {
		c.size -= item.tile.SizeInBytes()
		item.tile = t
		c.size += t.SizeInBytes()
		c.touch(item)
	} else {
		item = &entry{key: key, tile: t}
		c.cache[key] = item
		c.size += t.SizeInBytes()

		// Make the new entry the head of the LRU queue.
		item.next = c.head
		if c.head != nil {
			c.head.prev = item
		}
		c.head = item
		if c.tail == nil {
			c.tail = c.head
		}
	}
	c.evictToFit()
}

func (c *LruCache) Remove(key Key) (*tile.Tile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, exists := c.cache[key]
	if !exists {
		return nil, false
	}
	c.remove(item)
	return item.tile, true
}

func (c *LruCache) RemoveSource(src tile.Source) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.cache {
		if item.key.Source == src {
			c.remove(item)
		}
	}
}

func (c *LruCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

func (c *LruCache) Limit() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.limit
}

func (c *LruCache) SetLimit(limit int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.limit = limit
	c.evictToFit()
}

func (c *LruCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = map[Key]*entry{}
	c.size = 0
	c.head = nil
	c.tail = nil
}

// GetMemoryFootprint provides the size of the cache in memory in bytes.
func (c *LruCache) GetMemoryFootprint() *common.MemoryFootprint {
	c.mu.Lock()
	defer c.mu.Unlock()
	size := unsafe.Sizeof(*c)
	size += uintptr(len(c.cache)) * unsafe.Sizeof(entry{})
	size += uintptr(c.size)
	return common.NewMemoryFootprint(size)
}

// evictToFit drops least-recently-used entries until the budget is met,
// always keeping at least one entry.
func (c *LruCache) evictToFit() {
	for c.size > c.limit && len(c.cache) > 1 {
		c.remove(c.tail)
	}
}

// remove unlinks the given entry; the caller must hold the lock.
func (c *LruCache) remove(item *entry) {
	delete(c.cache, item.key)
	c.size -= item.tile.SizeInBytes()
	if c.size < 0 {
		panic(fmt.Sprintf("cache size accounting broken, got %d bytes", c.size))
	}

	// single item list
	if c.head == c.tail {
		c.head = nil
		c.tail = nil
		return
	}
	if item.next != nil {
		item.next.prev = item.prev
		if item == c.head {
			c.head = item.next
		}
	}
	if item.prev != nil {
		item.prev.next = item.next
		if item == c.tail {
			c.tail = item.prev
		}
	}
}

// touch marks the entry used; the caller must hold the lock.
func (c *LruCache) touch(item *entry) {
	if item == c.head {
		return
	}
	item.prev.next = item.next
	if item.next != nil {
		item.next.prev = item.prev
	} else {
		c.tail = item.prev
	}
	item.prev = nil
	item.next = c.head
	c.head.prev = item
	c.head = item
}
