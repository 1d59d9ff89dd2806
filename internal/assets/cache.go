package assets

import (
	"container/list"
	"sync"
)

// DefaultCacheBytes bounds the manager's cache.
const DefaultCacheBytes = 16 << 20

// CacheStats are cache counters since the last Clear.
type CacheStats struct {
	Hits      int
	Misses    int
	Evictions int
	Entries   int
	Bytes     int64
}

type cacheEntry struct {
	key  string
	data []byte
}

// Cache keeps recently loaded assets in memory, evicting the least recently
// used ones once the total size passes its budget. It is safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	maxBytes int64
	order    *list.List // front is most recently used
	entries  map[string]*list.Element
	stats    CacheStats
}

// NewCache creates a cache holding at most maxBytes of data. Zero or less
// means no limit. A single item larger than the budget is not stored.
func NewCache(maxBytes int64) *Cache {
	return &Cache{
		maxBytes: maxBytes,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

// Get returns the cached data for key and marks it as recently used.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return nil, false
	}
	c.stats.Hits++
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).data, true
}

// Set stores data under key, replacing any previous value.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.remove(key)
	size := int64(len(data))
	if c.maxBytes > 0 && size > c.maxBytes {
		return
	}
	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, data: data})
	c.stats.Entries++
	c.stats.Bytes += size

	for c.maxBytes > 0 && c.stats.Bytes > c.maxBytes {
		oldest := c.order.Back()
		c.remove(oldest.Value.(*cacheEntry).key)
		c.stats.Evictions++
	}
}

// Delete removes key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(key)
}

func (c *Cache) remove(key string) {
	el, ok := c.entries[key]
	if !ok {
		return
	}
	c.order.Remove(el)
	delete(c.entries, key)
	c.stats.Entries--
	c.stats.Bytes -= int64(len(el.Value.(*cacheEntry).data))
}

// Clear drops every entry and resets the counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.entries = make(map[string]*list.Element)
	c.stats = CacheStats{}
}

// Stats returns a snapshot of the counters.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
