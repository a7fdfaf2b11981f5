package dedupe

import (
	"container/list"
	"sync"
	"time"
)

// Cache suppresses repeat processing of the same logical event within a
// bounded window. ShouldProcess is check-and-set: for any key, at most one
// caller gets true per TTL window, however many deliveries race.
//
// The cache owns its own lifecycle: construct it, inject it, Clear it on
// shutdown. No package-level state.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	order      *list.List // front = oldest
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

type entry struct {
	key  string
	seen time.Time
}

func New(ttl time.Duration, maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = 1024
	}
	return &Cache{
		entries:    make(map[string]*list.Element),
		order:      list.New(),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// ShouldProcess reports whether the caller should act on key. The first
// call within the TTL window returns true and records the key; subsequent
// calls return false until the window lapses.
func (c *Cache) ShouldProcess(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.evictExpired(now)

	if el, ok := c.entries[key]; ok {
		e := el.Value.(*entry)
		if c.ttl <= 0 || now.Sub(e.seen) < c.ttl {
			return false
		}
		// window lapsed, treat as fresh
		e.seen = now
		c.order.MoveToBack(el)
		return true
	}

	if c.order.Len() >= c.maxEntries {
		c.evictOldest()
	}

	el := c.order.PushBack(&entry{key: key, seen: now})
	c.entries[key] = el
	return true
}

// Seen reports whether key is currently held without recording it.
func (c *Cache) Seen(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return false
	}
	if c.ttl > 0 && c.now().Sub(el.Value.(*entry).seen) >= c.ttl {
		return false
	}
	return true
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear drops every entry. Called on shutdown.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element)
	c.order.Init()
}

func (c *Cache) evictExpired(now time.Time) {
	if c.ttl <= 0 {
		return
	}
	for el := c.order.Front(); el != nil; {
		e := el.Value.(*entry)
		if now.Sub(e.seen) < c.ttl {
			break
		}
		next := el.Next()
		c.order.Remove(el)
		delete(c.entries, e.key)
		el = next
	}
}

func (c *Cache) evictOldest() {
	el := c.order.Front()
	if el == nil {
		return
	}
	e := el.Value.(*entry)
	c.order.Remove(el)
	delete(c.entries, e.key)
}
