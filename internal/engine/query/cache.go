package query

import (
	"fmt"
	"time"

	"go.trai.ch/capigrow/internal/core/domain"
)

type subscription struct {
	prefix domain.CacheKey
	fn     func(domain.CacheKey)
}

// Invalidate marks every entry under prefix as expired, so the next read of each
// refetches. Cached values stay readable until then. It returns the number of entries
// marked.
func (c *Client) Invalidate(prefix domain.CacheKey) int {
	c.mu.Lock()
	var keys []domain.CacheKey
	for _, bucket := range c.entries {
		for _, e := range bucket {
			if !e.key.HasPrefix(prefix) {
				continue
			}
			e.invalidated = true
			e.epoch++
			keys = append(keys, e.key)
		}
	}
	listeners := c.listenersLocked(prefix)
	c.mu.Unlock()

	c.logger.Debug(fmt.Sprintf("invalidated %d entries under %q", len(keys), prefix.String()))
	c.observer.Invalidated(prefix, len(keys))
	for _, key := range keys {
		for _, sub := range listeners {
			if key.HasPrefix(sub.prefix) {
				sub.fn(key)
			}
		}
	}
	return len(keys)
}

// listenersLocked returns the subscriptions that may be interested in an invalidation
// of prefix. Callers hold c.mu.
func (c *Client) listenersLocked(prefix domain.CacheKey) []subscription {
	var out []subscription
	for _, sub := range c.subs {
		if sub.prefix.HasPrefix(prefix) || prefix.HasPrefix(sub.prefix) {
			out = append(out, sub)
		}
	}
	return out
}

// Subscribe registers fn to be called with each key invalidated under prefix.
// The returned function removes the subscription.
func (c *Client) Subscribe(prefix domain.CacheKey, fn func(domain.CacheKey)) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = subscription{prefix: prefix, fn: fn}
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// SetData stores value under key as a fresh successful result.
func SetData[T any](c *Client, key domain.CacheKey, value T) {
	if key.Len() == 0 {
		return
	}
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.lookup(key)
	if e == nil {
		e = c.insert(key, now)
	}
	e.value = value
	e.err = nil
	e.status = domain.QuerySuccess
	e.updatedAt = now
	e.failureCount = 0
	e.invalidated = false
	e.epoch++
	e.lastUsed = now
	if e.fetching {
		e.status = domain.QueryLoading
	}
}

// Peek returns the cached snapshot of key without fetching.
func Peek[T any](c *Client, key domain.CacheKey) (domain.QueryResult[T], bool) {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.lookup(key)
	if e == nil {
		return domain.QueryResult[T]{Status: domain.QueryIdle}, false
	}
	return toResult[T](e.snapshot(now, c.staleTimeFor(key)), false), true
}

// Remove evicts every entry under prefix and returns how many were removed.
// A fetch still running for an evicted entry does not write its result back.
func (c *Client) Remove(prefix domain.CacheKey) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deleteWhere(func(e *entry) bool { return e.key.HasPrefix(prefix) })
}

// Clear evicts every entry.
func (c *Client) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uint64][]*entry)
}

// Collect evicts entries that no reader has used for longer than the retention window.
// Entries with a fetch in flight are kept.
func (c *Client) Collect() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.collectLocked(time.Now())
}

// Len returns the number of cached entries.
func (c *Client) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, bucket := range c.entries {
		n += len(bucket)
	}
	return n
}

func (c *Client) collectLocked(now time.Time) int {
	c.lastCollect = now
	return c.deleteWhere(func(e *entry) bool {
		return !e.fetching && e.waiters == 0 && now.Sub(e.lastUsed) > c.settings.GCTime
	})
}

// maybeCollect runs a collection at most once per retention window. Callers hold c.mu.
func (c *Client) maybeCollect(now time.Time) {
	if now.Sub(c.lastCollect) >= c.settings.GCTime {
		c.collectLocked(now)
	}
}
