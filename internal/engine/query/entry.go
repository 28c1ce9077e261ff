package query

import (
	"time"

	"go.trai.ch/capigrow/internal/core/domain"
)

type entry struct {
	key          domain.CacheKey
	value        any
	err          error
	status       domain.QueryStatus
	updatedAt    time.Time
	failureCount int
	invalidated  bool
	// epoch advances on every invalidation and write-through, so a fetch that started
	// before one of those can tell its result is already outdated.
	epoch    uint64
	lastUsed time.Time
	waiters  int
	fetching bool
}

type snapshot struct {
	value        any
	err          error
	status       domain.QueryStatus
	updatedAt    time.Time
	failureCount int
	stale        bool
}

func (e *entry) fresh(now time.Time, staleTime time.Duration) bool {
	return e.status == domain.QuerySuccess && !e.invalidated && now.Sub(e.updatedAt) < staleTime
}

func (e *entry) snapshot(now time.Time, staleTime time.Duration) snapshot {
	return snapshot{
		value:        e.value,
		err:          e.err,
		status:       e.status,
		updatedAt:    e.updatedAt,
		failureCount: e.failureCount,
		stale:        !e.fresh(now, staleTime),
	}
}

// settledStatus is the status an entry falls back to when a fetch is abandoned.
func (e *entry) settledStatus() domain.QueryStatus {
	switch {
	case e.err != nil:
		return domain.QueryError
	case !e.updatedAt.IsZero():
		return domain.QuerySuccess
	default:
		return domain.QueryIdle
	}
}

func toResult[T any](s snapshot, fetched bool) domain.QueryResult[T] {
	var data T
	if v, ok := s.value.(T); ok {
		data = v
	}
	status := s.status
	if status == "" {
		status = domain.QueryIdle
	}
	return domain.QueryResult[T]{
		Data:         data,
		Status:       status,
		Err:          s.err,
		UpdatedAt:    s.updatedAt,
		FailureCount: s.failureCount,
		Stale:        s.stale,
		Fetched:      fetched,
	}
}

// lookup returns the entry for key. Callers hold c.mu.
func (c *Client) lookup(key domain.CacheKey) *entry {
	for _, e := range c.entries[key.Hash()] {
		if e.key.Equal(key) {
			return e
		}
	}
	return nil
}

// insert adds an empty entry for key. Callers hold c.mu.
func (c *Client) insert(key domain.CacheKey, now time.Time) *entry {
	e := &entry{key: key, status: domain.QueryIdle, lastUsed: now}
	h := key.Hash()
	c.entries[h] = append(c.entries[h], e)
	return e
}

// stored reports whether e is still the live entry for its key. Callers hold c.mu.
func (c *Client) stored(e *entry) bool {
	return c.lookup(e.key) == e
}

// deleteWhere removes every entry matching fn and returns how many were removed.
// Callers hold c.mu.
func (c *Client) deleteWhere(fn func(*entry) bool) int {
	removed := 0
	for h, bucket := range c.entries {
		kept := bucket[:0]
		for _, e := range bucket {
			if fn(e) {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		if len(kept) == 0 {
			delete(c.entries, h)
			continue
		}
		clear(bucket[len(kept):])
		c.entries[h] = kept
	}
	return removed
}
