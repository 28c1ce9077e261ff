package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.trai.ch/capigrow/internal/core/domain"
)

// Fetcher loads the current value of a resource from the server.
type Fetcher[T any] func(ctx context.Context) (T, error)

type readOptions struct {
	staleTime time.Duration
	enabled   bool
	attempts  int
}

// Option configures a single read.
type Option func(*readOptions)

// StaleTime overrides how long a successful result of this key is served from cache.
func StaleTime(d time.Duration) Option {
	return func(o *readOptions) { o.staleTime = d }
}

// Enabled gates the read. A disabled read returns the cached snapshot, or an idle
// result, without fetching.
func Enabled(enabled bool) Option {
	return func(o *readOptions) { o.enabled = enabled }
}

// Retry overrides the number of fetcher invocations allowed per fetch.
func Retry(attempts int) Option {
	return func(o *readOptions) { o.attempts = attempts }
}

func (c *Client) readOptions(key domain.CacheKey, opts []Option) readOptions {
	o := readOptions{
		staleTime: c.staleTimeFor(key),
		enabled:   true,
		attempts:  c.settings.Attempts,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.attempts < 1 {
		o.attempts = 1
	}
	return o
}

// Read returns the value of key, fetching it when the cached entry is missing, stale or
// invalidated. Concurrent reads of the same key share a single fetch.
//
// Read never returns an error directly: failures are reported in the result, next to
// whatever data the previous successful fetch stored. When ctx ends before the fetch
// resolves, Read returns the snapshot it saw before the fetch started.
func Read[T any](ctx context.Context, c *Client, key domain.CacheKey, fetch Fetcher[T], opts ...Option) domain.QueryResult[T] {
	if key.Len() == 0 {
		return domain.QueryResult[T]{Status: domain.QueryError, Err: domain.ErrEmptyKey}
	}
	o := c.readOptions(key, opts)
	now := time.Now()

	c.mu.Lock()
	c.maybeCollect(now)
	e := c.lookup(key)

	if !o.enabled {
		var snap snapshot
		if e != nil {
			snap = e.snapshot(now, o.staleTime)
		}
		c.mu.Unlock()
		return toResult[T](snap, false)
	}

	if e != nil && e.fresh(now, o.staleTime) {
		e.lastUsed = now
		snap := e.snapshot(now, o.staleTime)
		c.mu.Unlock()
		c.observer.CacheHit(key)
		_, vertex := c.telemetry.Record(ctx, "read "+key.String())
		vertex.Cached()
		vertex.Complete(nil)
		return toResult[T](snap, false)
	}

	if e == nil {
		e = c.insert(key, now)
	}
	prev := e.snapshot(now, o.staleTime)
	e.lastUsed = now
	e.status = domain.QueryLoading
	e.waiters++
	c.mu.Unlock()

	erased := func(ctx context.Context) (any, error) {
		return fetch(ctx)
	}
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(flightKey(key), func() (any, error) {
		return c.fetch(fetchCtx, e, erased, o), nil
	})

	select {
	case res := <-ch:
		c.mu.Lock()
		e.waiters--
		// A flight joined after its own entry was evicted never settles e.
		if !e.fetching && e.status == domain.QueryLoading {
			e.status = e.settledStatus()
		}
		c.mu.Unlock()
		snap, _ := res.Val.(snapshot)
		return toResult[T](snap, true)
	case <-ctx.Done():
		c.mu.Lock()
		e.waiters--
		c.mu.Unlock()
		c.logger.Debug(fmt.Sprintf("read of %s abandoned before its fetch resolved", key))
		return toResult[T](prev, false)
	}
}

// fetch runs the fetcher with bounded retry and stores the outcome in e, unless every
// reader has gone away or e was evicted while the fetch was running.
func (c *Client) fetch(ctx context.Context, e *entry, fetch Fetcher[any], o readOptions) snapshot {
	c.mu.Lock()
	epoch := e.epoch
	e.fetching = true
	c.mu.Unlock()

	ctx, vertex := c.telemetry.Record(ctx, "fetch "+e.key.String())
	c.logger.Debug(fmt.Sprintf("fetching %s", e.key))

	attempts := 0
	value, err := backoff.Retry(ctx, func() (any, error) {
		attempts++
		v, err := fetch(ctx)
		if err != nil {
			vertex.Log(domain.LogLevelWarn, fmt.Sprintf("attempt %d: %v", attempts, err))
			if !domain.IsRetryable(err) {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return v, nil
	}, backoff.WithBackOff(c.settings.Backoff()), backoff.WithMaxTries(uint(o.attempts)))
	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		err = permanent.Unwrap()
	}

	vertex.Complete(err)
	c.observer.FetchCompleted(e.key, attempts, err)

	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	e.fetching = false

	if e.waiters == 0 || !c.stored(e) {
		e.status = e.settledStatus()
		c.logger.Debug(fmt.Sprintf("discarding result for %s: no reader is waiting", e.key))
		snap := e.snapshot(now, o.staleTime)
		if err != nil {
			snap.err = err
			snap.status = domain.QueryError
			snap.failureCount = attempts
		} else {
			snap.value = value
			snap.status = domain.QuerySuccess
			snap.updatedAt = now
		}
		return snap
	}

	if err != nil {
		e.err = err
		e.status = domain.QueryError
		e.failureCount = attempts
	} else {
		e.value = value
		e.err = nil
		e.status = domain.QuerySuccess
		e.updatedAt = now
		e.failureCount = 0
		e.invalidated = e.epoch != epoch
	}
	e.lastUsed = now
	return e.snapshot(now, o.staleTime)
}
