// Package cache implements the keyed fetch cache backing the data layer.
//
// Each backend resource maps to a stable key ("me", "matches", "discover").
// The cache guarantees:
//
//   - De-duplication: concurrent fetches for a key share one request.
//   - Invalidation: stale entries are refetched on the next read.
//   - Stale-while-error: a failed refetch keeps the previous value and
//     reports the error alongside it.
//   - Supersession: every issued fetch is tagged with a per-key sequence
//     number; a completion whose sequence is no longer the latest issued for
//     the key is discarded instead of overwriting newer state.
package cache

import (
	"context"
	"sync"
)

// Well-known cache keys for backend resources.
const (
	KeyMe       = "me"
	KeyMatches  = "matches"
	KeyDiscover = "discover"
)

// entry is the cached state for one key.
type entry struct {
	value    any
	hasValue bool
	stale    bool
	err      error
	loading  bool
	seq      uint64        // latest issued fetch for this key
	done     chan struct{} // closed when the in-flight fetch settles
}

// Cache is a keyed fetch cache. The zero value is not usable; construct with
// [New]. Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[string]*entry)}
}

func (c *Cache) entryFor(key string) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	return e
}

// fetch returns the cached value for key, issuing fn at most once no matter
// how many callers arrive while the request is pending. On failure the
// previous cached value (if any) is returned together with the error.
func (c *Cache) fetch(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	for {
		c.mu.Lock()
		e := c.entryFor(key)

		if e.hasValue && !e.stale && e.err == nil {
			v := e.value
			c.mu.Unlock()
			return v, nil
		}

		if e.loading {
			done, seq := e.done, e.seq
			c.mu.Unlock()

			select {
			case <-done:
			case <-ctx.Done():
				return nil, ctx.Err()
			}

			c.mu.Lock()
			if e.seq == seq && e.err != nil {
				v, err := e.value, e.err
				c.mu.Unlock()
				return v, err
			}
			c.mu.Unlock()
			continue
		}

		e.loading = true
		e.err = nil
		e.seq++
		seq := e.seq
		e.done = make(chan struct{})
		done := e.done
		c.mu.Unlock()

		value, err := fn(ctx)

		c.mu.Lock()
		if seq != e.seq {
			// Superseded while in flight; discard and observe newer state.
			close(done)
			c.mu.Unlock()
			continue
		}

		e.loading = false
		if err == nil {
			e.value = value
			e.hasValue = true
			e.stale = false
		} else {
			e.err = err
		}
		close(done)

		v := e.value
		c.mu.Unlock()
		return v, err
	}
}

// Fetch returns the cached value for key, calling fn on a miss or stale entry.
func Fetch[T any](ctx context.Context, c *Cache, key string, fn func(context.Context) (T, error)) (T, error) {
	v, err := c.fetch(ctx, key, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})

	var zero T
	if v == nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, err
	}
	return typed, err
}

// Invalidate marks the given keys stale so the next read refetches. An
// in-flight fetch for an invalidated key is superseded: its eventual result
// is discarded.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		e, ok := c.entries[key]
		if !ok {
			continue
		}
		e.stale = true
		e.err = nil
		if e.loading {
			e.seq++
			e.loading = false
		}
	}
}

// InvalidateAll marks every entry stale.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	c.mu.Unlock()
	c.Invalidate(keys...)
}

// Peek returns the cached value without fetching. The second return reports
// whether a value (possibly stale) is present.
func (c *Cache) Peek(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || !e.hasValue {
		return nil, false
	}
	return e.value, true
}

// Loading reports whether a fetch for key is in flight, for rendering
// placeholder states.
func (c *Cache) Loading(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	return ok && e.loading
}

// LastError returns the error from the most recent settled fetch for key,
// or nil. Cleared when a new fetch is issued or the key is invalidated.
func (c *Cache) LastError(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	return e.err
}
