// Package querycache memoizes remote read results by query key with a
// time-based staleness window.
package querycache

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// State describes a cache entry.
type State int

const (
	Missing State = iota
	Fresh
	Stale
	Invalidated
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	case Invalidated:
		return "invalidated"
	default:
		return "missing"
	}
}

type entry struct {
	value       any
	fetchedAt   time.Time
	invalidated bool
}

// Cache is a keyed request cache. It is safe for concurrent use.
//
// Every write or invalidation that touches a key with loads in flight moves the
// key to a new generation. A fetch that started under an older generation
// still returns its value to its callers but is not written back, so a
// mutation is never shadowed by a read that raced it. Generations are only
// kept while loads are outstanding.
type Cache struct {
	mu        sync.Mutex
	entries   map[string]*entry
	gens      map[string]uint64
	inflight  map[string]int
	seq       uint64
	staleTime time.Duration
	now       func() time.Time
	group     singleflight.Group
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates a cache whose entries go stale after staleTime. A zero
// staleTime makes every entry stale as soon as it is written.
func New(staleTime time.Duration, opts ...Option) *Cache {
	c := &Cache{
		entries:   make(map[string]*entry),
		gens:      make(map[string]uint64),
		inflight:  make(map[string]int),
		staleTime: staleTime,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key joins parts into a query key.
func Key(parts ...string) string {
	return strings.Join(parts, "/")
}

// Fetch returns the cached value for key when fresh, otherwise calls fn.
func Fetch[T any](ctx context.Context, c *Cache, key string, fn func(context.Context) (T, error)) (T, error) {
	return load(ctx, c, key, fn, false, nil)
}

// Query is Fetch with a commit hook. onCommit runs with the fetched value while
// the result is written to the cache, and only if it is written; cache hits do
// not call it.
func Query[T any](ctx context.Context, c *Cache, key string, fn func(context.Context) (T, error), onCommit func(T)) (T, error) {
	return load(ctx, c, key, fn, false, onCommit)
}

// Refetch always calls fn, ignoring any cached value.
func Refetch[T any](ctx context.Context, c *Cache, key string, fn func(context.Context) (T, error), onCommit func(T)) (T, error) {
	return load(ctx, c, key, fn, true, onCommit)
}

func load[T any](ctx context.Context, c *Cache, key string, fn func(context.Context) (T, error), force bool, onCommit func(T)) (T, error) {
	var zero T

	c.mu.Lock()
	if !force {
		if e, ok := c.entries[key]; ok && c.stateLocked(e) == Fresh {
			if v, ok := e.value.(T); ok {
				c.mu.Unlock()
				return v, nil
			}
		}
	}
	gen := c.gens[key]
	c.inflight[key]++
	c.mu.Unlock()

	// The flight outlives any single caller; a caller that goes away only
	// discards the result.
	flightCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key+"#"+strconv.FormatUint(gen, 10), func() (any, error) {
		v, err := fn(flightCtx)
		if err != nil {
			return nil, err
		}
		c.commit(key, gen, v, func() {
			if onCommit != nil {
				onCommit(v)
			}
		})
		return v, nil
	})

	select {
	case <-ctx.Done():
		go func() {
			<-ch
			c.release(key)
		}()
		return zero, ctx.Err()
	case res := <-ch:
		c.release(key)
		if res.Err != nil {
			return zero, res.Err
		}
		v, _ := res.Val.(T)
		return v, nil
	}
}

func (c *Cache) commit(key string, gen uint64, v any, hook func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[key] != gen {
		return
	}
	c.entries[key] = &entry{value: v, fetchedAt: c.now()}
	hook()
}

// release drops a caller's claim on key once its flight has finished. The
// flight commits before results are delivered, so the last release can forget
// the key's generation.
func (c *Cache) release(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight[key]--
	if c.inflight[key] <= 0 {
		delete(c.inflight, key)
		delete(c.gens, key)
	}
}

// bumpLocked fences loads in flight for key.
func (c *Cache) bumpLocked(key string) {
	if c.inflight[key] > 0 {
		c.seq++
		c.gens[key] = c.seq
	}
}

func (c *Cache) stateLocked(e *entry) State {
	if e.invalidated {
		return Invalidated
	}
	if c.now().Sub(e.fetchedAt) >= c.staleTime {
		return Stale
	}
	return Fresh
}

// State reports the state of key.
func (c *Cache) State(key string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return Missing
	}
	return c.stateLocked(e)
}

// Peek returns the stored value for key regardless of staleness.
func (c *Cache) Peek(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Set stores v under key as freshly fetched.
func (c *Cache) Set(key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bumpLocked(key)
	c.entries[key] = &entry{value: v, fetchedAt: c.now()}
}

// Invalidate marks keys stale so the next read refetches. Values are kept.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		c.bumpLocked(key)
		if e, ok := c.entries[key]; ok {
			e.invalidated = true
		}
	}
}

// InvalidatePrefix invalidates every key equal to prefix or nested under it.
func (c *Cache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.inflight {
		if underPrefix(key, prefix) {
			c.bumpLocked(key)
		}
	}
	for key, e := range c.entries {
		if underPrefix(key, prefix) {
			e.invalidated = true
		}
	}
}

func underPrefix(key, prefix string) bool {
	return key == prefix || strings.HasPrefix(key, prefix+"/")
}

// Remove drops keys entirely.
func (c *Cache) Remove(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		c.bumpLocked(key)
		delete(c.entries, key)
	}
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.inflight {
		c.bumpLocked(key)
	}
	c.entries = make(map[string]*entry)
}

// Len returns the number of stored entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
