// Package matchcache caches computed match results keyed by the exact input
// versions that produced them.
//
// Because a result is a pure function of (project version, candidate version),
// entries never go stale: a profile or project update bumps its version, which
// changes the key, and superseded keys simply age out of the LRU. Concurrent
// requests for the same key share one computation.
package matchcache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/gradmatch/gradmatch/internal/domain/model"
)

// defaultCapacity bounds the cache when no option overrides it.
const defaultCapacity = 4096

// Key identifies one scoring computation by the exact versions that fed it.
type Key struct {
	ProjectID        string
	ProjectVersion   int64
	CandidateID      string
	CandidateVersion int64
}

// String renders the key for single-flight grouping.
func (k Key) String() string {
	return fmt.Sprintf("%s@%d|%s@%d", k.ProjectID, k.ProjectVersion, k.CandidateID, k.CandidateVersion)
}

// KeyFor builds the cache key for a project/candidate pair.
func KeyFor(project model.ProjectRequirement, candidate model.CandidateProfile) Key {
	return Key{
		ProjectID:        project.ID,
		ProjectVersion:   project.Version,
		CandidateID:      candidate.ID,
		CandidateVersion: candidate.Version,
	}
}

// Stats is a point-in-time snapshot of cache effectiveness.
type Stats struct {
	Size      int   `json:"size"`
	Capacity  int   `json:"capacity"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Coalesced int64 `json:"coalesced"`
}

// entry is a single cached result on the recency list.
type entry struct {
	key        Key
	res        model.MatchResult
	prev, next *entry
}

// reset clears the entry state for reuse.
func (e *entry) reset() {
	*e = entry{}
}

// Cache is a bounded LRU of immutable match results with single-flight
// computation.
// For bounded mode (capacity > 0): least recently used entries are evicted.
// For unbounded mode (capacity <= 0): entries accumulate without eviction.
type Cache struct {
	mu         sync.Mutex
	entries    map[Key]*entry
	head, tail *entry // recency list, most recently used at head
	capacity   int
	entryPool  sync.Pool

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
	coalesced atomic.Int64

	flight singleflight.Group
}

// New creates a match cache with configuration options.
func New(opts ...Option) *Cache {
	c := &Cache{
		capacity: defaultCapacity,
	}

	// Apply all options
	for _, opt := range opts {
		opt(c)
	}

	c.entries = make(map[Key]*entry)
	c.entryPool = sync.Pool{
		New: func() interface{} {
			return &entry{}
		},
	}

	return c
}

// Get returns the cached result for key, if present, and refreshes its
// recency.
func (c *Cache) Get(_ context.Context, key Key) (model.MatchResult, bool) {
	res, ok := c.lookup(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return res, ok
}

// GetOrCompute returns the cached result for key or runs compute exactly once
// to produce it, no matter how many callers ask concurrently. The returned
// bool reports whether the result came from the cache. A compute failure
// caches nothing; a caller whose context ends stops waiting, and a waiter
// whose flight died of the winner's cancellation retakes the computation
// with its own context.
func (c *Cache) GetOrCompute(ctx context.Context, key Key, compute func(context.Context) (model.MatchResult, error)) (model.MatchResult, bool, error) {
	for {
		if res, ok := c.lookup(key); ok {
			c.hits.Add(1)
			return res, true, nil
		}

		// The closure runs for exactly one caller per in-flight key; the
		// others wait on the channel and count as coalesced. The closure
		// captures the winner's ctx, so cancelling the winner aborts the
		// computation without poisoning the cache.
		ran := false
		ch := c.flight.DoChan(key.String(), func() (interface{}, error) {
			ran = true
			// A concurrent flight may have stored the result after our lookup.
			if res, ok := c.lookup(key); ok {
				c.hits.Add(1)
				return res, nil
			}
			c.misses.Add(1)
			res, err := compute(ctx)
			if err != nil {
				return nil, err
			}
			c.store(key, res)
			return res, nil
		})

		select {
		case <-ctx.Done():
			return model.MatchResult{}, false, ctx.Err()
		case r := <-ch:
			if r.Err != nil {
				// The winner's cancellation is not ours; retry the flight so
				// a live caller can complete the computation.
				if !ran && isContextErr(r.Err) && ctx.Err() == nil {
					c.flight.Forget(key.String())
					continue
				}
				return model.MatchResult{}, false, r.Err
			}
			if !ran {
				c.coalesced.Add(1)
			}
			return r.Val.(model.MatchResult), false, nil
		}
	}
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Len returns the current number of cached results.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	size := len(c.entries)
	c.mu.Unlock()
	return Stats{
		Size:      size,
		Capacity:  c.capacity,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Coalesced: c.coalesced.Load(),
	}
}

// lookup fetches an entry and moves it to the front of the recency list.
func (c *Cache) lookup(key Key) (model.MatchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return model.MatchResult{}, false
	}
	c.moveToFront(e)
	return e.res, true
}

// store inserts a computed result at the front, evicting from the tail when
// over capacity.
func (c *Cache) store(key Key, res model.MatchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.res = res
		c.moveToFront(e)
		return
	}

	e := c.entryPool.Get().(*entry)
	e.key = key
	e.res = res
	c.pushFront(e)
	c.entries[key] = e

	if c.capacity > 0 {
		for len(c.entries) > c.capacity {
			c.evictTail()
		}
	}
}

// pushFront links e as the new head. Must be called with c.mu held.
func (c *Cache) pushFront(e *entry) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

// moveToFront refreshes e's recency. Must be called with c.mu held.
func (c *Cache) moveToFront(e *entry) {
	if c.head == e {
		return
	}
	// Unlink.
	if e.prev != nil {
		e.prev.next = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	}
	if c.tail == e {
		c.tail = e.prev
	}
	// Relink at head.
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
}

// evictTail removes the least recently used entry. Must be called with c.mu
// held.
func (c *Cache) evictTail() {
	e := c.tail
	if e == nil {
		return
	}
	if e.prev != nil {
		e.prev.next = nil
	}
	c.tail = e.prev
	if c.head == e {
		c.head = nil
	}
	delete(c.entries, e.key)
	e.reset()
	c.entryPool.Put(e)
	c.evictions.Add(1)
}
