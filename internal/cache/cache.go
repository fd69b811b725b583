// Package cache implements the in-process forecast cache: per-entry TTL with
// lazy expiry, an LRU capacity bound, and single-flight coalescing so
// concurrent misses on one key trigger exactly one load.
package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry[V any] struct {
	key       string
	value     V
	fetchedAt time.Time
	expiresAt time.Time
	elem      *list.Element
}

// Store is a bounded TTL+LRU cache. Get and Put for the same key are
// linearizable; everything runs under one mutex.
type Store[V any] struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*entry[V]
	order    *list.List // front = most recently used
	group    singleflight.Group
	now      func() time.Time
}

// New creates a store holding at most capacity entries. Exceeding the bound
// evicts the least-recently-used entry.
func New[V any](capacity int) *Store[V] {
	if capacity <= 0 {
		capacity = 1
	}
	return &Store[V]{
		capacity: capacity,
		entries:  make(map[string]*entry[V]),
		order:    list.New(),
		now:      time.Now,
	}
}

// Get returns the live value for key. Expired entries are dropped on read and
// never returned.
func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !s.now().Before(e.expiresAt) {
		s.removeLocked(e)
		var zero V
		return zero, false
	}
	s.order.MoveToFront(e.elem)
	return e.value, true
}

// Put stores value under key with the given TTL, overwriting any previous
// entry and evicting the LRU entry if the store is over capacity.
func (s *Store[V]) Put(key string, value V, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if e, ok := s.entries[key]; ok {
		e.value = value
		e.fetchedAt = now
		e.expiresAt = now.Add(ttl)
		s.order.MoveToFront(e.elem)
		return
	}

	e := &entry[V]{key: key, value: value, fetchedAt: now, expiresAt: now.Add(ttl)}
	e.elem = s.order.PushFront(e)
	s.entries[key] = e

	for len(s.entries) > s.capacity {
		oldest := s.order.Back()
		if oldest == nil {
			break
		}
		s.removeLocked(oldest.Value.(*entry[V]))
	}
}

// Len returns the number of stored entries, expired ones included until a
// read drops them.
func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store[V]) removeLocked(e *entry[V]) {
	s.order.Remove(e.elem)
	delete(s.entries, e.key)
}

// GetOrLoad returns the cached value for key, or runs load once for all
// concurrent callers and caches its result. The shared load is detached from
// any single caller's context: a caller whose ctx is cancelled stops waiting
// and gets ctx.Err(), while the load keeps running for the remaining waiters.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) (V, error)) (V, error) {
	if v, ok := s.Get(key); ok {
		return v, nil
	}

	ch := s.group.DoChan(key, func() (interface{}, error) {
		// Re-check: a racing flight may have filled the entry already.
		if v, ok := s.Get(key); ok {
			return v, nil
		}
		v, err := load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		s.Put(key, v, ttl)
		return v, nil
	})

	select {
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			var zero V
			return zero, res.Err
		}
		return res.Val.(V), nil
	}
}
