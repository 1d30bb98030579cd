// Package assets provides the shared-reference cache behind components such
// as materials and meshes. A cached value is handed to every object that asks
// for the same key; objects never own what they get from the cache.
package assets

import (
	"errors"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

const defaultShards = 16

var ErrNilLoader = errors.New("assets: nil loader")

// LoadFunc produces the value for a missing key.
type LoadFunc[T any] func(key string) (T, error)

// Cache is a sharded key/value store with load-once semantics. Safe for
// concurrent use.
type Cache[T any] struct {
	shards []shard[T]
	count  uint64

	hits   atomic.Uint64
	misses atomic.Uint64
}

type shard[T any] struct {
	mx    sync.Mutex
	items map[string]*entry[T]
}

// entry is filled once; done is closed when value/err are final.
type entry[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// NewCache creates a cache with the given shard count (16 when <= 0).
func NewCache[T any](shardCount int) *Cache[T] {
	if shardCount <= 0 {
		shardCount = defaultShards
	}
	c := &Cache[T]{
		shards: make([]shard[T], shardCount),
		count:  uint64(shardCount),
	}
	for i := range c.shards {
		c.shards[i].items = make(map[string]*entry[T])
	}
	return c
}

func (c *Cache[T]) shardFor(key string) *shard[T] {
	return &c.shards[xxhash.Sum64String(key)%c.count]
}

// GetOrLoad returns the cached value for key, running load at most once per
// key even under concurrent callers. A failed load is not cached.
func (c *Cache[T]) GetOrLoad(key string, load LoadFunc[T]) (T, error) {
	if load == nil {
		var zero T
		return zero, ErrNilLoader
	}
	s := c.shardFor(key)

	s.mx.Lock()
	if e, ok := s.items[key]; ok {
		s.mx.Unlock()
		<-e.done
		if e.err == nil {
			c.hits.Add(1)
			return e.value, nil
		}
		// the failed entry has been dropped by its loader; retry
		return c.GetOrLoad(key, load)
	}
	e := &entry[T]{done: make(chan struct{})}
	s.items[key] = e
	s.mx.Unlock()

	c.misses.Add(1)
	e.value, e.err = load(key)
	if e.err != nil {
		s.mx.Lock()
		if s.items[key] == e {
			delete(s.items, key)
		}
		s.mx.Unlock()
	}
	close(e.done)
	return e.value, e.err
}

// Get returns a loaded value without loading.
func (c *Cache[T]) Get(key string) (T, bool) {
	s := c.shardFor(key)
	s.mx.Lock()
	e, ok := s.items[key]
	s.mx.Unlock()
	var zero T
	if !ok {
		return zero, false
	}
	select {
	case <-e.done:
	default:
		return zero, false
	}
	if e.err != nil {
		return zero, false
	}
	return e.value, true
}

// Put stores value under key, replacing any previous value.
func (c *Cache[T]) Put(key string, value T) {
	e := &entry[T]{done: make(chan struct{}), value: value}
	close(e.done)
	s := c.shardFor(key)
	s.mx.Lock()
	s.items[key] = e
	s.mx.Unlock()
}

func (c *Cache[T]) Delete(key string) {
	s := c.shardFor(key)
	s.mx.Lock()
	delete(s.items, key)
	s.mx.Unlock()
}

func (c *Cache[T]) Len() int {
	n := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mx.Lock()
		n += len(s.items)
		s.mx.Unlock()
	}
	return n
}

// Keys returns every stored key, sorted.
func (c *Cache[T]) Keys() []string {
	var keys []string
	for i := range c.shards {
		s := &c.shards[i]
		s.mx.Lock()
		for k := range s.items {
			keys = append(keys, k)
		}
		s.mx.Unlock()
	}
	sort.Strings(keys)
	return keys
}

// Stats reports cache hits and misses since creation.
func (c *Cache[T]) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}
