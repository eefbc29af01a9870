// Package memo caches engine results by operation key.
//
// Keys are bucketed by their xxhash digest, and every entry keeps the full
// key it was stored under. A lookup only hits when the stored key matches
// byte for byte, so a digest collision is a miss, never a wrong answer.
package memo

import (
	"bytes"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/patrickmn/go-cache"

	"github.com/roach88/tally/internal/ir"
)

// Default expiration settings.
const (
	DefaultTTL             = 10 * time.Minute
	DefaultCleanupInterval = time.Minute
)

// Config is the configuration for a Cache.
type Config struct {
	// TTL is how long an entry lives. Zero means DefaultTTL; a negative
	// value keeps entries until Flush.
	TTL time.Duration
	// CleanupInterval is how often expired entries are purged.
	CleanupInterval time.Duration
}

// Stats are cumulative counters for a Cache.
type Stats struct {
	Hits       uint64
	Misses     uint64
	Collisions uint64
}

type entry struct {
	key   []byte
	value ir.Int
}

// Cache is an in-process memo safe for concurrent use.
type Cache struct {
	cache *cache.Cache

	hits       atomic.Uint64
	misses     atomic.Uint64
	collisions atomic.Uint64
}

// New creates a Cache.
func New(cfg Config) *Cache {
	ttl := cfg.TTL
	switch {
	case ttl == 0:
		ttl = DefaultTTL
	case ttl < 0:
		ttl = cache.NoExpiration
	}
	cleanup := cfg.CleanupInterval
	if cleanup <= 0 {
		cleanup = DefaultCleanupInterval
	}
	return &Cache{cache: cache.New(ttl, cleanup)}
}

func bucket(key []byte) string {
	return strconv.FormatUint(xxhash.Sum64(key), 16)
}

// Lookup returns the value stored under key.
func (c *Cache) Lookup(key []byte) (ir.Int, bool) {
	v, ok := c.cache.Get(bucket(key))
	if !ok {
		c.misses.Add(1)
		return ir.Int{}, false
	}
	e := v.(*entry)
	if !bytes.Equal(e.key, key) {
		c.collisions.Add(1)
		c.misses.Add(1)
		return ir.Int{}, false
	}
	c.hits.Add(1)
	return e.value, true
}

// Store records value under key, replacing whatever shared its bucket.
func (c *Cache) Store(key []byte, value ir.Int) {
	k := make([]byte, len(key))
	copy(k, key)
	c.cache.SetDefault(bucket(key), &entry{key: k, value: value})
}

// Len returns the number of entries, including expired ones not yet
// purged.
func (c *Cache) Len() int {
	return c.cache.ItemCount()
}

// Flush removes every entry.
func (c *Cache) Flush() {
	c.cache.Flush()
}

// Stats returns the counters accumulated so far.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:       c.hits.Load(),
		Misses:     c.misses.Load(),
		Collisions: c.collisions.Load(),
	}
}
