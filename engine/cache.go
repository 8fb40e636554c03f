package engine

import (
	"reflect"
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// conversionCache memoizes one immutable entry per type pair. Entries are
// published once and never evicted. Concurrent first resolutions of a pair
// collapse into a single computation; recursive legs computed inline by
// other walks settle by first writer wins.
type conversionCache struct {
	mu      sync.RWMutex
	entries map[TypeKey]*ConversionEntry
	flight  singleflight.Group
	hits    atomic.Int64
	misses  atomic.Int64
}

func newConversionCache() *conversionCache {
	return &conversionCache{entries: make(map[TypeKey]*ConversionEntry)}
}

func (c *conversionCache) get(key TypeKey) *ConversionEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.entries[key]
}

// put publishes the entry unless another writer got there first and returns
// whichever entry readers see.
func (c *conversionCache) put(key TypeKey, ent *ConversionEntry) *ConversionEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.entries[key]; ok {
		return prev
	}

	c.entries[key] = ent

	return ent
}

func (c *conversionCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// flightKey identifies the pair inside the singleflight group. Type display
// names can collide across identically named packages, so the key is built
// from the type descriptors' identities instead.
func flightKey(key TypeKey) string {
	src := uint64(reflect.ValueOf(key.Src).Pointer())
	dst := uint64(reflect.ValueOf(key.Dst).Pointer())

	return strconv.FormatUint(src, 16) + ":" + strconv.FormatUint(dst, 16)
}
