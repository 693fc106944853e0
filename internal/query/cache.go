package query

import (
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const cacheEntriesPerTier = 512

type entry struct {
	value     any
	fetchedAt time.Time
}

// Cache is the process-local store behind the query layer: one expirable
// LRU per tier, TTL'd at the tier's eviction horizon. Staleness is judged
// against the entry's fetch time, eviction is the LRU's job.
type Cache struct {
	mu    sync.Mutex
	lrus  map[string]*expirable.LRU[string, entry]
	tiers Tiers
}

func NewCache(tiers Tiers) *Cache {
	lrus := make(map[string]*expirable.LRU[string, entry])
	for _, t := range tiers.All() {
		lrus[t.Name] = expirable.NewLRU[string, entry](cacheEntriesPerTier, nil, t.GCTime)
	}
	return &Cache{lrus: lrus, tiers: tiers}
}

// Get returns the cached value for key plus whether it is past the tier's
// stale window. The second return is false on a miss.
func (c *Cache) Get(tier Tier, key Key) (value any, ok bool, stale bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lru, found := c.lrus[tier.Name]
	if !found {
		return nil, false, false
	}
	e, hit := lru.Get(key.String())
	if !hit {
		return nil, false, false
	}
	return e.value, true, time.Since(e.fetchedAt) > tier.StaleTime
}

func (c *Cache) Set(tier Tier, key Key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if lru, found := c.lrus[tier.Name]; found {
		lru.Add(key.String(), entry{value: value, fetchedAt: time.Now()})
	}
}

// Invalidate drops every cached entry whose key sits under prefix, across
// all tiers.
func (c *Cache) Invalidate(prefix Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, lru := range c.lrus {
		for _, k := range lru.Keys() {
			if NewKey(strings.Split(k, "/")...).HasPrefix(prefix) {
				lru.Remove(k)
			}
		}
	}
}
