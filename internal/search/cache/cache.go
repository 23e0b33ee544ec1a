package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/akash-kant/searchsearviceusingtavily/internal/search/types"
)

// Per-kind time-to-live. News moves fast, so it expires sooner.
const (
	DefaultTTL = 600 * time.Second
	NewsTTL    = 300 * time.Second
)

// Fingerprint derives the cache key: a sha256 digest over the query and
// the cache-relevant configuration fields. Query text is not normalized,
// so lookups are case- and whitespace-sensitive. Result count and domain
// filters deliberately do not participate.
func Fingerprint(query string, cfg *types.SearchConfig) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s|%s", query, cfg.Depth, cfg.Type, cfg.TimeWindow)))
	return hex.EncodeToString(sum[:])
}

// TTLFor returns the time-to-live for a search type.
func TTLFor(t types.SearchType) time.Duration {
	if t == types.SearchTypeNews {
		return NewsTTL
	}
	return DefaultTTL
}

type entry struct {
	response   *types.EnrichedResponse
	searchType types.SearchType
	storedAt   time.Time
}

// ResultCache maps a (query, configuration) fingerprint to a previously
// computed enriched response. Memory-resident and volatile; entries are
// evicted lazily on read, never by a background sweep.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// New creates an empty result cache.
func New() *ResultCache {
	return &ResultCache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// SetClock replaces the cache's time source. Test hook.
func (c *ResultCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Lookup returns the stored response for (query, cfg) if present and
// younger than its TTL. A stale entry is deleted on the spot and the
// lookup reports a miss.
func (c *ResultCache) Lookup(query string, cfg *types.SearchConfig) (*types.EnrichedResponse, bool) {
	key := Fingerprint(query, cfg)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) >= TTLFor(e.searchType) {
		delete(c.entries, key)
		return nil, false
	}
	return e.response, true
}

// Store inserts or overwrites the entry for (query, cfg), stamped with
// the current time.
func (c *ResultCache) Store(query string, cfg *types.SearchConfig, resp *types.EnrichedResponse) {
	key := Fingerprint(query, cfg)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		response:   resp,
		searchType: cfg.Type,
		storedAt:   c.now(),
	}
}

// Len returns the number of entries currently held, stale ones included.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Keys returns the fingerprints currently held. Administrative surface.
func (c *ResultCache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

// Clear drops every entry unconditionally.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}
