package domain

import (
	"log/slog"
	"time"

	"tps.dev/pkg/tps/internal/adapter"
	m "tps.dev/pkg/tps/internal/model"
)

// Clock supplies the current time; injectable for tests.
type Clock func() time.Time

// AccessCache is a fixed-capacity map from project path to last-access
// Unix timestamp. It answers "which of these paths was touched most
// recently" — last time only, not access count — trading exactness for
// O(1) updates on a map bounded to tens of entries.
type AccessCache struct {
	entries  map[string]int64
	store    adapter.CacheStore
	capacity int
	now      Clock
	closed   bool
}

// LoadAccessCache loads the cache from store. Load errors are returned
// as the store reported them (ErrStoreCorrupt, ErrStoreUnreadable,
// ErrStoreBusy); the caller decides fallback policy. A store holding
// more entries than capacity is trimmed to the newest capacity entries.
func LoadAccessCache(store adapter.CacheStore, capacity int) (*AccessCache, error) {
	entries, err := store.Load()
	if err != nil {
		return nil, err
	}

	c := newAccessCache(entries, store, capacity)
	for len(c.entries) > c.capacity {
		c.evictOldest()
	}

	return c, nil
}

// NewEphemeralCache constructs a cache with no backing store; accesses
// are retained only in memory for the process lifetime.
func NewEphemeralCache(capacity int) *AccessCache {
	return newAccessCache(map[string]int64{}, nil, capacity)
}

func newAccessCache(entries map[string]int64, store adapter.CacheStore, capacity int) *AccessCache {
	if capacity < 1 {
		capacity = 1
	}

	return &AccessCache{
		entries:  entries,
		store:    store,
		capacity: capacity,
		now:      time.Now,
	}
}

// RegisterAccess records now as the access time for path. Re-registering
// a known path overwrites its timestamp and never evicts; a brand-new
// path at capacity first evicts exactly one entry so the count never
// exceeds capacity.
func (c *AccessCache) RegisterAccess(path m.Path) {
	key := string(path)

	if _, known := c.entries[key]; !known && len(c.entries) >= c.capacity {
		c.evictOldest()
	}

	c.entries[key] = c.now().Unix()
}

// AccessTimeOf returns the recorded timestamp for path, or 0 when the
// path has never been recorded — the oldest possible time, so unseen
// paths always sort last under descending recency.
func (c *AccessCache) AccessTimeOf(path m.Path) int64 {
	return c.entries[string(path)]
}

// MoreRecent reports whether a was accessed strictly more recently than
// b. Equal timestamps (including two unseen paths) compare equal both
// ways; callers wanting a stable order supply their own tie-break.
func (c *AccessCache) MoreRecent(a, b m.Path) bool {
	return c.AccessTimeOf(a) > c.AccessTimeOf(b)
}

// Len returns the current entry count.
func (c *AccessCache) Len() int {
	return len(c.entries)
}

// Close flushes the entries to the backing store and releases it.
// A write failure is logged, never propagated: losing recency history
// must not block the switch that already happened. Idempotent; a no-op
// for ephemeral caches.
func (c *AccessCache) Close() {
	if c.closed {
		return
	}
	c.closed = true

	if c.store == nil {
		return
	}
	defer c.store.Release()

	if err := c.store.Save(c.entries); err != nil {
		slog.Warn("could not write access store, recent accesses were not recorded", "error", err)
	}
}

// evictOldest removes the entry with the minimum timestamp. Among
// equally old entries the lexically smallest path goes, so eviction is
// deterministic.
func (c *AccessCache) evictOldest() {
	var (
		oldestKey string
		oldest    int64
		found     bool
	)

	for key, ts := range c.entries {
		if !found || ts < oldest || (ts == oldest && key < oldestKey) {
			oldestKey, oldest, found = key, ts, true
		}
	}

	if found {
		delete(c.entries, oldestKey)
	}
}
