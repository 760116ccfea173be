package entitlement

import (
	"context"
	"sync"
)

// Cache holds the device's cached snapshot with monotonic sequence fencing.
// Refreshes may race when triggered from multiple completion callbacks;
// fencing guarantees a slower, older response never overwrites a newer
// snapshot.
type Cache struct {
	mu      sync.Mutex
	current *Snapshot
	nextSeq uint64
	applied uint64
}

// NewCache creates an empty snapshot cache.
func NewCache() *Cache {
	return &Cache{}
}

// Begin allocates a sequence number for a refresh about to be issued.
func (c *Cache) Begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSeq++
	return c.nextSeq
}

// Commit installs a refresh response. Responses carrying a sequence older
// than the last applied one are discarded, as are nil snapshots (failed
// refreshes keep the previous value).
func (c *Cache) Commit(seq uint64, snap *Snapshot) bool {
	if snap == nil {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq <= c.applied {
		return false
	}
	c.applied = seq
	c.current = snap
	return true
}

// Current returns the cached snapshot, or nil when nothing has been
// fetched yet.
func (c *Cache) Current() *Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// CachedRefresher composes the backend client with a fenced cache. It is
// the refresher the purchase flow holds: every successful purchase or
// restore triggers a refresh through it.
type CachedRefresher struct {
	client *Client
	cache  *Cache
}

// NewCachedRefresher creates a refresher that installs fetched snapshots
// into the cache. Panics on nil dependencies.
func NewCachedRefresher(client *Client, cache *Cache) *CachedRefresher {
	if client == nil {
		panic("entitlement: client is required")
	}
	if cache == nil {
		panic("entitlement: cache is required")
	}
	return &CachedRefresher{client: client, cache: cache}
}

// Refresh fetches the snapshot and commits it under a sequence fence.
// Returns nil on failure; the cache keeps its previous value.
func (r *CachedRefresher) Refresh(ctx context.Context, deviceID string) *Snapshot {
	seq := r.cache.Begin()
	snap, err := r.client.Fetch(ctx, deviceID)
	if err != nil {
		return nil
	}
	r.cache.Commit(seq, snap)
	return snap
}

// Current exposes the cached snapshot.
func (r *CachedRefresher) Current() *Snapshot {
	return r.cache.Current()
}
