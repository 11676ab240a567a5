package poster

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Snapshot is an encoded still frame captured from a playing tile.
type Snapshot struct {
	Data       []byte
	Format     string
	Width      int
	Height     int
	CapturedAt time.Time
}

// Cache holds one snapshot per tile ID for the life of the process. The
// first snapshot stored for an ID wins; later stores are ignored so a
// tile's poster never flickers between captures. Nothing is ever evicted.
type Cache struct {
	mu        sync.RWMutex
	snapshots map[string]Snapshot
	flight    singleflight.Group
}

// NewCache returns an empty poster cache. Share one instance across grids
// so posters survive grid teardown and remount.
func NewCache() *Cache {
	return &Cache{snapshots: make(map[string]Snapshot)}
}

// Get returns the cached snapshot for the tile, if any.
func (c *Cache) Get(id string) (Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snap, ok := c.snapshots[id]
	return snap, ok
}

// StoreIfAbsent records the snapshot unless the ID already has one. It
// reports whether the snapshot was stored.
func (c *Cache) StoreIfAbsent(id string, snap Snapshot) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.snapshots[id]; exists {
		return false
	}
	c.snapshots[id] = snap
	return true
}

// Ensure returns the cached snapshot for the tile, invoking capture at most
// once across concurrent callers when the cache has none. A capture error
// leaves the cache untouched so a later attempt can retry.
func (c *Cache) Ensure(id string, capture func() (Snapshot, error)) (Snapshot, error) {
	if snap, ok := c.Get(id); ok {
		return snap, nil
	}

	result, err, _ := c.flight.Do(id, func() (any, error) {
		if snap, ok := c.Get(id); ok {
			return snap, nil
		}
		snap, err := capture()
		if err != nil {
			return Snapshot{}, err
		}
		c.StoreIfAbsent(id, snap)
		snap, _ = c.Get(id)
		return snap, nil
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("capture poster for %s: %w", id, err)
	}
	return result.(Snapshot), nil
}

// Len returns the number of cached snapshots.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.snapshots)
}

// IDs returns the cached tile IDs in sorted order.
func (c *Cache) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.snapshots))
	for id := range c.snapshots {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
