package dataset

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/workcalmkite-hue/2025mbti/internal/source"
)

// Cache is a read-through cache of normalized datasets keyed by source
// identity. A file's identity includes its modification time and size, so an
// edited file never hits a stale entry. Failed loads are not cached.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*Dataset
	// byPath remembers the current key per file so superseded entries are dropped.
	byPath map[string]string
	group  singleflight.Group
	hits   int
	misses int
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]*Dataset),
		byPath:  make(map[string]string),
	}
}

// Load returns the dataset for src, normalizing it on a miss. Concurrent
// loads of the same key share one normalization.
func (c *Cache) Load(src source.Source, opt Options) (*Dataset, error) {
	key := src.Key() + "#" + opt.fingerprint()

	c.mu.Lock()
	if ds, ok := c.entries[key]; ok {
		c.hits++
		c.mu.Unlock()
		return ds, nil
	}
	c.misses++
	c.mu.Unlock()

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		ds, err := Normalize(src, opt)
		if err != nil {
			return nil, err
		}
		// a file rewritten while it was being read must not be stored under the old identity
		if src.IsFile() {
			if now, err := source.File(src.Path); err != nil || now.Key() != src.Key() {
				return ds, nil
			}
		}
		c.store(src.Path, opt, key, ds)
		return ds, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Dataset), nil
}

func (c *Cache) store(path string, opt Options, key string, ds *Dataset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if path != "" {
		slot := path + "#" + opt.fingerprint()
		if old, ok := c.byPath[slot]; ok && old != key {
			delete(c.entries, old)
		}
		c.byPath[slot] = key
	}
	c.entries[key] = ds
}

// Len is the number of cached datasets.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// HitRate is hits / (hits + misses), or 0 before any load.
func (c *Cache) HitRate() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hits+c.misses > 0 {
		return float64(c.hits) / float64(c.hits+c.misses)
	}
	return 0.0
}
