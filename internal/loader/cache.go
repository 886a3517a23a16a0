package loader

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"pv-clipping/internal/model"
)

// SeriesCache memoizes parsed series by file content, so re-uploading the
// same bytes (even under a new filename) skips the parse. The cache is owned
// by whoever constructs it; there is no process-global instance.
type SeriesCache struct {
	mu    sync.RWMutex
	store map[string]model.TimeSeries
}

func NewSeriesCache() *SeriesCache {
	return &SeriesCache{store: make(map[string]model.TimeSeries)}
}

// Fingerprint derives the cache key from the raw file bytes.
func Fingerprint(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// Get retrieves a previously parsed series for the given fingerprint.
func (c *SeriesCache) Get(key string) (model.TimeSeries, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.store[key]
	return s, ok
}

// Set stores a parsed series under its content fingerprint.
func (c *SeriesCache) Set(key string, series model.TimeSeries) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = series
}

// Clear drops all entries, e.g. when a new upload invalidates the session.
func (c *SeriesCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]model.TimeSeries)
}

// Len reports the number of cached series.
func (c *SeriesCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}
