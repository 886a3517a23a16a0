package loader

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pv-clipping/internal/model"
)

func TestSeriesCache_ContentAddressed(t *testing.T) {
	cache := NewSeriesCache()
	series := model.TimeSeries{{Timestamp: time.Now(), Value: 1}}

	content := []byte("24.06.2024 12:00,1.0\n")
	key := Fingerprint(content)
	cache.Set(key, series)

	// Same bytes, different filename: still a hit.
	got, ok := cache.Get(Fingerprint([]byte("24.06.2024 12:00,1.0\n")))
	require.True(t, ok)
	assert.Equal(t, series, got)

	// Different bytes: miss.
	_, ok = cache.Get(Fingerprint([]byte("24.06.2024 12:00,2.0\n")))
	assert.False(t, ok)
}

func TestSeriesCache_Clear(t *testing.T) {
	cache := NewSeriesCache()
	cache.Set(Fingerprint([]byte("a")), model.TimeSeries{{Value: 1}})
	require.Equal(t, 1, cache.Len())

	cache.Clear()
	assert.Equal(t, 0, cache.Len())
	_, ok := cache.Get(Fingerprint([]byte("a")))
	assert.False(t, ok)
}

func TestSeriesCache_NilSafe(t *testing.T) {
	var cache *SeriesCache
	cache.Set("k", nil)
	_, ok := cache.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
	cache.Clear()
}
