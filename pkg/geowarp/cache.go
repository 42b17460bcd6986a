package geowarp

import (
	"container/list"
	"fmt"
	"sync"
	"time"
)

// ChartCache keeps prepared chart overlays in memory with LRU eviction.
//
// Surface analyses update every six hours while satellite frames arrive
// every ten minutes, so dozens of frames share one cleaned chart. Caching
// the prepared overlay (trimmed, keyed, cropped, resampled) avoids redoing
// that work per frame. Fading never mutates the cached raster, so a cached
// overlay is safe to blend at any opacity.
//
// Memory accounting is approximate, based on pixel buffer sizes.
//
// Example:
//
//	cache := geowarp.NewChartCache(256 * 1024 * 1024) // 256MB
//	frame, err := cache.Get("opc-pacific/2018122406", func() (*geowarp.Frame, error) {
//	    return geowarp.PrepareChart(source, chartImage, region)
//	})
type ChartCache struct {
	maxMemory  int64
	usedMemory int64
	entries    map[string]*cacheEntry
	lru        *list.List // most recent at front
	mu         sync.RWMutex
}

type cacheEntry struct {
	key          string
	frame        *Frame
	memorySize   int64
	element      *list.Element
	lastAccessed time.Time
	accessCount  int
}

// NewChartCache creates a cache with the given memory limit in bytes.
// A limit of 0 means unlimited.
func NewChartCache(maxMemoryBytes int64) *ChartCache {
	return &ChartCache{
		maxMemory: maxMemoryBytes,
		entries:   make(map[string]*cacheEntry),
		lru:       list.New(),
	}
}

// Get returns the cached overlay for key, or calls loader to prepare it and
// caches the result. The loader runs only on a miss.
func (c *ChartCache) Get(key string, loader func() (*Frame, error)) (*Frame, error) {
	c.mu.RLock()
	if entry, ok := c.entries[key]; ok {
		c.mu.RUnlock()

		c.mu.Lock()
		entry.lastAccessed = time.Now()
		entry.accessCount++
		c.lru.MoveToFront(entry.element)
		c.mu.Unlock()

		return entry.frame, nil
	}
	c.mu.RUnlock()

	frame, err := loader()
	if err != nil {
		return nil, fmt.Errorf("prepare chart: %w", err)
	}

	c.Add(key, frame)
	return frame, nil
}

// Add inserts a prepared overlay, evicting least-recently-used entries as
// needed to stay under the memory limit.
func (c *ChartCache) Add(key string, frame *Frame) {
	size := frameMemorySize(frame)

	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.entries[key]; ok {
		c.usedMemory -= old.memorySize
		c.lru.Remove(old.element)
		delete(c.entries, key)
	}

	if c.maxMemory > 0 {
		for c.usedMemory+size > c.maxMemory && c.lru.Len() > 0 {
			c.evictOldest()
		}
	}

	entry := &cacheEntry{
		key:          key,
		frame:        frame,
		memorySize:   size,
		lastAccessed: time.Now(),
	}
	entry.element = c.lru.PushFront(entry)
	c.entries[key] = entry
	c.usedMemory += size
}

// evictOldest removes the least-recently-used entry. Caller holds the lock.
func (c *ChartCache) evictOldest() {
	back := c.lru.Back()
	if back == nil {
		return
	}
	entry := back.Value.(*cacheEntry)
	c.lru.Remove(back)
	delete(c.entries, entry.key)
	c.usedMemory -= entry.memorySize
}

// Clear drops all cached overlays.
func (c *ChartCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
	c.lru.Init()
	c.usedMemory = 0
}

// CacheStats reports cache usage.
type CacheStats struct {
	EntryCount int
	UsedMemory int64
	MaxMemory  int64
}

// Stats returns a snapshot of cache usage.
func (c *ChartCache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CacheStats{
		EntryCount: len(c.entries),
		UsedMemory: c.usedMemory,
		MaxMemory:  c.maxMemory,
	}
}

func frameMemorySize(f *Frame) int64 {
	if f == nil || f.Image == nil {
		return 64
	}
	return int64(len(f.Image.Pix)) + 64
}
