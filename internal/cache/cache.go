// Copyright 2026 The Enterprise MCP Gateway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cache provides an in-process TTL cache with bounded size and
// oldest-entry eviction, used to shield the upstream API from repeated
// list/stats calls within a short window.
package cache

import (
	"regexp"
	"sync"
	"time"
)

// Config configures a Cache instance.
type Config struct {
	// MaxSize caps the number of entries; the oldest entry (by creation
	// time, not last access) is evicted to make room for a new one.
	MaxSize int

	// TTL is how long an entry stays valid after it was set.
	TTL time.Duration

	// SweepInterval is how often expired entries are proactively purged.
	// Default: 60s.
	SweepInterval time.Duration
}

type entry struct {
	value     any
	createdAt time.Time
}

// Cache is a bounded, TTL-expiring key/value store safe for concurrent use.
type Cache struct {
	cfg     Config
	mu      sync.Mutex
	entries map[string]entry

	hits, misses, evictions int64

	stopSweep chan struct{}
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Size    int `json:"size"`
	MaxSize int `json:"maxSize"`

	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	// HitRate is Hits / (Hits + Misses) as a percentage, 0 when there have
	// been no lookups yet.
	HitRate float64 `json:"hitRate"`

	Evictions int64 `json:"evictions"`

	// OldestCreationTime and NewestCreationTime are the creation
	// timestamps of the longest- and most-recently-held entries, the
	// zero time when the cache is empty.
	OldestCreationTime time.Time `json:"oldestCreationTime"`
	NewestCreationTime time.Time `json:"newestCreationTime"`
}

// New builds a Cache and starts its background sweep goroutine. Call Stop
// to release the goroutine.
func New(cfg Config) *Cache {
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = 60 * time.Second
	}
	c := &Cache{
		cfg:       cfg,
		entries:   make(map[string]entry),
		stopSweep: make(chan struct{}),
	}
	go c.sweepLoop()
	return c
}

// Stop halts the background sweep goroutine.
func (c *Cache) Stop() {
	close(c.stopSweep)
}

// Get returns the cached value for key and whether it was present and
// unexpired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || c.expired(e) {
		c.misses++
		if ok {
			delete(c.entries, key)
		}
		return nil, false
	}
	c.hits++
	return e.value, true
}

// Set stores value under key, evicting the oldest entry first if the
// cache is at MaxSize and key is new.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.cfg.MaxSize > 0 && len(c.entries) >= c.cfg.MaxSize {
		c.evictOldestLocked()
	}
	c.entries[key] = entry{value: value, createdAt: time.Now()}
}

// GetOrFetch returns the cached value for key, or calls fetch, caches its
// result, and returns that, propagating any fetch error uncached.
func (c *Cache) GetOrFetch(key string, fetch func() (any, error)) (any, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := fetch()
	if err != nil {
		return nil, err
	}
	c.Set(key, v)
	return v, nil
}

// Delete removes a single key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear empties the cache entirely.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// InvalidatePattern deletes every key matching the given regular
// expression (used to invalidate e.g. "^memory-list:" after a write) and
// returns the number of keys removed.
func (c *Cache) InvalidatePattern(pattern string) int {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for k := range c.entries {
		if re.MatchString(k) {
			delete(c.entries, k)
			count++
		}
	}
	return count
}

// Stats returns a snapshot of cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Size:      len(c.entries),
		MaxSize:   c.cfg.MaxSize,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRate = float64(s.Hits) / float64(total) * 100
	}

	first := true
	for _, e := range c.entries {
		if first || e.createdAt.Before(s.OldestCreationTime) {
			s.OldestCreationTime = e.createdAt
		}
		if first || e.createdAt.After(s.NewestCreationTime) {
			s.NewestCreationTime = e.createdAt
		}
		first = false
	}
	return s
}

func (c *Cache) expired(e entry) bool {
	return c.cfg.TTL > 0 && time.Since(e.createdAt) > c.cfg.TTL
}

// evictOldestLocked removes the entry with the earliest creation time.
// Caller must hold c.mu.
func (c *Cache) evictOldestLocked() {
	var oldestKey string
	var oldestTime time.Time
	first := true
	for k, e := range c.entries {
		if first || e.createdAt.Before(oldestTime) {
			oldestKey = k
			oldestTime = e.createdAt
			first = false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
		c.evictions++
	}
}

func (c *Cache) sweepLoop() {
	ticker := time.NewTicker(c.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stopSweep:
			return
		}
	}
}

func (c *Cache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, k)
		}
	}
}
