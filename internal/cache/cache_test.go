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

package cache

import (
	"errors"
	"testing"
	"time"
)

func newTestCache(cfg Config) *Cache {
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = time.Hour
	}
	return New(cfg)
}

func TestCache_SetGet(t *testing.T) {
	c := newTestCache(Config{MaxSize: 10, TTL: time.Minute})
	defer c.Stop()

	c.Set("a", 1)
	v, ok := c.Get("a")
	if !ok || v.(int) != 1 {
		t.Fatalf("expected cached value 1, got %v ok=%v", v, ok)
	}
}

func TestCache_ExpiresAfterTTL(t *testing.T) {
	c := newTestCache(Config{MaxSize: 10, TTL: 10 * time.Millisecond})
	defer c.Stop()

	c.Set("a", 1)
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected entry to have expired")
	}
}

func TestCache_EvictsOldestWhenFull(t *testing.T) {
	c := newTestCache(Config{MaxSize: 2, TTL: time.Minute})
	defer c.Stop()

	c.Set("a", 1)
	time.Sleep(2 * time.Millisecond)
	c.Set("b", 2)
	time.Sleep(2 * time.Millisecond)
	c.Set("c", 3) // should evict "a", the oldest

	if _, ok := c.Get("a"); ok {
		t.Error("expected oldest entry 'a' to be evicted")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("expected 'b' to survive")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("expected 'c' to survive")
	}
}

func TestCache_GetOrFetch(t *testing.T) {
	c := newTestCache(Config{MaxSize: 10, TTL: time.Minute})
	defer c.Stop()

	calls := 0
	fetch := func() (any, error) {
		calls++
		return 42, nil
	}

	v1, err := c.GetOrFetch("k", fetch)
	if err != nil || v1.(int) != 42 {
		t.Fatalf("unexpected first fetch: %v %v", v1, err)
	}
	v2, err := c.GetOrFetch("k", fetch)
	if err != nil || v2.(int) != 42 {
		t.Fatalf("unexpected second fetch: %v %v", v2, err)
	}
	if calls != 1 {
		t.Errorf("expected fetch to run once, ran %d times", calls)
	}
}

func TestCache_GetOrFetch_PropagatesError(t *testing.T) {
	c := newTestCache(Config{MaxSize: 10, TTL: time.Minute})
	defer c.Stop()

	wantErr := errors.New("boom")
	_, err := c.GetOrFetch("k", func() (any, error) { return nil, wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected error to propagate, got %v", err)
	}
	if _, ok := c.Get("k"); ok {
		t.Error("expected failed fetch to not be cached")
	}
}

func TestCache_InvalidatePattern(t *testing.T) {
	c := newTestCache(Config{MaxSize: 10, TTL: time.Minute})
	defer c.Stop()

	c.Set("memory-list:project=a", []int{1})
	c.Set("memory-list:project=b", []int{2})
	c.Set("stats:project=a", 3)

	n := c.InvalidatePattern(MemoryListPattern)
	if n != 2 {
		t.Errorf("expected 2 entries invalidated, got %d", n)
	}

	if _, ok := c.Get("memory-list:project=a"); ok {
		t.Error("expected memory-list entries invalidated")
	}
	if _, ok := c.Get("stats:project=a"); !ok {
		t.Error("expected unrelated entry to survive")
	}
}

func TestCache_Stats(t *testing.T) {
	c := newTestCache(Config{MaxSize: 5, TTL: time.Minute})
	defer c.Stop()

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	s := c.Stats()
	if s.Size != 2 {
		t.Errorf("expected size 2, got %d", s.Size)
	}
	if s.MaxSize != 5 {
		t.Errorf("expected maxSize 5, got %d", s.MaxSize)
	}
	if s.Hits != 2 || s.Misses != 1 {
		t.Errorf("expected hits=2 misses=1, got hits=%d misses=%d", s.Hits, s.Misses)
	}
	wantRate := float64(2) / float64(3) * 100
	if s.HitRate != wantRate {
		t.Errorf("expected hitRate %f, got %f", wantRate, s.HitRate)
	}
	if s.OldestCreationTime.IsZero() || s.NewestCreationTime.IsZero() {
		t.Error("expected non-zero creation timestamps for a non-empty cache")
	}
	if s.OldestCreationTime.After(s.NewestCreationTime) {
		t.Error("expected oldest creation time to not be after newest")
	}
}

func TestCache_Stats_EmptyCache(t *testing.T) {
	c := newTestCache(Config{MaxSize: 5, TTL: time.Minute})
	defer c.Stop()

	s := c.Stats()
	if s.HitRate != 0 {
		t.Errorf("expected hitRate 0 with no lookups, got %f", s.HitRate)
	}
	if !s.OldestCreationTime.IsZero() || !s.NewestCreationTime.IsZero() {
		t.Error("expected zero creation timestamps for an empty cache")
	}
}

func TestRegistry_InvalidateOnWrite(t *testing.T) {
	r := NewRegistry()
	defer r.Stop()

	r.MemoryList.Set("memory-list:all", []int{1, 2, 3})
	r.MemoryList.Set("memory-list:filtered", []int{1})

	n := r.InvalidateOnWrite()
	if n != 2 {
		t.Errorf("expected 2 entries invalidated, got %d", n)
	}

	if _, ok := r.MemoryList.Get("memory-list:all"); ok {
		t.Error("expected write invalidation to clear memory-list cache")
	}
}
