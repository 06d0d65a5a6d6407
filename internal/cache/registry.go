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

import "time"

// MemoryListPattern is the key prefix pattern every cached memory-list
// entry uses; writes invalidate it so a create/update/delete can never
// serve a stale list.
const MemoryListPattern = `^memory-list:`

// Registry holds the two preconfigured caches spec §4.5 requires.
type Registry struct {
	MemoryList *Cache
	Stats      *Cache
}

// NewRegistry builds the registry with its two fixed-size, fixed-TTL caches.
func NewRegistry() *Registry {
	return &Registry{
		MemoryList: New(Config{MaxSize: 100, TTL: 30 * time.Second}),
		Stats:      New(Config{MaxSize: 20, TTL: 60 * time.Second}),
	}
}

// InvalidateOnWrite purges cached list results after any create, update,
// or delete of a memory, returning the number of entries it removed.
func (r *Registry) InvalidateOnWrite() int {
	return r.MemoryList.InvalidatePattern(MemoryListPattern)
}

// Stop halts both caches' sweep goroutines.
func (r *Registry) Stop() {
	r.MemoryList.Stop()
	r.Stats.Stop()
}
