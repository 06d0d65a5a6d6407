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

package breaker

import (
	"sync"
	"time"
)

// Upstream names for the two preconfigured breakers required by spec §4.3.
const (
	UpstreamAPI           = "api"
	UpstreamEdgeFunctions = "edgeFunctions"
)

// Registry is a per-upstream-name breaker pool, keyed lazily. resetAll is
// the administrative primitive backing /admin/circuit-breaker/reset.
type Registry struct {
	mu       sync.Mutex
	breakers map[string]*Breaker
	defaults map[string]Config
}

// NewRegistry builds a registry preconfigured with the two required
// breakers; edgeFunctions gets a lower failure threshold and a longer
// reset timeout since that upstream may recover more slowly.
func NewRegistry() *Registry {
	r := &Registry{
		breakers: make(map[string]*Breaker),
		defaults: map[string]Config{
			UpstreamAPI: DefaultConfig(),
			UpstreamEdgeFunctions: {
				FailureThreshold: 3,
				ResetTimeout:     60 * time.Second,
				SuccessThreshold: 2,
			},
		},
	}
	return r
}

// Get returns the breaker for upstream, creating it lazily from the
// registry's configured default (or the generic default if the upstream
// has none registered).
func (r *Registry) Get(upstream string) *Breaker {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.breakers[upstream]; ok {
		return b
	}

	cfg, ok := r.defaults[upstream]
	if !ok {
		cfg = DefaultConfig()
	}
	b := New(cfg)
	r.breakers[upstream] = b
	return b
}

// ResetAll forces every known breaker back to CLOSED.
func (r *Registry) ResetAll() {
	r.mu.Lock()
	upstreams := make([]*Breaker, 0, len(r.breakers))
	for _, b := range r.breakers {
		upstreams = append(upstreams, b)
	}
	r.mu.Unlock()

	for _, b := range upstreams {
		b.Reset()
	}
}

// Statuses returns a snapshot of every known breaker, keyed by upstream
// name, for metrics exposition.
func (r *Registry) Statuses() map[string]Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]Status, len(r.breakers))
	for name, b := range r.breakers {
		out[name] = b.Status()
	}
	return out
}
