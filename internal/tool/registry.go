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

package tool

import (
	"fmt"
	"sort"
	"sync"
)

// Registry is the authoritative catalog of tools, prompts, and resources.
// It is populated once at startup and read concurrently thereafter; no
// handler may register or unregister a tool after Freeze.
type Registry struct {
	mu        sync.RWMutex
	tools     map[string]*Descriptor
	prompts   map[string]*Prompt
	resources map[string]*Resource
	frozen    bool
}

// NewRegistry returns an empty, mutable registry.
func NewRegistry() *Registry {
	return &Registry{
		tools:     make(map[string]*Descriptor),
		prompts:   make(map[string]*Prompt),
		resources: make(map[string]*Resource),
	}
}

// RegisterTool adds d to the catalog. Calling it after Freeze panics —
// that would indicate a startup-ordering bug, not a runtime condition.
func (r *Registry) RegisterTool(d Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		panic(fmt.Sprintf("tool registry frozen: cannot register %q after startup", d.Name))
	}
	if _, exists := r.tools[d.Name]; exists {
		panic(fmt.Sprintf("duplicate tool registration: %q", d.Name))
	}
	cp := d
	r.tools[d.Name] = &cp
}

// RegisterPrompt adds p to the catalog.
func (r *Registry) RegisterPrompt(p Prompt) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		panic(fmt.Sprintf("tool registry frozen: cannot register prompt %q after startup", p.Name))
	}
	cp := p
	r.prompts[p.Name] = &cp
}

// RegisterResource adds res to the catalog.
func (r *Registry) RegisterResource(res Resource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		panic(fmt.Sprintf("tool registry frozen: cannot register resource %q after startup", res.URI))
	}
	cp := res
	r.resources[res.URI] = &cp
}

// Freeze marks the registry read-only; the orchestrator calls this once
// registration completes at startup.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Tool looks up a tool by name.
func (r *Registry) Tool(name string) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.tools[name]
	return d, ok
}

// Prompt looks up a prompt by name.
func (r *Registry) Prompt(name string) (*Prompt, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.prompts[name]
	return p, ok
}

// Resource looks up a resource by URI.
func (r *Registry) Resource(uri string) (*Resource, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.resources[uri]
	return res, ok
}

// Tools returns all registered tool descriptors, sorted by name.
func (r *Registry) Tools() []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Descriptor, 0, len(r.tools))
	for _, d := range r.tools {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Prompts returns all registered prompts, sorted by name.
func (r *Registry) Prompts() []*Prompt {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Prompt, 0, len(r.prompts))
	for _, p := range r.prompts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Resources returns all registered resources, sorted by URI.
func (r *Registry) Resources() []*Resource {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Resource, 0, len(r.resources))
	for _, res := range r.resources {
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].URI < out[j].URI })
	return out
}

// Counts reports the catalog size, used by the discovery capability cards.
func (r *Registry) Counts() (tools, prompts, resources int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools), len(r.prompts), len(r.resources)
}
