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
	"encoding/json"
	"fmt"
	"sync"

	"github.com/itchyny/gojq"

	gwerrors "github.com/lanonasis/mcp-gateway/internal/errors"
)

// ConfigView exposes the live configuration record as a JSON-shaped tree
// that get_config/set_config address by jq path, plus the fixed allow-list
// of keys set_config may mutate.
type ConfigView struct {
	mu        sync.RWMutex
	snapshot  map[string]any
	onMutate  func(path string, value any)
	hotReload map[string]bool // allow-listed jq paths for set_config
}

// NewConfigView builds a ConfigView over an initial JSON projection of the
// config record. onMutate, if non-nil, is invoked after a successful
// set_config so the caller can apply the change (e.g. swap the logger's
// level).
func NewConfigView(initial map[string]any, onMutate func(path string, value any)) *ConfigView {
	return &ConfigView{
		snapshot: initial,
		onMutate: onMutate,
		hotReload: map[string]bool{
			".log.level":  true,
			".log.format": true,
		},
	}
}

// Get resolves a jq-style path (e.g. ".log.level") against the current
// snapshot.
func (c *ConfigView) Get(path string) (any, *gwerrors.Error) {
	c.mu.RLock()
	snapshot := c.snapshot
	c.mu.RUnlock()

	query, err := gojq.Parse(path)
	if err != nil {
		return nil, gwerrors.New(gwerrors.KindValidation, "invalid config path: "+err.Error())
	}

	iter := query.Run(snapshot)
	v, ok := iter.Next()
	if !ok {
		return nil, gwerrors.New(gwerrors.KindValidation, fmt.Sprintf("config path %q resolved to nothing", path))
	}
	if qerr, ok := v.(error); ok {
		return nil, gwerrors.New(gwerrors.KindValidation, "config path evaluation failed: "+qerr.Error())
	}
	return v, nil
}

// Set mutates a hot-reloadable key by jq path. Any path outside the fixed
// allow-list is rejected with VALIDATION_ERROR, never applied.
func (c *ConfigView) Set(path string, value any) *gwerrors.Error {
	if !c.hotReload[path] {
		return gwerrors.New(gwerrors.KindValidation, fmt.Sprintf("config path %q is not hot-reloadable", path))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Re-marshal through JSON so nested map mutation stays consistent with
	// the snapshot's original shape regardless of path depth.
	encoded, err := json.Marshal(c.snapshot)
	if err != nil {
		return gwerrors.Wrap(gwerrors.KindInternal, "failed to encode config snapshot", err)
	}
	var tree map[string]any
	if err := json.Unmarshal(encoded, &tree); err != nil {
		return gwerrors.Wrap(gwerrors.KindInternal, "failed to decode config snapshot", err)
	}

	if err := setAtPath(tree, path, value); err != nil {
		return gwerrors.New(gwerrors.KindValidation, err.Error())
	}
	c.snapshot = tree

	if c.onMutate != nil {
		c.onMutate(path, value)
	}
	return nil
}

// setAtPath applies a flat ".a.b" jq path to tree. Only the two
// allow-listed two-level paths are ever passed in, so this stays deliberately
// simple rather than a general jq-path mutator.
func setAtPath(tree map[string]any, path string, value any) error {
	segments := splitPath(path)
	if len(segments) == 0 {
		return fmt.Errorf("empty config path")
	}
	cur := tree
	for i, seg := range segments {
		if i == len(segments)-1 {
			cur[seg] = value
			return nil
		}
		next, ok := cur[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[seg] = next
		}
		cur = next
	}
	return nil
}

func splitPath(path string) []string {
	var segs []string
	cur := ""
	for _, r := range path {
		if r == '.' {
			if cur != "" {
				segs = append(segs, cur)
				cur = ""
			}
			continue
		}
		cur += string(r)
	}
	if cur != "" {
		segs = append(segs, cur)
	}
	return segs
}
