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
	"testing"

	gwerrors "github.com/lanonasis/mcp-gateway/internal/errors"
)

func testSnapshot() map[string]any {
	return map[string]any{
		"log": map[string]any{
			"level":  "info",
			"format": "json",
		},
		"server": map[string]any{
			"port": 8080,
		},
	}
}

func TestConfigView_GetResolvesPath(t *testing.T) {
	cv := NewConfigView(testSnapshot(), nil)
	v, err := cv.Get(".log.level")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != "info" {
		t.Errorf("expected info, got %v", v)
	}
}

func TestConfigView_SetRejectsPathOutsideAllowList(t *testing.T) {
	cv := NewConfigView(testSnapshot(), nil)
	err := cv.Set(".server.port", 9090)
	if err == nil || err.Kind != gwerrors.KindValidation {
		t.Fatalf("expected VALIDATION_ERROR for non-allow-listed path, got %v", err)
	}
}

func TestConfigView_SetAppliesAllowListedPathAndNotifies(t *testing.T) {
	var notifiedPath string
	var notifiedValue any
	cv := NewConfigView(testSnapshot(), func(path string, value any) {
		notifiedPath, notifiedValue = path, value
	})

	if err := cv.Set(".log.level", "debug"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, err := cv.Get(".log.level")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != "debug" {
		t.Errorf("expected debug after set, got %v", v)
	}
	if notifiedPath != ".log.level" || notifiedValue != "debug" {
		t.Errorf("expected onMutate called with new value, got %q=%v", notifiedPath, notifiedValue)
	}
}
