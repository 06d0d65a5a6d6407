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

import "testing"

func TestSchema_RequiredFieldMissing(t *testing.T) {
	s := Schema{Fields: []Field{{Name: "title", Type: TypeString, Required: true}}}
	errs := s.Validate(map[string]any{})
	if len(errs) != 1 || errs[0].Field != "title" {
		t.Fatalf("expected one error for missing title, got %v", errs)
	}
}

func TestSchema_EnumRejectsOutOfSetValue(t *testing.T) {
	s := Schema{Fields: []Field{{Name: "type", Type: TypeEnum, Enum: MemoryTypes}}}
	errs := s.Validate(map[string]any{"type": "nonsense"})
	if len(errs) != 1 {
		t.Fatalf("expected enum violation, got %v", errs)
	}
}

func TestSchema_StrictRejectsUnknownField(t *testing.T) {
	s := Schema{Strict: true, Fields: []Field{{Name: "id", Type: TypeString}}}
	errs := s.Validate(map[string]any{"id": "x", "extra": "y"})
	if len(errs) != 1 || errs[0].Field != "extra" {
		t.Fatalf("expected unknown-field violation, got %v", errs)
	}
}

func TestSchema_IntBounds(t *testing.T) {
	s := Schema{Fields: []Field{{Name: "limit", Type: TypeInt, Min: ptr(1), Max: ptr(10)}}}
	if errs := s.Validate(map[string]any{"limit": 0}); len(errs) != 1 {
		t.Errorf("expected min violation, got %v", errs)
	}
	if errs := s.Validate(map[string]any{"limit": 11}); len(errs) != 1 {
		t.Errorf("expected max violation, got %v", errs)
	}
	if errs := s.Validate(map[string]any{"limit": 5}); len(errs) != 0 {
		t.Errorf("expected no violation, got %v", errs)
	}
}

func TestSchema_ArrayItemValidation(t *testing.T) {
	s := Schema{Fields: []Field{{Name: "tags", Type: TypeArray, Items: &Field{Type: TypeString}}}}
	errs := s.Validate(map[string]any{"tags": []any{"a", 1}})
	if len(errs) != 1 {
		t.Fatalf("expected item-type violation, got %v", errs)
	}
}

func TestSchema_ValidArgsProduceNoErrors(t *testing.T) {
	s := Schema{Fields: []Field{
		{Name: "title", Type: TypeString, Required: true},
		{Name: "type", Type: TypeEnum, Enum: MemoryTypes, Required: true},
	}}
	errs := s.Validate(map[string]any{"title": "t", "type": "context"})
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}
