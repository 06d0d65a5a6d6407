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

// Package tool maintains the MCP tool catalog: descriptors, argument
// schemas, behavior annotations, and the dispatcher that routes a decoded
// call through rate limiting, lookup, schema validation, and a handler.
package tool

import (
	"fmt"

	gwerrors "github.com/lanonasis/mcp-gateway/internal/errors"
)

// FieldType enumerates the argument types a Schema field may declare.
type FieldType string

const (
	TypeString FieldType = "string"
	TypeInt    FieldType = "integer"
	TypeBool   FieldType = "boolean"
	TypeEnum   FieldType = "enum"
	TypeArray  FieldType = "array"
	TypeObject FieldType = "object"
)

// Well-known enumerations the catalog's fields draw from.
var (
	MemoryTypes  = []string{"context", "project", "knowledge", "reference", "personal", "workflow"}
	SortFields   = []string{"created_at", "updated_at", "title"}
	SortOrders   = []string{"asc", "desc"}
	AccessLevels = []string{"public", "authenticated", "team", "admin", "enterprise"}
	DocSections  = []string{"all", "api", "guides", "sdks"}
	RiskLevels   = []string{"low", "medium", "high", "critical"}
)

// Field describes one named argument.
type Field struct {
	Name        string
	Type        FieldType
	Required    bool
	Description string
	Enum        []string // valid when Type == TypeEnum
	Min, Max    *int     // valid when Type == TypeInt or TypeArray (item count)
	Items       *Field   // valid when Type == TypeArray
}

// Schema is a tool's argument contract. Strict schemas reject unknown
// top-level fields.
type Schema struct {
	Fields []Field
	Strict bool
}

// Validate checks args against the schema, returning one FieldError per
// violation (nil if the arguments are well formed).
func (s Schema) Validate(args map[string]any) []gwerrors.FieldError {
	var errs []gwerrors.FieldError

	known := make(map[string]Field, len(s.Fields))
	for _, f := range s.Fields {
		known[f.Name] = f
		v, present := args[f.Name]
		if !present {
			if f.Required {
				errs = append(errs, gwerrors.FieldError{Field: f.Name, Message: "required field missing"})
			}
			continue
		}
		if msg := validateField(f, v); msg != "" {
			errs = append(errs, gwerrors.FieldError{Field: f.Name, Message: msg})
		}
	}

	if s.Strict {
		for name := range args {
			if _, ok := known[name]; !ok {
				errs = append(errs, gwerrors.FieldError{Field: name, Message: "unknown field"})
			}
		}
	}

	return errs
}

func validateField(f Field, v any) string {
	switch f.Type {
	case TypeString:
		if _, ok := v.(string); !ok {
			return "expected string"
		}
	case TypeInt:
		n, ok := asInt(v)
		if !ok {
			return "expected integer"
		}
		if f.Min != nil && n < *f.Min {
			return fmt.Sprintf("must be >= %d", *f.Min)
		}
		if f.Max != nil && n > *f.Max {
			return fmt.Sprintf("must be <= %d", *f.Max)
		}
	case TypeBool:
		if _, ok := v.(bool); !ok {
			return "expected boolean"
		}
	case TypeEnum:
		s, ok := v.(string)
		if !ok {
			return "expected string"
		}
		if !contains(f.Enum, s) {
			return fmt.Sprintf("must be one of %v", f.Enum)
		}
	case TypeArray:
		items, ok := v.([]any)
		if !ok {
			return "expected array"
		}
		if f.Min != nil && len(items) < *f.Min {
			return fmt.Sprintf("must have at least %d items", *f.Min)
		}
		if f.Max != nil && len(items) > *f.Max {
			return fmt.Sprintf("must have at most %d items", *f.Max)
		}
		if f.Items != nil {
			for i, item := range items {
				if msg := validateField(*f.Items, item); msg != "" {
					return fmt.Sprintf("item %d: %s", i, msg)
				}
			}
		}
	case TypeObject:
		if _, ok := v.(map[string]any); !ok {
			return "expected object"
		}
	}
	return ""
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
