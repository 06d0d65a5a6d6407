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

// Package mcpserver bridges the internal/tool catalog onto the MCP wire
// protocol across three transports: a local pipe (stdio), single-shot
// HTTP, and a long-lived streaming HTTP session.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lanonasis/mcp-gateway/internal/tool"
)

// toMCPInputSchema translates a catalog Schema into the JSON-Schema-shaped
// structure mcp-go's Tool.InputSchema expects.
func toMCPInputSchema(s tool.Schema) mcp.ToolInputSchema {
	props := make(map[string]interface{}, len(s.Fields))
	var required []string

	for _, f := range s.Fields {
		props[f.Name] = fieldToJSONSchema(f)
		if f.Required {
			required = append(required, f.Name)
		}
	}

	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

func fieldToJSONSchema(f tool.Field) map[string]interface{} {
	m := map[string]interface{}{"description": f.Description}

	switch f.Type {
	case tool.TypeString:
		m["type"] = "string"
	case tool.TypeInt:
		m["type"] = "integer"
		if f.Min != nil {
			m["minimum"] = *f.Min
		}
		if f.Max != nil {
			m["maximum"] = *f.Max
		}
	case tool.TypeBool:
		m["type"] = "boolean"
	case tool.TypeEnum:
		m["type"] = "string"
		enum := make([]interface{}, len(f.Enum))
		for i, v := range f.Enum {
			enum[i] = v
		}
		m["enum"] = enum
	case tool.TypeArray:
		m["type"] = "array"
		if f.Items != nil {
			m["items"] = fieldToJSONSchema(*f.Items)
		}
		if f.Min != nil {
			m["minItems"] = *f.Min
		}
		if f.Max != nil {
			m["maxItems"] = *f.Max
		}
	case tool.TypeObject:
		m["type"] = "object"
	}
	return m
}
