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
	"context"

	gwerrors "github.com/lanonasis/mcp-gateway/internal/errors"
)

// Annotations communicate a tool's intent to callers, independent of its
// name or description.
type Annotations struct {
	ReadOnly    bool
	Destructive bool
	Idempotent  bool
	OpenWorld   bool
}

// Handler executes a validated tool call. correlationID is already bound
// to ctx by the transport before dispatch; handlers that need it directly may pull it
// from internal/correlation.
type Handler func(ctx context.Context, args map[string]any) (any, *gwerrors.Error)

// Descriptor is one entry in the tool catalog, immutable once registered.
type Descriptor struct {
	Name        string
	Title       string
	Description string
	Schema      Schema
	Annotations Annotations
	Handler     Handler
}

// Prompt is a named, parameterized prompt template served over MCP.
type Prompt struct {
	Name        string
	Description string
	Render      func(args map[string]any) (string, *gwerrors.Error)
}

// Resource is a static or computed document served over MCP.
type Resource struct {
	URI         string
	Name        string
	Description string
	MimeType    string
	Load        func(ctx context.Context) (string, *gwerrors.Error)
}
