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
	"encoding/json"

	gwerrors "github.com/lanonasis/mcp-gateway/internal/errors"
	"github.com/lanonasis/mcp-gateway/internal/sanitize"
)

// Dispatcher routes a decoded MCP call through rate limiting, lookup,
// schema validation, sanitization, and the resolved handler.
type Dispatcher struct {
	registry *Registry
	limiter  *RateLimiter
}

// NewDispatcher builds a Dispatcher bound to registry and limiter.
func NewDispatcher(registry *Registry, limiter *RateLimiter) *Dispatcher {
	return &Dispatcher{registry: registry, limiter: limiter}
}

// Dispatch runs one tool call through rate limiting, lookup, schema
// validation, sanitization, the handler and serialization, and returns the handler's result serialized as a single JSON text payload,
// or a normalized error. ctx should already carry the request's
// correlation id (see internal/correlation.WithContext).
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) (string, *gwerrors.Error) {
	if d.limiter != nil && !d.limiter.Allow() {
		return "", gwerrors.New(gwerrors.KindRateLimited, "tool call rate limit exceeded")
	}

	desc, ok := d.registry.Tool(name)
	if !ok {
		return "", gwerrors.New(gwerrors.KindValidation, "unknown tool: "+name)
	}

	if errs := desc.Schema.Validate(args); len(errs) > 0 {
		e := gwerrors.Validation("invalid arguments for "+name, errs...)
		return "", e
	}

	sanitized, sanErr := sanitize.Arguments(args)
	if sanErr != nil {
		return "", sanErr
	}

	// The correlation id is already bound to ctx by the transport; handlers
	// that need it pull it via correlation.FromContext themselves.
	result, err := desc.Handler(ctx, sanitized)
	if err != nil {
		return "", err
	}

	payload, jsonErr := json.Marshal(result)
	if jsonErr != nil {
		return "", gwerrors.Wrap(gwerrors.KindInternal, "failed to serialize tool result", jsonErr)
	}
	return string(payload), nil
}
