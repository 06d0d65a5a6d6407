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

package upstream

import (
	"context"

	gwerrors "github.com/lanonasis/mcp-gateway/internal/errors"
)

// SystemHealth is the upstream API's own health report.
type SystemHealth struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// Health probes the primary API's health endpoint.
func (c *Clients) Health(ctx context.Context) (*SystemHealth, *gwerrors.Error) {
	var out SystemHealth
	if err := c.API.doJSON(ctx, "get_health_status", "GET", "/health", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AuthStatus reports whether the configured credential is currently valid.
type AuthStatus struct {
	Authenticated bool   `json:"authenticated"`
	ProjectID     string `json:"projectId,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

// AuthStatus checks the currently configured API key against the upstream.
func (c *Clients) AuthStatus(ctx context.Context) (*AuthStatus, *gwerrors.Error) {
	var out AuthStatus
	if err := c.API.doJSON(ctx, "get_auth_status", "GET", "/auth/status", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
