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

package health

import (
	"net/http"
	"time"

	"github.com/lanonasis/mcp-gateway/internal/correlation"
	"github.com/lanonasis/mcp-gateway/internal/httputil"
)

const gatewayVersion = "1.0.0"

// LivenessHandler answers /health: the process is alive, full stop. It
// never probes an upstream, so it is always fast and always "healthy".
func (c *Checker) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, r, http.StatusOK, map[string]any{
			"status":    "healthy",
			"server":    "enterprise-mcp-gateway",
			"version":   gatewayVersion,
			"requestId": correlation.FromContext(r.Context()).String(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// FullHandler answers /health/full: the dependency-aware composite
// rollup. 200 for healthy/degraded, 503 for unhealthy.
func (c *Checker) FullHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := c.Probe(r.Context())
		status := http.StatusOK
		if report.Status == StatusUnhealthy {
			status = http.StatusServiceUnavailable
		}
		httputil.WriteJSON(w, r, status, report)
	}
}
