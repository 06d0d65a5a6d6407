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

package gateway

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/lanonasis/mcp-gateway/internal/audit"
	"github.com/lanonasis/mcp-gateway/internal/correlation"
	"github.com/lanonasis/mcp-gateway/internal/httputil"
)

// recordAudit appends an admin-action entry best-effort: a failure here
// is logged at warn and never changes the admin endpoint's own response.
func (g *Gateway) recordAudit(r *http.Request, action, target, outcome string) {
	if g.audit == nil {
		return
	}
	entry := audit.Entry{
		Timestamp:     time.Now(),
		CorrelationID: correlation.FromContext(r.Context()).String(),
		Action:        action,
		Target:        target,
		Outcome:       outcome,
	}
	if err := g.audit.Append(r.Context(), entry); err != nil {
		g.logger.Warn("audit append failed", "action", action, "error", err.Error())
	}
}

type cacheClearRequest struct {
	Cache string `json:"cache"`
}

// handleCacheClear implements POST /admin/cache/clear. An empty or
// "all" cache field clears both registered caches; a specific name
// clears only that one.
func (g *Gateway) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.WriteError(w, r, http.StatusMethodNotAllowed, "INVALID_INPUT", "method not allowed")
		return
	}

	var req cacheClearRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.WriteError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
			return
		}
	}

	cleared := make([]string, 0, 2)
	switch req.Cache {
	case "", "all":
		g.caches.MemoryList.Clear()
		g.caches.Stats.Clear()
		cleared = append(cleared, "memoryList", "stats")
	case "memoryList":
		g.caches.MemoryList.Clear()
		cleared = append(cleared, "memoryList")
	case "stats":
		g.caches.Stats.Clear()
		cleared = append(cleared, "stats")
	default:
		httputil.WriteError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "unknown cache: "+req.Cache)
		return
	}

	target := req.Cache
	if target == "" {
		target = "all"
	}
	g.recordAudit(r, audit.ActionCacheClear, target, "success")

	httputil.WriteJSON(w, r, http.StatusOK, map[string]any{
		"success": true,
		"cleared": cleared,
	})
}

// handleBreakerReset implements POST /admin/circuit-breaker/reset,
// forcing every upstream's breaker back to CLOSED regardless of its
// current state — an operator escape hatch for a breaker stuck open on
// a since-recovered upstream.
func (g *Gateway) handleBreakerReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.WriteError(w, r, http.StatusMethodNotAllowed, "INVALID_INPUT", "method not allowed")
		return
	}

	g.breakers.ResetAll()
	g.recordAudit(r, audit.ActionBreakerReset, "all", "success")

	httputil.WriteJSON(w, r, http.StatusOK, map[string]any{
		"success":  true,
		"statuses": g.breakers.Statuses(),
	})
}
