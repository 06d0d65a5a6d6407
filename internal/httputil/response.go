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

// Package httputil holds the small JSON response helpers every HTTP
// handler in this codebase shares, so the correlation id and content type
// are never set inconsistently across endpoints.
package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/lanonasis/mcp-gateway/internal/correlation"
)

// WriteJSON writes a JSON response with status, echoing the request's
// correlation id from ctx. If encoding fails after headers are written,
// the error is swallowed — the client already has a status code.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	correlation.InjectResponse(w, correlation.FromContext(r.Context()))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes a normalized {success:false, error:{code, message,
// requestId}} body, per spec's user-visible failure shape.
func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	WriteJSON(w, r, status, map[string]any{
		"success": false,
		"error": map[string]any{
			"code":      code,
			"message":   message,
			"requestId": correlation.FromContext(r.Context()).String(),
		},
	})
}
