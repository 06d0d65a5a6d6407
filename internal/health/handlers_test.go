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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLivenessHandler_AlwaysHealthy(t *testing.T) {
	c, done := testChecker(t, unavailable, unavailable)
	defer done()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	c.LivenessHandler()(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status field = %v, want healthy", body["status"])
	}
	if w.Header().Get("X-Request-Id") == "" {
		t.Error("missing X-Request-Id header")
	}
}

func TestFullHandler_HealthyIs200(t *testing.T) {
	c, done := testChecker(t, ok, ok)
	defer done()

	req := httptest.NewRequest(http.MethodGet, "/health/full", nil)
	w := httptest.NewRecorder()
	c.FullHandler()(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestFullHandler_UnhealthyIs503(t *testing.T) {
	c, done := testChecker(t, unavailable, unavailable)
	defer done()

	req := httptest.NewRequest(http.MethodGet, "/health/full", nil)
	w := httptest.NewRecorder()
	c.FullHandler()(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}

func TestFullHandler_DegradedIs200(t *testing.T) {
	c, done := testChecker(t, ok, badRequest)
	defer done()

	req := httptest.NewRequest(http.MethodGet, "/health/full", nil)
	w := httptest.NewRecorder()
	c.FullHandler()(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
