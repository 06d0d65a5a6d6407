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

package metrics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/lanonasis/mcp-gateway/internal/breaker"
	"github.com/lanonasis/mcp-gateway/internal/cache"
)

func testMetrics(t *testing.T) *Metrics {
	t.Helper()
	breakers := breaker.NewRegistry()
	caches := cache.NewRegistry()
	t.Cleanup(caches.Stop)
	return New("1.0.0", time.Now().Add(-time.Minute), breakers, caches)
}

func TestRecordRequest_IncrementsCounters(t *testing.T) {
	m := testMetrics(t)

	m.RecordRequest("list_memories", false, 10*time.Millisecond)
	m.RecordRequest("list_memories", true, 20*time.Millisecond)

	if got := testutil.ToFloat64(m.requestsTotal); got != 2 {
		t.Errorf("requestsTotal = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.toolRequestsTotal.WithLabelValues("list_memories")); got != 2 {
		t.Errorf("toolRequestsTotal = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.toolErrorsTotal.WithLabelValues("list_memories")); got != 1 {
		t.Errorf("toolErrorsTotal = %v, want 1", got)
	}
}

func TestHandler_ExposesExpectedSeries(t *testing.T) {
	m := testMetrics(t)
	m.RecordRequest("list_memories", false, 15*time.Millisecond)
	m.breakers.Get(breaker.UpstreamAPI).RecordFailure()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		"gateway_server_info",
		"gateway_requests_total",
		"gateway_tool_requests_total",
		"gateway_uptime_seconds",
		"gateway_memory_bytes",
		"gateway_circuit_breaker_state",
		"gateway_circuit_breaker_failures_total",
		"gateway_cache_size",
		"gateway_cache_max_size",
		"gateway_cache_hit_rate_percent",
		"gateway_request_duration_seconds",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("exposition missing series %q", want)
		}
	}
}

func TestJSONHandler_MirrorsMetrics(t *testing.T) {
	m := testMetrics(t)
	m.RecordRequest("list_memories", false, 5*time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/health/metrics", nil)
	w := httptest.NewRecorder()
	m.JSONHandler()(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := body["requestDuration"]; !ok {
		t.Error("missing requestDuration")
	}
	if _, ok := body["breakers"]; !ok {
		t.Error("missing breakers")
	}
	if w.Header().Get("X-Request-Id") == "" {
		t.Error("missing X-Request-Id header")
	}
}
