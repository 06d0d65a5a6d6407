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
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lanonasis/mcp-gateway/internal/breaker"
	"github.com/lanonasis/mcp-gateway/internal/httpclient"
	"github.com/lanonasis/mcp-gateway/internal/upstream"
)

func testChecker(t *testing.T, apiHandler, fnHandler http.HandlerFunc) (*Checker, func()) {
	t.Helper()

	cfg := httpclient.Config{
		Timeout:        2 * time.Second,
		MaxRetries:     0,
		RetryBaseDelay: 5 * time.Millisecond,
		MaxBackoff:     20 * time.Millisecond,
		UserAgent:      "mcp-gateway-test/1.0",
	}
	hc, err := httpclient.New(cfg, breaker.NewRegistry(), nil, nil)
	if err != nil {
		t.Fatalf("httpclient.New: %v", err)
	}

	var closers []func()
	clients := &upstream.Clients{}

	apiSrv := httptest.NewServer(apiHandler)
	closers = append(closers, apiSrv.Close)
	clients.API = upstream.NewService(hc, breaker.UpstreamAPI, apiSrv.URL, "test-key")

	fnSrv := httptest.NewServer(fnHandler)
	closers = append(closers, fnSrv.Close)
	clients.Functions = upstream.NewService(hc, breaker.UpstreamEdgeFunctions, fnSrv.URL, "test-key")

	return NewChecker(clients, time.Now().Add(-5 * time.Minute)), func() {
		for _, c := range closers {
			c()
		}
	}
}

func ok(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func unavailable(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusServiceUnavailable)
	w.Write([]byte(`{"error":"down"}`))
}

func badRequest(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusBadRequest)
	w.Write([]byte(`{"error":"bad"}`))
}

func TestProbe_AllHealthy(t *testing.T) {
	c, done := testChecker(t, ok, ok)
	defer done()

	report := c.Probe(t.Context())
	if report.Status != StatusHealthy {
		t.Fatalf("status = %v, want healthy", report.Status)
	}
	for _, dep := range report.Dependencies {
		if dep.Status != StatusHealthy {
			t.Errorf("dependency %s = %v, want healthy", dep.Name, dep.Status)
		}
	}
	if report.Runtime.PID == 0 {
		t.Error("runtime.PID unset")
	}
	if report.Runtime.GoVersion == "" {
		t.Error("runtime.GoVersion unset")
	}
}

func TestProbe_OneUnavailableMeansOverallUnhealthy(t *testing.T) {
	c, done := testChecker(t, ok, unavailable)
	defer done()

	report := c.Probe(t.Context())
	if report.Status != StatusUnhealthy {
		t.Fatalf("status = %v, want unhealthy", report.Status)
	}

	var api, fn DependencyReport
	for _, dep := range report.Dependencies {
		switch dep.Name {
		case "api":
			api = dep
		case "edgeFunctions":
			fn = dep
		}
	}
	if api.Status != StatusHealthy {
		t.Errorf("api = %v, want healthy", api.Status)
	}
	if fn.Status != StatusUnhealthy {
		t.Errorf("edgeFunctions = %v, want unhealthy", fn.Status)
	}
	if fn.Error == "" {
		t.Error("edgeFunctions report missing error detail")
	}
}

func TestProbe_NonFatalErrorMeansDegraded(t *testing.T) {
	c, done := testChecker(t, ok, badRequest)
	defer done()

	report := c.Probe(t.Context())
	if report.Status != StatusDegraded {
		t.Fatalf("status = %v, want degraded", report.Status)
	}
}

func TestRollup(t *testing.T) {
	cases := []struct {
		name   string
		in     []DependencyReport
		expect Status
	}{
		{"all healthy", []DependencyReport{{Status: StatusHealthy}, {Status: StatusHealthy}}, StatusHealthy},
		{"one unhealthy", []DependencyReport{{Status: StatusHealthy}, {Status: StatusUnhealthy}}, StatusUnhealthy},
		{"one degraded", []DependencyReport{{Status: StatusHealthy}, {Status: StatusDegraded}}, StatusDegraded},
		{"unhealthy beats degraded", []DependencyReport{{Status: StatusDegraded}, {Status: StatusUnhealthy}}, StatusUnhealthy},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := rollup(tc.in); got != tc.expect {
				t.Errorf("rollup() = %v, want %v", got, tc.expect)
			}
		})
	}
}

func TestMemory(t *testing.T) {
	m := Memory()
	if m.HeapTotal == 0 {
		t.Error("HeapTotal unset")
	}
}
