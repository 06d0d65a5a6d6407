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

// Package metrics is the gateway's Prometheus exposition: per-tool
// request/error counters, a rolling request-duration quantile summary,
// and a dynamic collector mirroring runtime, circuit-breaker, and cache
// state. Each Metrics owns a private prometheus.Registry rather than the
// package-level default, so a test (or an embedder running more than one
// gateway in-process) can build independent instances without colliding
// on global registration.
package metrics

import (
	"net/http"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lanonasis/mcp-gateway/internal/breaker"
	"github.com/lanonasis/mcp-gateway/internal/cache"
	"github.com/lanonasis/mcp-gateway/internal/health"
	"github.com/lanonasis/mcp-gateway/internal/httputil"
)

// Metrics owns every series the gateway exposes at /metrics and /health/metrics.
type Metrics struct {
	startedAt time.Time
	breakers  *breaker.Registry
	caches    *cache.Registry
	durations *durationRing

	registry          *prometheus.Registry
	requestsTotal     prometheus.Counter
	toolRequestsTotal *prometheus.CounterVec
	toolErrorsTotal   *prometheus.CounterVec
}

// New builds a Metrics bound to breakers and caches (read for the dynamic
// collector) and stamps the server-info gauge with version.
func New(version string, startedAt time.Time, breakers *breaker.Registry, caches *cache.Registry) *Metrics {
	reg := prometheus.NewRegistry()

	serverInfo := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "gateway_server_info",
		Help: "Static build info; always 1, labeled by version.",
	}, []string{"version"})
	serverInfo.WithLabelValues(version).Set(1)

	requestsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_requests_total",
		Help: "Total tool-call requests dispatched.",
	})
	toolRequestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_tool_requests_total",
		Help: "Total requests per tool.",
	}, []string{"tool"})
	toolErrorsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_tool_errors_total",
		Help: "Total failed requests per tool.",
	}, []string{"tool"})

	m := &Metrics{
		startedAt:         startedAt,
		breakers:          breakers,
		caches:            caches,
		durations:         &durationRing{},
		registry:          reg,
		requestsTotal:     requestsTotal,
		toolRequestsTotal: toolRequestsTotal,
		toolErrorsTotal:   toolErrorsTotal,
	}

	reg.MustRegister(serverInfo, requestsTotal, toolRequestsTotal, toolErrorsTotal, &runtimeCollector{m: m})
	return m
}

// RecordRequest records one tool-call outcome against the total, per-tool,
// and (on failure) per-tool-error counters, and feeds duration into the
// quantile ring buffer.
func (m *Metrics) RecordRequest(tool string, failed bool, duration time.Duration) {
	m.requestsTotal.Inc()
	m.toolRequestsTotal.WithLabelValues(tool).Inc()
	if failed {
		m.toolErrorsTotal.WithLabelValues(tool).Inc()
	}
	m.durations.observe(duration.Seconds())
}

// Handler serves GET /metrics: the standard Prometheus text exposition.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// JSONHandler serves GET /health/metrics: a JSON mirror of the same
// runtime/breaker/cache/duration data, for callers that would rather not
// parse the Prometheus text format.
func (m *Metrics) JSONHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		samples, count, sum := m.durations.snapshot()
		sort.Float64s(samples)
		avg := 0.0
		if count > 0 {
			avg = sum / float64(count)
		}

		httputil.WriteJSON(w, r, http.StatusOK, map[string]any{
			"uptimeSeconds": time.Since(m.startedAt).Seconds(),
			"memory":        health.Memory(),
			"breakers":      m.breakers.Statuses(),
			"cache": map[string]any{
				"memoryList": m.caches.MemoryList.Stats(),
				"stats":      m.caches.Stats.Stats(),
			},
			"requestDuration": map[string]float64{
				"p50": quantile(samples, 0.5),
				"p95": quantile(samples, 0.95),
				"p99": quantile(samples, 0.99),
				"avg": avg,
			},
		})
	}
}
