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
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lanonasis/mcp-gateway/internal/breaker"
	"github.com/lanonasis/mcp-gateway/internal/cache"
	"github.com/lanonasis/mcp-gateway/internal/health"
)

var (
	uptimeDesc  = prometheus.NewDesc("gateway_uptime_seconds", "Seconds since process start.", nil, nil)
	memoryDesc  = prometheus.NewDesc("gateway_memory_bytes", "Process memory usage by type.", []string{"type"}, nil)
	breakerDesc = prometheus.NewDesc("gateway_circuit_breaker_state", "Breaker state: CLOSED=0, HALF_OPEN=1, OPEN=2.", []string{"breaker"}, nil)
	failureDesc = prometheus.NewDesc("gateway_circuit_breaker_failures_total", "Total recorded failures per breaker.", []string{"breaker"}, nil)
	cacheSize    = prometheus.NewDesc("gateway_cache_size", "Current entry count per cache.", []string{"cache"}, nil)
	cacheMaxSize = prometheus.NewDesc("gateway_cache_max_size", "Configured entry capacity per cache.", []string{"cache"}, nil)
	cacheHits    = prometheus.NewDesc("gateway_cache_hits_total", "Total cache hits per cache.", []string{"cache"}, nil)
	cacheMisses  = prometheus.NewDesc("gateway_cache_misses_total", "Total cache misses per cache.", []string{"cache"}, nil)
	cacheHitRate = prometheus.NewDesc("gateway_cache_hit_rate_percent", "Hits as a percentage of total lookups per cache.", []string{"cache"}, nil)
	durationSum = prometheus.NewDesc("gateway_request_duration_seconds", "Tool-call duration quantiles over the last ~1000 samples, with all-time sum/count.", nil, nil)
)

// runtimeCollector exposes the dynamically labeled series that a fixed
// promauto declaration can't: process memory, per-breaker state and
// failure totals, per-cache size/hits/misses, process uptime, and the
// rolling request-duration summary. Describe reports no descriptors,
// which registers it as an "unchecked" collector — the documented
// client_golang pattern for metrics whose label values aren't known
// until collection time.
type runtimeCollector struct {
	m *Metrics
}

func (c *runtimeCollector) Describe(ch chan<- *prometheus.Desc) {}

func (c *runtimeCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(uptimeDesc, prometheus.CounterValue, time.Since(c.m.startedAt).Seconds())

	mem := health.Memory()
	ch <- prometheus.MustNewConstMetric(memoryDesc, prometheus.GaugeValue, float64(mem.RSS), "rss")
	ch <- prometheus.MustNewConstMetric(memoryDesc, prometheus.GaugeValue, float64(mem.HeapTotal), "heap_total")
	ch <- prometheus.MustNewConstMetric(memoryDesc, prometheus.GaugeValue, float64(mem.HeapUsed), "heap_used")
	ch <- prometheus.MustNewConstMetric(memoryDesc, prometheus.GaugeValue, float64(mem.ExternalKB), "external")

	for name, status := range c.m.breakers.Statuses() {
		ch <- prometheus.MustNewConstMetric(breakerDesc, prometheus.GaugeValue, float64(breakerStateValue(status.State)), name)
		ch <- prometheus.MustNewConstMetric(failureDesc, prometheus.CounterValue, float64(status.TotalFailures), name)
	}

	c.collectCache(ch, "memoryList", c.m.caches.MemoryList.Stats())
	c.collectCache(ch, "stats", c.m.caches.Stats.Stats())

	samples, count, sum := c.m.durations.snapshot()
	sort.Float64s(samples)
	quantiles := map[float64]float64{
		0.5:  quantile(samples, 0.5),
		0.95: quantile(samples, 0.95),
		0.99: quantile(samples, 0.99),
	}
	ch <- prometheus.MustNewConstSummary(durationSum, count, sum, quantiles)
}

func (c *runtimeCollector) collectCache(ch chan<- prometheus.Metric, name string, s cache.Stats) {
	ch <- prometheus.MustNewConstMetric(cacheSize, prometheus.GaugeValue, float64(s.Size), name)
	ch <- prometheus.MustNewConstMetric(cacheMaxSize, prometheus.GaugeValue, float64(s.MaxSize), name)
	ch <- prometheus.MustNewConstMetric(cacheHits, prometheus.CounterValue, float64(s.Hits), name)
	ch <- prometheus.MustNewConstMetric(cacheMisses, prometheus.CounterValue, float64(s.Misses), name)
	ch <- prometheus.MustNewConstMetric(cacheHitRate, prometheus.GaugeValue, s.HitRate, name)
}

func breakerStateValue(s breaker.State) int {
	switch s {
	case breaker.Closed:
		return 0
	case breaker.HalfOpen:
		return 1
	case breaker.Open:
		return 2
	default:
		return -1
	}
}
