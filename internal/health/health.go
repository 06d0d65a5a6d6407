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

// Package health probes the gateway's upstream dependencies and reports a
// composite liveness/readiness rollup.
package health

import (
	"context"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	gwerrors "github.com/lanonasis/mcp-gateway/internal/errors"
	"github.com/lanonasis/mcp-gateway/internal/upstream"
)

func processID() int { return os.Getpid() }

// Status is one dependency's or the overall system's health rollup.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// DependencyReport is one upstream probe's outcome.
type DependencyReport struct {
	Name      string `json:"name"`
	Status    Status `json:"status"`
	LatencyMS int64  `json:"latencyMs"`
	Error     string `json:"error,omitempty"`
}

// Report is the composite health payload served by /health/full.
type Report struct {
	Status       Status             `json:"status"`
	Dependencies []DependencyReport `json:"dependencies"`
	Runtime      RuntimeInfo        `json:"runtime"`
}

// RuntimeInfo carries process-level facts surfaced alongside health.
type RuntimeInfo struct {
	UptimeSeconds int64  `json:"uptimeSeconds"`
	PID           int    `json:"pid"`
	GoVersion     string `json:"goVersion"`
	NumGoroutine  int    `json:"numGoroutine"`
}

// MemoryInfo mirrors runtime.MemStats fields spec §4.10 names explicitly.
type MemoryInfo struct {
	RSS        uint64 `json:"rss"`
	HeapTotal  uint64 `json:"heapTotal"`
	HeapUsed   uint64 `json:"heapUsed"`
	ExternalKB uint64 `json:"external"`
}

// Checker probes both upstreams concurrently and composes the rollup.
type Checker struct {
	clients   *upstream.Clients
	startedAt time.Time
}

// NewChecker builds a Checker. startedAt anchors the uptime counter.
func NewChecker(clients *upstream.Clients, startedAt time.Time) *Checker {
	return &Checker{clients: clients, startedAt: startedAt}
}

// Probe runs the primary-API and edge-functions health checks concurrently
// so the overall latency is bounded by the slower of the two, not their
// sum, then composes the rollup: all healthy -> healthy; any unhealthy ->
// unhealthy; else degraded.
func (c *Checker) Probe(ctx context.Context) Report {
	reports := make([]DependencyReport, 2)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		reports[0] = probeOne(gctx, "api", func(ctx context.Context) *gwerrors.Error {
			_, err := c.clients.Health(ctx)
			return err
		})
		return nil
	})
	g.Go(func() error {
		reports[1] = probeOne(gctx, "edgeFunctions", func(ctx context.Context) *gwerrors.Error {
			_, err := c.clients.IntelligenceHealthCheck(ctx)
			return err
		})
		return nil
	})
	_ = g.Wait() // probeOne never returns an error; it records the outcome instead

	return Report{
		Status:       rollup(reports),
		Dependencies: reports,
		Runtime:      c.runtimeInfo(),
	}
}

func probeOne(ctx context.Context, name string, probe func(context.Context) *gwerrors.Error) DependencyReport {
	start := time.Now()
	err := probe(ctx)
	latency := time.Since(start).Milliseconds()

	if err == nil {
		return DependencyReport{Name: name, Status: StatusHealthy, LatencyMS: latency}
	}

	status := StatusDegraded
	switch err.Kind {
	case gwerrors.KindTimeout, gwerrors.KindServiceUnavailable, gwerrors.KindCircuitOpen:
		status = StatusUnhealthy
	}
	return DependencyReport{Name: name, Status: status, LatencyMS: latency, Error: err.Error()}
}

func rollup(reports []DependencyReport) Status {
	allHealthy := true
	anyUnhealthy := false
	for _, r := range reports {
		if r.Status != StatusHealthy {
			allHealthy = false
		}
		if r.Status == StatusUnhealthy {
			anyUnhealthy = true
		}
	}
	switch {
	case allHealthy:
		return StatusHealthy
	case anyUnhealthy:
		return StatusUnhealthy
	default:
		return StatusDegraded
	}
}

func (c *Checker) runtimeInfo() RuntimeInfo {
	return RuntimeInfo{
		UptimeSeconds: int64(time.Since(c.startedAt).Seconds()),
		PID:           processID(),
		GoVersion:     runtime.Version(),
		NumGoroutine:  runtime.NumGoroutine(),
	}
}

// Memory reports current process memory usage for the runtime metrics
// gauges spec §4.10 requires (rss, heap_total, heap_used, external).
func Memory() MemoryInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemoryInfo{
		RSS:        m.Sys,
		HeapTotal:  m.HeapSys,
		HeapUsed:   m.HeapAlloc,
		ExternalKB: m.HeapIdle,
	}
}
