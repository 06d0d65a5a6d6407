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
	"context"
	"log/slog"
	"time"
)

// Warmup periodically probes both upstreams to keep their connections hot
// and their circuit breakers informed, independent of any client traffic.
// Failures are logged at debug and never affect the health the liveness
// or full endpoints report.
func (c *Checker) Warmup(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report := c.Probe(ctx)
			for _, dep := range report.Dependencies {
				if dep.Status != StatusHealthy {
					logger.Debug("warmup probe degraded", "dependency", dep.Name, "status", dep.Status, "error", dep.Error)
				}
			}
		}
	}
}
