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

package tool

import "golang.org/x/time/rate"

// RateLimiter throttles tool calls ahead of dispatch, distinct from and
// upstream of the per-upstream circuit breaker: it protects the gateway
// itself from being overwhelmed by call volume, not the upstreams from
// transient faults.
type RateLimiter struct {
	calls *rate.Limiter
}

// NewRateLimiter builds a token-bucket limiter allowing callsPerMinute
// sustained, with a burst capacity equal to that same rate.
func NewRateLimiter(callsPerMinute int) *RateLimiter {
	if callsPerMinute <= 0 {
		callsPerMinute = 100
	}
	return &RateLimiter{
		calls: rate.NewLimiter(rate.Limit(float64(callsPerMinute)/60.0), callsPerMinute),
	}
}

// Allow reports whether a tool call may proceed right now, consuming one
// token if so.
func (rl *RateLimiter) Allow() bool {
	return rl.calls.Allow()
}
