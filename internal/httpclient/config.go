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

// Package httpclient is the gateway's single HTTP egress path to the
// upstream API and edge-function services: per-upstream circuit breaking,
// bounded exponential-backoff retries on a narrow set of transient
// statuses, correlation-id propagation, sanitized request logging, and an
// upstream.call span per round trip.
package httpclient

import (
	"fmt"
	"time"

	"github.com/lanonasis/mcp-gateway/internal/config"
)

// Config configures the shared HTTP client.
type Config struct {
	// Timeout is the per-attempt request timeout.
	Timeout time.Duration

	// MaxRetries is the number of retry attempts after the initial try
	// (0 disables retries).
	MaxRetries int

	// RetryBaseDelay is the initial backoff delay before the first retry.
	RetryBaseDelay time.Duration

	// MaxBackoff caps the computed backoff delay.
	MaxBackoff time.Duration

	// UserAgent is sent on every outbound request.
	UserAgent string
}

// DefaultConfig returns sensible defaults; callers normally build a Config
// from internal/config.Config via FromGatewayConfig instead.
func DefaultConfig() Config {
	return Config{
		Timeout:        30 * time.Second,
		MaxRetries:     3,
		RetryBaseDelay: 200 * time.Millisecond,
		MaxBackoff:     10 * time.Second,
		UserAgent:      "mcp-gateway/1.0",
	}
}

// FromGatewayConfig builds a Config from the gateway's own configuration
// record, the normal construction path in production.
func FromGatewayConfig(cfg *config.Config) Config {
	return Config{
		Timeout:        time.Duration(cfg.RequestTimeoutMs) * time.Millisecond,
		MaxRetries:     cfg.MaxRetries,
		RetryBaseDelay: time.Duration(cfg.RetryBaseDelayMs) * time.Millisecond,
		MaxBackoff:     10 * time.Second,
		UserAgent:      "enterprise-mcp-gateway/1.0",
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be > 0, got %v", c.Timeout)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("httpclient: max retries must be >= 0, got %d", c.MaxRetries)
	}
	if c.MaxRetries > 0 {
		if c.RetryBaseDelay <= 0 {
			return fmt.Errorf("httpclient: retry base delay must be > 0 when max retries > 0, got %v", c.RetryBaseDelay)
		}
		if c.MaxBackoff < c.RetryBaseDelay {
			return fmt.Errorf("httpclient: max backoff (%v) must be >= retry base delay (%v)", c.MaxBackoff, c.RetryBaseDelay)
		}
	}
	if c.UserAgent == "" {
		return fmt.Errorf("httpclient: user agent is required")
	}
	return nil
}
