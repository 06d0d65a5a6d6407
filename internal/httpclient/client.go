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

package httpclient

import (
	"context"
	"crypto/tls"
	"log/slog"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lanonasis/mcp-gateway/internal/breaker"
	gwerrors "github.com/lanonasis/mcp-gateway/internal/errors"
)

// Client is the gateway's single egress path to an upstream service: a
// circuit breaker gate, a bounded exponential-backoff retry loop over a
// narrow set of transient statuses, and an upstream.call span per round
// trip, wrapped around a plain *http.Client doing the actual transport.
type Client struct {
	http     *http.Client
	cfg      Config
	breakers *breaker.Registry
	tracer   trace.Tracer
	logger   *slog.Logger
}

// New builds a Client. breakers and tracer may be nil; a nil registry
// disables circuit breaking, a nil tracer disables span emission.
func New(cfg Config, breakers *breaker.Registry, tracer trace.Tracer, logger *slog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseTransport := &http.Transport{
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
			MaxVersion: tls.VersionTLS13,
		},
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.Timeout,
		ExpectContinueTimeout: 1 * time.Second,
	}

	transport := newLoggingTransport(baseTransport, cfg.UserAgent, logger)

	return &Client{
		http:     &http.Client{Transport: transport, Timeout: cfg.Timeout},
		cfg:      cfg,
		breakers: breakers,
		tracer:   tracer,
		logger:   logger,
	}, nil
}

// newRequestFunc builds a fresh *http.Request for one attempt; retries
// must not reuse a request whose body has already been consumed.
type newRequestFunc func(ctx context.Context) (*http.Request, error)

// Do executes a request against upstream (e.g. "api", "edgeFunctions"),
// labeled by operation for spans and logs, honoring the circuit breaker
// and retry policy. buildReq is invoked once per attempt.
func (c *Client) Do(ctx context.Context, upstream, operation string, buildReq newRequestFunc) (*http.Response, error) {
	var br *breaker.Breaker
	if c.breakers != nil {
		br = c.breakers.Get(upstream)
		if err := br.Allow(upstream); err != nil {
			return nil, gwerrors.Wrap(gwerrors.KindCircuitOpen, "circuit breaker open for "+upstream, err)
		}
	}

	maxAttempts := c.cfg.MaxRetries + 1

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		req, err := buildReq(ctx)
		if err != nil {
			return nil, gwerrors.Wrap(gwerrors.KindInternal, "failed to build upstream request", err)
		}

		resp, rtErr, delay := c.attempt(ctx, upstream, operation, attempt, req)
		classified := classify(resp, rtErr)

		if classified == nil {
			if br != nil {
				br.RecordSuccess()
			}
			return resp, nil
		}

		drainAndClose(resp)

		if !classified.Retryable() || attempt == maxAttempts {
			if br != nil {
				br.RecordFailure()
			}
			return nil, classified
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			if br != nil {
				br.RecordFailure()
			}
			return nil, gwerrors.Wrap(gwerrors.KindTimeout, "context canceled during retry backoff", ctx.Err())
		}
	}

	panic("unreachable: loop above always returns")
}

// attempt executes a single round trip inside its own upstream.call span.
func (c *Client) attempt(ctx context.Context, upstream, operation string, n int, req *http.Request) (*http.Response, error, time.Duration) {
	var span trace.Span
	if c.tracer != nil {
		ctx, span = c.tracer.Start(ctx, "upstream.call", trace.WithAttributes(attribute.Bool("retry", n > 1)))
		defer span.End()
	}
	req = req.WithContext(ctx)

	resp, err := c.http.Do(req)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	if span != nil {
		span.SetAttributes(
			attribute.String("upstream", upstream),
			attribute.String("operation", operation),
			attribute.Int("attempt", n),
			attribute.Int("status", status),
		)
	}

	delay := calculateBackoff(c.cfg.RetryBaseDelay, c.cfg.MaxBackoff, n)
	if resp != nil {
		if ra := parseRetryAfter(resp); ra > 0 && ra < delay {
			delay = ra
		}
	}
	return resp, err, delay
}
