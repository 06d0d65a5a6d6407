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
	"errors"
	"io"
	"math"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gwerrors "github.com/lanonasis/mcp-gateway/internal/errors"
)

// retryableStatuses is the exact set of HTTP statuses the gateway retries
// on: 408 (request timeout), 429 (rate limited), and the three 5xx codes
// that indicate a transient upstream fault. Every other 4xx/5xx status is
// a terminal response, including generic 500s — an upstream bug is not
// assumed transient.
var retryableStatuses = map[int]bool{
	http.StatusRequestTimeout:     true, // 408
	http.StatusTooManyRequests:    true, // 429
	http.StatusBadGateway:         true, // 502
	http.StatusServiceUnavailable: true, // 503
	http.StatusGatewayTimeout:     true, // 504
}

func shouldRetryStatus(status int) bool {
	return retryableStatuses[status]
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return isRetryableError(urlErr.Err)
	}
	msg := strings.ToLower(err.Error())
	for _, kw := range []string{
		"connection refused", "connection reset", "no such host",
		"network unreachable", "temporary failure in name resolution", "eof",
	} {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}

// calculateBackoff computes attempt N's delay: exponential growth off
// base, capped at max, plus up to 20% jitter.
func calculateBackoff(base, max time.Duration, attempt int) time.Duration {
	backoff := float64(base) * math.Pow(2, float64(attempt-1))
	if backoff > float64(max) {
		backoff = float64(max)
	}
	jitter := rand.Float64() * backoff * 0.2
	return time.Duration(backoff + jitter)
}

// parseRetryAfter reads the Retry-After header, accepting either a
// delta-seconds integer or an HTTP-date, per RFC 9110 §10.2.3.
func parseRetryAfter(resp *http.Response) time.Duration {
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(header); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// classify maps a completed round trip (response and/or transport error)
// onto the normalized error taxonomy. A nil return means the call
// succeeded and resp should be handed back to the caller as-is.
func classify(resp *http.Response, err error) *gwerrors.Error {
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return gwerrors.Wrap(gwerrors.KindTimeout, "upstream call timed out", err)
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return gwerrors.Wrap(gwerrors.KindTimeout, "upstream call timed out", err)
		}
		if isRetryableError(err) {
			return gwerrors.Wrap(gwerrors.KindServiceUnavailable, "upstream unreachable", err)
		}
		return gwerrors.Wrap(gwerrors.KindInternal, "upstream call failed", err)
	}

	switch {
	case resp.StatusCode < 400:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return gwerrors.New(gwerrors.KindAuthentication, "upstream rejected credentials")
	case resp.StatusCode == http.StatusRequestTimeout:
		return gwerrors.New(gwerrors.KindTimeout, "upstream request timed out")
	case resp.StatusCode == http.StatusTooManyRequests:
		e := gwerrors.New(gwerrors.KindRateLimited, "upstream rate limit exceeded")
		if d := parseRetryAfter(resp); d > 0 {
			e.RetryAfter = int(d.Seconds())
		}
		return e
	case resp.StatusCode == http.StatusBadGateway,
		resp.StatusCode == http.StatusServiceUnavailable,
		resp.StatusCode == http.StatusGatewayTimeout:
		return gwerrors.New(gwerrors.KindServiceUnavailable, "upstream unavailable")
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return gwerrors.New(gwerrors.KindInvalidInput, "upstream rejected the request body")
	case resp.StatusCode >= 500:
		return gwerrors.New(gwerrors.KindInternal, "upstream internal error")
	default:
		return gwerrors.New(gwerrors.KindUnknown, "unexpected upstream status")
	}
}

func drainAndClose(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
}
