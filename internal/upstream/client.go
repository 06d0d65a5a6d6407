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

// Package upstream holds one thin adapter per upstream operation: each
// builds a request, delegates to the shared retrying HTTP client, and
// returns either a decoded payload or a normalized error. No adapter
// retries, breaks circuits, or logs on its own — that belongs to
// internal/httpclient.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"

	"github.com/lanonasis/mcp-gateway/internal/breaker"
	gwerrors "github.com/lanonasis/mcp-gateway/internal/errors"
	"github.com/lanonasis/mcp-gateway/internal/httpclient"
)

// Service is one upstream HTTP dependency (the primary REST API, or the
// serverless functions domain), addressed through the shared httpclient.Client.
type Service struct {
	http    *httpclient.Client
	name    string
	baseURL string
	apiKey  atomic.Pointer[string]
}

// NewService builds a Service bound to upstream name and baseURL.
func NewService(hc *httpclient.Client, name, baseURL, apiKey string) *Service {
	s := &Service{http: hc, name: name, baseURL: baseURL}
	s.SetAPIKey(apiKey)
	return s
}

// SetAPIKey hot-swaps the credential used on every subsequent request,
// called by the config secret watcher on file rotation.
func (s *Service) SetAPIKey(key string) {
	s.apiKey.Store(&key)
}

// Clients bundles the two upstream services the gateway fronts.
type Clients struct {
	API       *Service
	Functions *Service
}

// doJSON executes operation against path with the given method and JSON
// body (nil for none), decoding a JSON response into out (nil to discard
// the body). query, if non-nil, is appended as the URL's query string.
func (s *Service) doJSON(ctx context.Context, operation, method, path string, query url.Values, body any, out any) *gwerrors.Error {
	var encoded []byte
	if body != nil {
		var err error
		encoded, err = json.Marshal(body)
		if err != nil {
			return gwerrors.Wrap(gwerrors.KindInternal, "failed to encode request body", err)
		}
	}

	full := s.baseURL + path
	if len(query) > 0 {
		full += "?" + query.Encode()
	}

	resp, err := s.http.Do(ctx, s.name, operation, func(ctx context.Context) (*http.Request, error) {
		var r io.Reader
		if encoded != nil {
			r = bytes.NewReader(encoded)
		}
		req, err := http.NewRequestWithContext(ctx, method, full, r)
		if err != nil {
			return nil, err
		}
		if encoded != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if key := s.apiKey.Load(); key != nil && *key != "" {
			req.Header.Set("X-API-Key", *key)
		}
		return req, nil
	})
	if err != nil {
		if e, ok := err.(*gwerrors.Error); ok {
			return e
		}
		return gwerrors.Wrap(gwerrors.KindUnknown, "upstream call failed", err)
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return gwerrors.Wrap(gwerrors.KindInternal, fmt.Sprintf("failed to decode %s response", operation), err)
	}
	return nil
}

// NameAPI and NameFunctions expose the canonical upstream names used for breaker and
// metric labeling, matching the two preconfigured entries in internal/breaker.
var (
	NameAPI       = breaker.UpstreamAPI
	NameFunctions = breaker.UpstreamEdgeFunctions
)
