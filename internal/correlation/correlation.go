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

// Package correlation propagates the request correlation id end-to-end:
// accepted from an inbound X-Request-Id header when present, minted
// otherwise, threaded through context, and echoed verbatim on every
// downstream call and the eventual response.
package correlation

import (
	"context"
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

// ID is a request correlation identifier, RFC 4122 UUID format.
type ID string

type contextKeyType struct{}

var contextKey = contextKeyType{}

// Header is the single header name this gateway reads and writes for
// correlation, per spec: all responses set X-Request-Id echoing the
// correlation id, taken from the incoming X-Request-Id header if present.
const Header = "X-Request-Id"

var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// New mints a fresh v4-style correlation id.
func New() ID {
	return ID(uuid.New().String())
}

func (id ID) String() string { return string(id) }

// Valid reports whether id is a well-formed UUID.
func (id ID) Valid() bool {
	return uuidRegex.MatchString(string(id))
}

// WithContext attaches id to ctx.
func WithContext(ctx context.Context, id ID) context.Context {
	return context.WithValue(ctx, contextKey, id)
}

// FromContext returns the correlation id in ctx, minting one if absent.
func FromContext(ctx context.Context) ID {
	if id, ok := ctx.Value(contextKey).(ID); ok {
		return id
	}
	return New()
}

// FromContextOrEmpty returns the correlation id in ctx, or "" if absent.
func FromContextOrEmpty(ctx context.Context) ID {
	if id, ok := ctx.Value(contextKey).(ID); ok {
		return id
	}
	return ""
}

// FromRequest extracts the correlation id from an inbound request's
// X-Request-Id header, accepting it only when well-formed; otherwise it
// mints a new one. This implements the RequestEnvelope construction rule:
// accepted from the client header if present and valid, else minted.
func FromRequest(r *http.Request) ID {
	if v := r.Header.Get(Header); v != "" {
		id := ID(v)
		if id.Valid() {
			return id
		}
	}
	return New()
}

// InjectRequest sets the outbound X-Request-Id header from ctx so the id
// is preserved verbatim on every downstream call.
func InjectRequest(ctx context.Context, req *http.Request) {
	if id := FromContextOrEmpty(ctx); id != "" {
		req.Header.Set(Header, id.String())
	}
}

// InjectResponse echoes id on the response, per spec: all responses set
// X-Request-Id echoing the correlation id.
func InjectResponse(w http.ResponseWriter, id ID) {
	if id != "" {
		w.Header().Set(Header, id.String())
	}
}

// Middleware extracts or mints a correlation id for each inbound HTTP
// request, stores it in the request context, and echoes it on the
// response before calling next.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := FromRequest(r)
		ctx := WithContext(r.Context(), id)
		r = r.WithContext(ctx)
		InjectResponse(w, id)
		next.ServeHTTP(w, r)
	})
}

// RoundTripper injects the correlation id from the request context into
// every outbound call made through it.
type RoundTripper struct {
	Transport http.RoundTripper
}

func (t *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	InjectRequest(req.Context(), req)
	transport := t.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return transport.RoundTrip(req)
}
