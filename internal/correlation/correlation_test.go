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

package correlation

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNew_ProducesValidUUID(t *testing.T) {
	id := New()
	if !id.Valid() {
		t.Errorf("expected minted id to be a valid UUID, got %q", id)
	}
}

func TestFromRequest_AcceptsValidHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/mcp", nil)
	req.Header.Set(Header, "11111111-2222-3333-4444-555555555555")

	id := FromRequest(req)
	if id != "11111111-2222-3333-4444-555555555555" {
		t.Errorf("expected id from header to be preserved verbatim, got %q", id)
	}
}

func TestFromRequest_MintsWhenAbsent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/mcp", nil)
	id := FromRequest(req)
	if !id.Valid() {
		t.Errorf("expected minted id when header absent, got %q", id)
	}
}

func TestFromRequest_MintsWhenMalformed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/mcp", nil)
	req.Header.Set(Header, "not-a-uuid")

	id := FromRequest(req)
	if id == "not-a-uuid" {
		t.Errorf("expected malformed header value to be rejected and a fresh id minted")
	}
	if !id.Valid() {
		t.Errorf("expected fallback id to be a valid UUID, got %q", id)
	}
}

func TestMiddleware_EchoesIDOnResponse(t *testing.T) {
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/mcp", nil)
	req.Header.Set(Header, "11111111-2222-3333-4444-555555555555")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get(Header); got != "11111111-2222-3333-4444-555555555555" {
		t.Errorf("expected response to echo incoming correlation id, got %q", got)
	}
}

func TestMiddleware_MintsWhenAbsent(t *testing.T) {
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/mcp", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	got := ID(rec.Header().Get(Header))
	if !got.Valid() {
		t.Errorf("expected response to carry a minted correlation id, got %q", got)
	}
}

func TestRoundTripper_InjectsHeaderFromContext(t *testing.T) {
	var captured string
	rt := &RoundTripper{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		captured = req.Header.Get(Header)
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	})}

	req := httptest.NewRequest(http.MethodGet, "https://upstream.example.com", nil)
	ctx := WithContext(req.Context(), ID("11111111-2222-3333-4444-555555555555"))
	req = req.WithContext(ctx)

	if _, err := rt.RoundTrip(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured != "11111111-2222-3333-4444-555555555555" {
		t.Errorf("expected outbound request to carry correlation id, got %q", captured)
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }
