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

package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lanonasis/mcp-gateway/internal/breaker"
	gwerrors "github.com/lanonasis/mcp-gateway/internal/errors"
	"github.com/lanonasis/mcp-gateway/internal/httpclient"
)

func testClients(t *testing.T, apiHandler, fnHandler http.HandlerFunc) (*Clients, func()) {
	t.Helper()

	cfg := httpclient.Config{
		Timeout:        2 * time.Second,
		MaxRetries:     0,
		RetryBaseDelay: 5 * time.Millisecond,
		MaxBackoff:     20 * time.Millisecond,
		UserAgent:      "mcp-gateway-test/1.0",
	}
	hc, err := httpclient.New(cfg, breaker.NewRegistry(), nil, nil)
	if err != nil {
		t.Fatalf("httpclient.New: %v", err)
	}

	var closers []func()
	clients := &Clients{}

	if apiHandler != nil {
		srv := httptest.NewServer(apiHandler)
		closers = append(closers, srv.Close)
		clients.API = NewService(hc, breaker.UpstreamAPI, srv.URL, "test-key")
	}
	if fnHandler != nil {
		srv := httptest.NewServer(fnHandler)
		closers = append(closers, srv.Close)
		clients.Functions = NewService(hc, breaker.UpstreamEdgeFunctions, srv.URL, "test-key")
	}

	return clients, func() {
		for _, c := range closers {
			c()
		}
	}
}

func TestListMemories_SendsFiltersAndAPIKey(t *testing.T) {
	var gotKey, gotQuery string
	clients, done := testClients(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(MemoryList{Memories: []Memory{{ID: "m1"}}, Total: 1})
	}, nil)
	defer done()

	out, err := clients.ListMemories(context.Background(), MemoryListParams{Type: "note", Limit: 10})
	if err != nil {
		t.Fatalf("ListMemories: %v", err)
	}
	if gotKey != "test-key" {
		t.Errorf("expected X-API-Key header set, got %q", gotKey)
	}
	if gotQuery == "" {
		t.Errorf("expected query string with filters, got empty")
	}
	if out.Total != 1 || len(out.Memories) != 1 {
		t.Errorf("unexpected result: %+v", out)
	}
}

func TestCreateMemory_PostsBody(t *testing.T) {
	var gotBody Memory
	clients, done := testClients(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		gotBody.ID = "generated"
		_ = json.NewEncoder(w).Encode(gotBody)
	}, nil)
	defer done()

	out, err := clients.CreateMemory(context.Background(), Memory{Title: "t", Content: "c"})
	if err != nil {
		t.Fatalf("CreateMemory: %v", err)
	}
	if gotBody.Title != "t" {
		t.Errorf("expected title forwarded, got %q", gotBody.Title)
	}
	if out.ID != "generated" {
		t.Errorf("expected server-assigned id, got %q", out.ID)
	}
}

func TestDeleteMemory_NoBodyExpected(t *testing.T) {
	clients, done := testClients(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}, nil)
	defer done()

	if err := clients.DeleteMemory(context.Background(), "m1"); err != nil {
		t.Fatalf("DeleteMemory: %v", err)
	}
}

func TestGetMemory_NotFoundNormalizesToGatewayError(t *testing.T) {
	clients, done := testClients(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, nil)
	defer done()

	_, err := clients.GetMemory(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if err.Kind != gwerrors.KindUnknown {
		t.Errorf("expected 404 mapped to KindUnknown (non-retryable), got %s", err.Kind)
	}
}

func TestIntelligenceHealthCheck_UsesFunctionsDomain(t *testing.T) {
	clients, done := testClients(t, nil, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(IntelligenceHealth{Status: "ok"})
	})
	defer done()

	out, err := clients.IntelligenceHealthCheck(context.Background())
	if err != nil {
		t.Fatalf("IntelligenceHealthCheck: %v", err)
	}
	if out.Status != "ok" {
		t.Errorf("expected status ok, got %q", out.Status)
	}
}

func TestRotateAPIKey_ReturnsNewSecret(t *testing.T) {
	clients, done := testClients(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(CreateAPIKeyResult{APIKey: APIKey{ID: "k1"}, Secret: "sk_new"})
	}, nil)
	defer done()

	out, err := clients.RotateAPIKey(context.Background(), "k1")
	if err != nil {
		t.Fatalf("RotateAPIKey: %v", err)
	}
	if out.Secret != "sk_new" {
		t.Errorf("expected rotated secret, got %q", out.Secret)
	}
}

func TestSetAPIKey_HotSwapsCredential(t *testing.T) {
	var seen []string
	clients, done := testClients(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("X-API-Key"))
		_ = json.NewEncoder(w).Encode(SystemHealth{Status: "ok"})
	}, nil)
	defer done()

	if _, err := clients.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
	clients.API.SetAPIKey("rotated-key")
	if _, err := clients.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}

	if len(seen) != 2 || seen[0] != "test-key" || seen[1] != "rotated-key" {
		t.Errorf("expected credential rotation to take effect immediately, got %v", seen)
	}
}
