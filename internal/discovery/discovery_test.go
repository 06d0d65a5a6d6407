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

package discovery

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lanonasis/mcp-gateway/internal/tool"
)

func testConfig() Config {
	return Config{
		ServerName:        "enterprise-mcp-gateway",
		ResourceURL:       "https://gateway.example.com/mcp",
		ServerURL:         "https://gateway.example.com",
		AuthServerBaseURL: "https://auth.example.com",
	}
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestLanding_ReportsCounts(t *testing.T) {
	reg := tool.NewRegistry()
	reg.Freeze()
	h := New(testConfig(), reg)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Landing()(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	require.Equal(t, "enterprise-mcp-gateway", body["name"])
	require.Contains(t, body, "endpoints")
}

func TestCapabilityCard_ServesAuthMetadataLinks(t *testing.T) {
	reg := tool.NewRegistry()
	reg.Freeze()
	h := New(testConfig(), reg)

	req := httptest.NewRequest(http.MethodGet, "/server-info", nil)
	rec := httptest.NewRecorder()
	h.CapabilityCard()(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	auth, ok := body["auth"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "/.well-known/oauth-protected-resource", auth["protectedResourceMeta"])
}

func TestProtectedResourceMetadata_EchoesResourceURL(t *testing.T) {
	reg := tool.NewRegistry()
	reg.Freeze()
	h := New(testConfig(), reg)

	req := httptest.NewRequest(http.MethodGet, "/.well-known/oauth-protected-resource", nil)
	rec := httptest.NewRecorder()
	h.ProtectedResourceMetadata()(rec, req)

	body := decodeJSON(t, rec)
	require.Equal(t, "https://gateway.example.com/mcp", body["resource"])
}

func TestAuthorizationServerMetadata_BuildsEndpointsFromBase(t *testing.T) {
	reg := tool.NewRegistry()
	reg.Freeze()
	h := New(testConfig(), reg)

	req := httptest.NewRequest(http.MethodGet, "/.well-known/oauth-authorization-server", nil)
	rec := httptest.NewRecorder()
	h.AuthorizationServerMetadata()(rec, req)

	body := decodeJSON(t, rec)
	require.Equal(t, "https://auth.example.com/authorize", body["authorization_endpoint"])
	require.Equal(t, "https://gateway.example.com/register", body["registration_endpoint"])
}

func TestRegister_NoAuthServerConfiguredReturns503(t *testing.T) {
	reg := tool.NewRegistry()
	reg.Freeze()
	cfg := testConfig()
	cfg.AuthServerBaseURL = ""
	h := New(cfg, reg)

	req := httptest.NewRequest(http.MethodPost, "/register", nil)
	rec := httptest.NewRecorder()
	h.Register()(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decodeJSON(t, rec)
	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "NOT_CONFIGURED", errBody["code"])
}

func TestRegister_ProxiesToAuthServer(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/register", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"client_id":"abc123"}`))
	}))
	defer upstream.Close()

	reg := tool.NewRegistry()
	reg.Freeze()
	cfg := testConfig()
	cfg.AuthServerBaseURL = upstream.URL
	h := New(cfg, reg)

	req := httptest.NewRequest(http.MethodPost, "/register", nil)
	rec := httptest.NewRecorder()
	h.Register()(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), "abc123")
}
