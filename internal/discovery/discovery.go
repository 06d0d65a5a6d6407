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

// Package discovery serves the unauthenticated well-known documents and
// server cards that let an external MCP client self-configure: capability
// cards, OAuth resource/authorization-server metadata, and a pass-through
// to the configured auth server's dynamic client registration endpoint.
package discovery

import (
	"net/http"
	"time"

	"github.com/lanonasis/mcp-gateway/internal/httputil"
	"github.com/lanonasis/mcp-gateway/internal/tool"
)

const gatewayVersion = "1.0.0"

// Config carries the subset of the gateway's configuration the discovery
// documents advertise.
type Config struct {
	ServerName        string
	ResourceURL       string
	ServerURL         string
	AuthServerBaseURL string
}

// Handlers serves every discovery endpoint spec §4.11/§6 names.
type Handlers struct {
	cfg      Config
	registry *tool.Registry
	proxy    *registrationProxy
}

// New builds the discovery handlers. registry is read for tool/prompt/
// resource counts on the capability cards.
func New(cfg Config, registry *tool.Registry) *Handlers {
	return &Handlers{
		cfg:      cfg,
		registry: registry,
		proxy:    newRegistrationProxy(cfg.AuthServerBaseURL, 10*time.Second),
	}
}

// Landing serves GET /: a human-oriented summary with the endpoint catalog.
func (h *Handlers) Landing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tools, prompts, resources := h.registry.Counts()
		httputil.WriteJSON(w, r, http.StatusOK, map[string]any{
			"name":    h.cfg.ServerName,
			"version": gatewayVersion,
			"counts": map[string]int{
				"tools":     tools,
				"prompts":   prompts,
				"resources": resources,
			},
			"endpoints": []string{
				"/health", "/health/full", "/metrics", "/health/metrics",
				"/server-info", "/.well-known/mcp.json", "/.well-known/mcp-config",
				"/.well-known/oauth-protected-resource", "/.well-known/oauth-authorization-server",
				"/register", "/mcp", "/sse",
			},
		})
	}
}

// CapabilityCard serves GET /server-info, /.well-known/mcp.json, and
// /.well-known/mcp-config — three names, one document shape, per spec §6.
func (h *Handlers) CapabilityCard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tools, prompts, resources := h.registry.Counts()
		httputil.WriteJSON(w, r, http.StatusOK, map[string]any{
			"name":          h.cfg.ServerName,
			"version":       gatewayVersion,
			"description":   "Enterprise MCP Gateway: memory, analytics, and admin tools over MCP.",
			"toolCount":     tools,
			"promptCount":   prompts,
			"resourceCount": resources,
			"resourceUrl":   h.cfg.ResourceURL,
			"serverUrl":     h.cfg.ServerURL,
			"auth": map[string]any{
				"type":                    "oauth2",
				"protectedResourceMeta":   "/.well-known/oauth-protected-resource",
				"authorizationServerMeta": "/.well-known/oauth-authorization-server",
			},
		})
	}
}

// ProtectedResourceMetadata serves GET /.well-known/oauth-protected-resource
// per RFC 9728.
func (h *Handlers) ProtectedResourceMetadata() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, r, http.StatusOK, map[string]any{
			"resource":              h.cfg.ResourceURL,
			"authorization_servers": []string{h.cfg.AuthServerBaseURL},
			"bearer_methods_supported": []string{"header"},
		})
	}
}

// AuthorizationServerMetadata serves GET /.well-known/oauth-authorization-server
// per RFC 8414.
func (h *Handlers) AuthorizationServerMetadata() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		base := h.cfg.AuthServerBaseURL
		httputil.WriteJSON(w, r, http.StatusOK, map[string]any{
			"issuer":                        base,
			"authorization_endpoint":        base + "/authorize",
			"token_endpoint":                base + "/token",
			"registration_endpoint":         h.cfg.ServerURL + "/register",
			"response_types_supported":      []string{"code"},
			"grant_types_supported":         []string{"authorization_code", "refresh_token"},
			"token_endpoint_auth_methods_supported": []string{"client_secret_basic", "client_secret_post"},
		})
	}
}

// Register serves POST /register: a verbatim pass-through to the
// configured auth server's dynamic client registration endpoint. The
// gateway never inspects or persists the request or response body.
func (h *Handlers) Register() http.HandlerFunc {
	return h.proxy.ServeHTTP
}
