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
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/lanonasis/mcp-gateway/internal/httputil"
)

// registrationProxy forwards POST /register verbatim to authServerBaseURL's
// own registration endpoint and relays the response unchanged. It holds no
// opinion about the body's shape — that is the auth server's concern.
type registrationProxy struct {
	target string
	client *http.Client
}

func newRegistrationProxy(authServerBaseURL string, timeout time.Duration) *registrationProxy {
	return &registrationProxy{
		target: authServerBaseURL + "/register",
		client: &http.Client{Timeout: timeout},
	}
}

func (p *registrationProxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if p.target == "" || p.target == "/register" {
		httputil.WriteError(w, r, http.StatusServiceUnavailable, "NOT_CONFIGURED", "no auth server configured for dynamic client registration")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		httputil.WriteError(w, r, http.StatusBadGateway, "BAD_REQUEST", "failed to read registration request body")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, p.target, bytes.NewReader(body))
	if err != nil {
		httputil.WriteError(w, r, http.StatusBadGateway, "PROXY_ERROR", "failed to build upstream registration request")
		return
	}
	req.Header.Set("Content-Type", r.Header.Get("Content-Type"))

	resp, err := p.client.Do(req)
	if err != nil {
		httputil.WriteError(w, r, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "auth server registration endpoint unreachable")
		return
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		httputil.WriteError(w, r, http.StatusBadGateway, "PROXY_ERROR", "failed to read upstream registration response")
		return
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(respBody)
}
