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

package mcpserver

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// discoveryPaths never require a bearer token; they are plain JSON
// documents a client fetches before it has credentials.
var discoveryPaths = map[string]bool{
	"/":                                      true,
	"/server-info":                           true,
	"/.well-known/mcp.json":                  true,
	"/.well-known/mcp-config":                true,
	"/.well-known/oauth-protected-resource":   true,
	"/.well-known/oauth-authorization-server": true,
	"/register":                               true,
}

// bearerAuth gates every non-discovery endpoint behind a bearer token,
// accepted either as a JWT signed with secret (checked first) or as the
// static shared secret itself (constant-time compared). An empty secret
// disables auth entirely, which callers should only do in local
// development.
func bearerAuth(secret string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if discoveryPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}
		if secret == "" {
			next.ServeHTTP(w, r)
			return
		}

		token := bearerToken(r)
		if token == "" {
			unauthorized(w)
			return
		}

		if verifyJWT(token, secret) {
			next.ServeHTTP(w, r)
			return
		}
		if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) == 1 {
			next.ServeHTTP(w, r)
			return
		}

		unauthorized(w)
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return ""
	}
	return strings.TrimPrefix(h, prefix)
}

// verifyJWT reports whether token is a validly signed JWT under secret.
// A malformed or differently-signed token is not an error here — it just
// means the caller should fall through to the static-secret comparison.
func verifyJWT(token, secret string) bool {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	return err == nil && parsed.Valid
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="mcp-gateway"`)
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"success":false,"error":{"code":"AUTHENTICATION_ERROR","message":"missing or invalid bearer token"}}`))
}
