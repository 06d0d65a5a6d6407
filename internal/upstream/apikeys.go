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
	"net/url"

	gwerrors "github.com/lanonasis/mcp-gateway/internal/errors"
)

// APIKey is a managed credential issued to a project.
type APIKey struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Prefix    string `json:"prefix"`
	ProjectID string `json:"projectId"`
	CreatedAt string `json:"createdAt"`
	ExpiresAt string `json:"expiresAt,omitempty"`
	Revoked   bool   `json:"revoked"`
}

// APIKeyList is the ListAPIKeys response.
type APIKeyList struct {
	Keys []APIKey `json:"keys"`
}

// ListAPIKeys lists the API keys belonging to projectID.
func (c *Clients) ListAPIKeys(ctx context.Context, projectID string) (*APIKeyList, *gwerrors.Error) {
	q := url.Values{}
	if projectID != "" {
		q.Set("projectId", projectID)
	}
	var out APIKeyList
	if err := c.API.doJSON(ctx, "list_api_keys", "GET", "/api-keys", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateAPIKeyResult is CreateAPIKey's response, carrying the secret only once.
type CreateAPIKeyResult struct {
	APIKey
	Secret string `json:"secret"`
}

// CreateAPIKey provisions a new API key for a project.
func (c *Clients) CreateAPIKey(ctx context.Context, projectID, name string) (*CreateAPIKeyResult, *gwerrors.Error) {
	body := map[string]any{"projectId": projectID, "name": name}
	var out CreateAPIKeyResult
	if err := c.API.doJSON(ctx, "create_api_key", "POST", "/api-keys", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAPIKey permanently removes an API key.
func (c *Clients) DeleteAPIKey(ctx context.Context, id string) *gwerrors.Error {
	return c.API.doJSON(ctx, "delete_api_key", "DELETE", "/api-keys/"+url.PathEscape(id), nil, nil, nil)
}

// RotateAPIKey issues a fresh secret for an existing key, invalidating the old one.
func (c *Clients) RotateAPIKey(ctx context.Context, id string) (*CreateAPIKeyResult, *gwerrors.Error) {
	var out CreateAPIKeyResult
	if err := c.API.doJSON(ctx, "rotate_api_key", "POST", "/api-keys/"+url.PathEscape(id)+"/rotate", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RevokeAPIKey disables a key without deleting its record.
func (c *Clients) RevokeAPIKey(ctx context.Context, id string) (*APIKey, *gwerrors.Error) {
	var out APIKey
	if err := c.API.doJSON(ctx, "revoke_api_key", "POST", "/api-keys/"+url.PathEscape(id)+"/revoke", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
