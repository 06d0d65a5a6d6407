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

	gwerrors "github.com/lanonasis/mcp-gateway/internal/errors"
)

// Project is a workspace scoping memories, keys, and members.
type Project struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	OrganizationID string `json:"organizationId"`
	CreatedAt      string `json:"createdAt"`
}

// ProjectList is the ListProjects response.
type ProjectList struct {
	Projects []Project `json:"projects"`
}

// ListProjects lists all projects visible to the caller's organization.
func (c *Clients) ListProjects(ctx context.Context) (*ProjectList, *gwerrors.Error) {
	var out ProjectList
	if err := c.API.doJSON(ctx, "list_projects", "GET", "/projects", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProject creates a new project under the caller's organization.
func (c *Clients) CreateProject(ctx context.Context, name string) (*Project, *gwerrors.Error) {
	body := map[string]any{"name": name}
	var out Project
	if err := c.API.doJSON(ctx, "create_project", "POST", "/projects", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Organization is the billing/membership root above a set of projects.
type Organization struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Plan     string `json:"plan"`
	Projects int    `json:"projectCount"`
}

// GetOrganization fetches the caller's organization profile.
func (c *Clients) GetOrganization(ctx context.Context) (*Organization, *gwerrors.Error) {
	var out Organization
	if err := c.API.doJSON(ctx, "get_organization_info", "GET", "/organization", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
