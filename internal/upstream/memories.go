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
	"strconv"

	gwerrors "github.com/lanonasis/mcp-gateway/internal/errors"
)

// Memory mirrors the upstream memory record shape.
type Memory struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Type      string         `json:"type"`
	Tags      []string       `json:"tags,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt string         `json:"createdAt,omitempty"`
	UpdatedAt string         `json:"updatedAt,omitempty"`
}

// MemoryListParams filters/paginates ListMemories.
type MemoryListParams struct {
	Type      string
	Tags      []string
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

// MemoryList is the paginated ListMemories response.
type MemoryList struct {
	Memories []Memory `json:"memories"`
	Total    int      `json:"total"`
}

// ListMemories lists memories matching the given filters.
func (c *Clients) ListMemories(ctx context.Context, p MemoryListParams) (*MemoryList, *gwerrors.Error) {
	q := url.Values{}
	if p.Type != "" {
		q.Set("type", p.Type)
	}
	for _, t := range p.Tags {
		q.Add("tags", t)
	}
	if p.SortBy != "" {
		q.Set("sortBy", p.SortBy)
	}
	if p.SortOrder != "" {
		q.Set("sortOrder", p.SortOrder)
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		q.Set("offset", strconv.Itoa(p.Offset))
	}

	var out MemoryList
	if err := c.API.doJSON(ctx, "list_memories", "GET", "/memories", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateMemory creates a single memory record.
func (c *Clients) CreateMemory(ctx context.Context, m Memory) (*Memory, *gwerrors.Error) {
	var out Memory
	if err := c.API.doJSON(ctx, "create_memory", "POST", "/memories", nil, m, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMemory fetches a single memory by id.
func (c *Clients) GetMemory(ctx context.Context, id string) (*Memory, *gwerrors.Error) {
	var out Memory
	if err := c.API.doJSON(ctx, "get_memory", "GET", "/memories/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMemory partially updates a memory by id.
func (c *Clients) UpdateMemory(ctx context.Context, id string, patch map[string]any) (*Memory, *gwerrors.Error) {
	var out Memory
	if err := c.API.doJSON(ctx, "update_memory", "PATCH", "/memories/"+url.PathEscape(id), nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteMemory deletes a memory by id.
func (c *Clients) DeleteMemory(ctx context.Context, id string) *gwerrors.Error {
	return c.API.doJSON(ctx, "delete_memory", "DELETE", "/memories/"+url.PathEscape(id), nil, nil, nil)
}

// MemorySearchParams controls a semantic/keyword search over memories.
type MemorySearchParams struct {
	Query string
	Type  string
	Limit int
}

// SearchMemories performs a search over memory content.
func (c *Clients) SearchMemories(ctx context.Context, p MemorySearchParams) (*MemoryList, *gwerrors.Error) {
	q := url.Values{"q": []string{p.Query}}
	if p.Type != "" {
		q.Set("type", p.Type)
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}

	var out MemoryList
	if err := c.API.doJSON(ctx, "search_memories", "GET", "/memories/search", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DocSearchParams scopes a documentation search to a section.
type DocSearchParams struct {
	Query   string
	Section string // all|api|guides|sdks
}

// DocSearchResult is one hit from the documentation search.
type DocSearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// SearchDocs searches the lanonasis documentation corpus.
func (c *Clients) SearchDocs(ctx context.Context, p DocSearchParams) ([]DocSearchResult, *gwerrors.Error) {
	q := url.Values{"q": []string{p.Query}}
	section := p.Section
	if section == "" {
		section = "all"
	}
	q.Set("section", section)

	var out struct {
		Results []DocSearchResult `json:"results"`
	}
	if err := c.API.doJSON(ctx, "search_lanonasis_docs", "GET", "/docs/search", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// MemoryStats summarizes memory counts by type, used by memory_stats.
type MemoryStats struct {
	Total  int            `json:"total"`
	ByType map[string]int `json:"byType"`
	SizeKB float64        `json:"sizeKb"`
}

// MemoryStats fetches aggregate memory statistics from the functions domain.
func (c *Clients) MemoryStats(ctx context.Context) (*MemoryStats, *gwerrors.Error) {
	var out MemoryStats
	if err := c.Functions.doJSON(ctx, "memory_stats", "GET", "/intelligence/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BulkDeleteResult summarizes a memory_bulk_delete call.
type BulkDeleteResult struct {
	Requested int      `json:"requested"`
	Deleted   int      `json:"deleted"`
	Failed    []string `json:"failed,omitempty"`
}

// MemoryBulkDelete deletes multiple memories by id in one upstream call.
func (c *Clients) MemoryBulkDelete(ctx context.Context, ids []string) (*BulkDeleteResult, *gwerrors.Error) {
	var out BulkDeleteResult
	body := map[string]any{"ids": ids}
	if err := c.Functions.doJSON(ctx, "memory_bulk_delete", "POST", "/intelligence/bulk-delete", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
