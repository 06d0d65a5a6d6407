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

package tool

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lanonasis/mcp-gateway/internal/cache"
	gwerrors "github.com/lanonasis/mcp-gateway/internal/errors"
	"github.com/lanonasis/mcp-gateway/internal/upstream"
)

func ptr(n int) *int { return &n }

// Deps bundles everything the catalog's handlers close over.
type Deps struct {
	Clients *upstream.Clients
	Caches  *cache.Registry
	Config  *ConfigView

	// Logger receives cache-invalidation bookkeeping; nil is fine, it just
	// means that bookkeeping goes unreported.
	Logger *slog.Logger
}

// invalidateOnWrite purges the memory-list cache after a write and reports
// how many entries it cleared, since Cache.InvalidatePattern's return value
// would otherwise be discarded at every call site.
func invalidateOnWrite(deps Deps) {
	if deps.Caches == nil {
		return
	}
	n := deps.Caches.InvalidateOnWrite()
	if n > 0 && deps.Logger != nil {
		deps.Logger.Debug("invalidated memory-list cache entries", "count", n)
	}
}

// RegisterCatalog wires all 28 tools, 3 prompts, and 2 resources spec §6
// names into reg. Handlers are thin: they translate validated MCP
// arguments into upstream.Clients calls and vice versa; any reliability
// behavior (retry, breaker, cache) lives one layer further down.
func RegisterCatalog(reg *Registry, deps Deps) {
	registerMemoryTools(reg, deps)
	registerAPIKeyTools(reg, deps)
	registerProjectTools(reg, deps)
	registerSystemTools(reg, deps)
	registerIntelligenceTools(reg, deps)
	registerPrompts(reg)
	registerResources(reg, deps)
}

func registerMemoryTools(reg *Registry, deps Deps) {
	c := deps.Clients

	reg.RegisterTool(Descriptor{
		Name:        "list_memories",
		Title:       "List memories",
		Description: "List stored memories, optionally filtered by type or tags and sorted.",
		Annotations: Annotations{ReadOnly: true, Idempotent: true},
		Schema: Schema{Fields: []Field{
			{Name: "type", Type: TypeEnum, Enum: MemoryTypes, Description: "Filter by memory type"},
			{Name: "tags", Type: TypeArray, Items: &Field{Type: TypeString}, Description: "Filter by tags (all must match)"},
			{Name: "sortBy", Type: TypeEnum, Enum: SortFields, Description: "Field to sort by"},
			{Name: "sortOrder", Type: TypeEnum, Enum: SortOrders, Description: "Sort direction"},
			{Name: "limit", Type: TypeInt, Min: ptr(1), Max: ptr(500), Description: "Maximum results"},
			{Name: "offset", Type: TypeInt, Min: ptr(0), Description: "Pagination offset"},
		}},
		Handler: func(ctx context.Context, args map[string]any) (any, *gwerrors.Error) {
			p := upstream.MemoryListParams{
				Type:      stringArg(args, "type"),
				Tags:      toStringSlice(args["tags"]),
				SortBy:    stringArg(args, "sortBy"),
				SortOrder: stringArg(args, "sortOrder"),
				Limit:     intArg(args, "limit"),
				Offset:    intArg(args, "offset"),
			}
			cacheKey := fmt.Sprintf("memory-list:%s:%s:%s:%s:%d:%d",
				p.Type, strings.Join(p.Tags, ","), p.SortBy, p.SortOrder, p.Limit, p.Offset)
			if deps.Caches != nil {
				if v, ok := deps.Caches.MemoryList.Get(cacheKey); ok {
					return v, nil
				}
			}
			out, err := c.ListMemories(ctx, p)
			if err != nil {
				return nil, err
			}
			if deps.Caches != nil {
				deps.Caches.MemoryList.Set(cacheKey, out)
			}
			return out, nil
		},
	})

	reg.RegisterTool(Descriptor{
		Name:        "create_memory",
		Title:       "Create memory",
		Description: "Create a single memory record.",
		Annotations: Annotations{Destructive: false},
		Schema: Schema{Fields: []Field{
			{Name: "title", Type: TypeString, Required: true},
			{Name: "content", Type: TypeString, Required: true},
			{Name: "type", Type: TypeEnum, Enum: MemoryTypes, Required: true},
			{Name: "tags", Type: TypeArray, Items: &Field{Type: TypeString}},
			{Name: "metadata", Type: TypeObject},
		}},
		Handler: func(ctx context.Context, args map[string]any) (any, *gwerrors.Error) {
			m, err := c.CreateMemory(ctx, memoryFromArgs(args))
			if err != nil {
				return nil, err
			}
			invalidateOnWrite(deps)
			return m, nil
		},
	})

	reg.RegisterTool(Descriptor{
		Name:        "create_memory_chunked",
		Title:       "Create memory (chunked)",
		Description: "Create a memory, automatically splitting oversized content into linked chunks.",
		Schema: Schema{Fields: []Field{
			{Name: "title", Type: TypeString, Required: true},
			{Name: "content", Type: TypeString, Required: true},
			{Name: "type", Type: TypeEnum, Enum: MemoryTypes, Required: true},
			{Name: "tags", Type: TypeArray, Items: &Field{Type: TypeString}},
			{Name: "metadata", Type: TypeObject},
		}},
		Handler: ChunkedCreateHandler(func(ctx context.Context, m upstream.Memory) (*upstream.Memory, *gwerrors.Error) {
			created, err := c.CreateMemory(ctx, m)
			if err == nil {
				invalidateOnWrite(deps)
			}
			return created, err
		}),
	})

	reg.RegisterTool(Descriptor{
		Name:        "get_memory",
		Title:       "Get memory",
		Description: "Fetch a single memory by id.",
		Annotations: Annotations{ReadOnly: true, Idempotent: true},
		Schema: Schema{Fields: []Field{
			{Name: "id", Type: TypeString, Required: true},
		}},
		Handler: func(ctx context.Context, args map[string]any) (any, *gwerrors.Error) {
			return c.GetMemory(ctx, stringArg(args, "id"))
		},
	})

	reg.RegisterTool(Descriptor{
		Name:        "update_memory",
		Title:       "Update memory",
		Description: "Partially update a memory's fields.",
		Annotations: Annotations{Idempotent: true},
		Schema: Schema{Fields: []Field{
			{Name: "id", Type: TypeString, Required: true},
			{Name: "title", Type: TypeString},
			{Name: "content", Type: TypeString},
			{Name: "type", Type: TypeEnum, Enum: MemoryTypes},
			{Name: "tags", Type: TypeArray, Items: &Field{Type: TypeString}},
			{Name: "metadata", Type: TypeObject},
		}},
		Handler: func(ctx context.Context, args map[string]any) (any, *gwerrors.Error) {
			id := stringArg(args, "id")
			patch := make(map[string]any, len(args)-1)
			for k, v := range args {
				if k != "id" {
					patch[k] = v
				}
			}
			m, err := c.UpdateMemory(ctx, id, patch)
			if err == nil {
				invalidateOnWrite(deps)
			}
			return m, err
		},
	})

	reg.RegisterTool(Descriptor{
		Name:        "delete_memory",
		Title:       "Delete memory",
		Description: "Permanently delete a memory by id.",
		Annotations: Annotations{Destructive: true},
		Schema: Schema{Fields: []Field{
			{Name: "id", Type: TypeString, Required: true},
		}},
		Handler: func(ctx context.Context, args map[string]any) (any, *gwerrors.Error) {
			if err := c.DeleteMemory(ctx, stringArg(args, "id")); err != nil {
				return nil, err
			}
			invalidateOnWrite(deps)
			return map[string]any{"deleted": true}, nil
		},
	})

	reg.RegisterTool(Descriptor{
		Name:        "search_memories",
		Title:       "Search memories",
		Description: "Search memory content by keyword or semantic query.",
		Annotations: Annotations{ReadOnly: true},
		Schema: Schema{Fields: []Field{
			{Name: "query", Type: TypeString, Required: true},
			{Name: "type", Type: TypeEnum, Enum: MemoryTypes},
			{Name: "limit", Type: TypeInt, Min: ptr(1), Max: ptr(100)},
		}},
		Handler: func(ctx context.Context, args map[string]any) (any, *gwerrors.Error) {
			return c.SearchMemories(ctx, upstream.MemorySearchParams{
				Query: stringArg(args, "query"),
				Type:  stringArg(args, "type"),
				Limit: intArg(args, "limit"),
			})
		},
	})

	reg.RegisterTool(Descriptor{
		Name:        "search_lanonasis_docs",
		Title:       "Search documentation",
		Description: "Search the lanonasis documentation corpus.",
		Annotations: Annotations{ReadOnly: true, OpenWorld: true},
		Schema: Schema{Fields: []Field{
			{Name: "query", Type: TypeString, Required: true},
			{Name: "section", Type: TypeEnum, Enum: DocSections},
		}},
		Handler: func(ctx context.Context, args map[string]any) (any, *gwerrors.Error) {
			return c.SearchDocs(ctx, upstream.DocSearchParams{
				Query:   stringArg(args, "query"),
				Section: stringArg(args, "section"),
			})
		},
	})
}

func registerAPIKeyTools(reg *Registry, deps Deps) {
	c := deps.Clients

	reg.RegisterTool(Descriptor{
		Name: "list_api_keys", Title: "List API keys", Description: "List API keys for a project.",
		Annotations: Annotations{ReadOnly: true, Idempotent: true},
		Schema:      Schema{Fields: []Field{{Name: "projectId", Type: TypeString}}},
		Handler: func(ctx context.Context, args map[string]any) (any, *gwerrors.Error) {
			return c.ListAPIKeys(ctx, stringArg(args, "projectId"))
		},
	})

	reg.RegisterTool(Descriptor{
		Name: "create_api_key", Title: "Create API key", Description: "Provision a new API key for a project.",
		Schema: Schema{Fields: []Field{
			{Name: "projectId", Type: TypeString, Required: true},
			{Name: "name", Type: TypeString, Required: true},
		}},
		Handler: func(ctx context.Context, args map[string]any) (any, *gwerrors.Error) {
			return c.CreateAPIKey(ctx, stringArg(args, "projectId"), stringArg(args, "name"))
		},
	})

	reg.RegisterTool(Descriptor{
		Name: "delete_api_key", Title: "Delete API key", Description: "Permanently remove an API key.",
		Annotations: Annotations{Destructive: true},
		Schema:      Schema{Fields: []Field{{Name: "id", Type: TypeString, Required: true}}},
		Handler: func(ctx context.Context, args map[string]any) (any, *gwerrors.Error) {
			if err := c.DeleteAPIKey(ctx, stringArg(args, "id")); err != nil {
				return nil, err
			}
			return map[string]any{"deleted": true}, nil
		},
	})

	reg.RegisterTool(Descriptor{
		Name: "rotate_api_key", Title: "Rotate API key", Description: "Issue a fresh secret for an existing key.",
		Annotations: Annotations{Destructive: true},
		Schema:      Schema{Fields: []Field{{Name: "id", Type: TypeString, Required: true}}},
		Handler: func(ctx context.Context, args map[string]any) (any, *gwerrors.Error) {
			return c.RotateAPIKey(ctx, stringArg(args, "id"))
		},
	})

	reg.RegisterTool(Descriptor{
		Name: "revoke_api_key", Title: "Revoke API key", Description: "Disable a key without deleting its record.",
		Annotations: Annotations{Destructive: true, Idempotent: true},
		Schema:      Schema{Fields: []Field{{Name: "id", Type: TypeString, Required: true}}},
		Handler: func(ctx context.Context, args map[string]any) (any, *gwerrors.Error) {
			return c.RevokeAPIKey(ctx, stringArg(args, "id"))
		},
	})
}

func registerProjectTools(reg *Registry, deps Deps) {
	c := deps.Clients

	reg.RegisterTool(Descriptor{
		Name: "list_projects", Title: "List projects", Description: "List projects visible to the caller's organization.",
		Annotations: Annotations{ReadOnly: true, Idempotent: true},
		Schema:      Schema{},
		Handler: func(ctx context.Context, args map[string]any) (any, *gwerrors.Error) {
			return c.ListProjects(ctx)
		},
	})

	reg.RegisterTool(Descriptor{
		Name: "create_project", Title: "Create project", Description: "Create a new project.",
		Schema: Schema{Fields: []Field{{Name: "name", Type: TypeString, Required: true}}},
		Handler: func(ctx context.Context, args map[string]any) (any, *gwerrors.Error) {
			return c.CreateProject(ctx, stringArg(args, "name"))
		},
	})

	reg.RegisterTool(Descriptor{
		Name: "get_organization_info", Title: "Get organization", Description: "Fetch the caller's organization profile.",
		Annotations: Annotations{ReadOnly: true, Idempotent: true},
		Schema:      Schema{},
		Handler: func(ctx context.Context, args map[string]any) (any, *gwerrors.Error) {
			return c.GetOrganization(ctx)
		},
	})
}

func registerSystemTools(reg *Registry, deps Deps) {
	c := deps.Clients

	reg.RegisterTool(Descriptor{
		Name: "get_health_status", Title: "Get health status", Description: "Check the primary API's health.",
		Annotations: Annotations{ReadOnly: true, Idempotent: true},
		Schema:      Schema{},
		Handler: func(ctx context.Context, args map[string]any) (any, *gwerrors.Error) {
			return c.Health(ctx)
		},
	})

	reg.RegisterTool(Descriptor{
		Name: "get_auth_status", Title: "Get auth status", Description: "Check whether the configured credential is valid.",
		Annotations: Annotations{ReadOnly: true, Idempotent: true},
		Schema:      Schema{},
		Handler: func(ctx context.Context, args map[string]any) (any, *gwerrors.Error) {
			return c.AuthStatus(ctx)
		},
	})

	reg.RegisterTool(Descriptor{
		Name: "get_config", Title: "Get config", Description: "Read the live configuration record by jq-style path.",
		Annotations: Annotations{ReadOnly: true, Idempotent: true},
		Schema:      Schema{Fields: []Field{{Name: "path", Type: TypeString, Required: true}}},
		Handler: func(ctx context.Context, args map[string]any) (any, *gwerrors.Error) {
			return deps.Config.Get(stringArg(args, "path"))
		},
	})

	reg.RegisterTool(Descriptor{
		Name: "set_config", Title: "Set config", Description: "Hot-reload an allow-listed configuration key.",
		Annotations: Annotations{Idempotent: true},
		Schema: Schema{Fields: []Field{
			{Name: "path", Type: TypeString, Required: true},
			{Name: "value", Type: TypeString, Required: true},
		}},
		Handler: func(ctx context.Context, args map[string]any) (any, *gwerrors.Error) {
			path := stringArg(args, "path")
			value := args["value"]
			if err := deps.Config.Set(path, value); err != nil {
				return nil, err
			}
			return map[string]any{"path": path, "value": value}, nil
		},
	})
}

func registerIntelligenceTools(reg *Registry, deps Deps) {
	c := deps.Clients

	reg.RegisterTool(Descriptor{
		Name: "intelligence_health_check", Title: "Intelligence health", Description: "Check the edge-functions domain's health.",
		Annotations: Annotations{ReadOnly: true, Idempotent: true},
		Schema:      Schema{},
		Handler: func(ctx context.Context, args map[string]any) (any, *gwerrors.Error) {
			return c.IntelligenceHealthCheck(ctx)
		},
	})

	reg.RegisterTool(Descriptor{
		Name: "intelligence_suggest_tags", Title: "Suggest tags", Description: "Propose tags for content.",
		Annotations: Annotations{ReadOnly: true, OpenWorld: true},
		Schema:      Schema{Fields: []Field{{Name: "content", Type: TypeString, Required: true}}},
		Handler: func(ctx context.Context, args map[string]any) (any, *gwerrors.Error) {
			return c.SuggestTags(ctx, stringArg(args, "content"))
		},
	})

	reg.RegisterTool(Descriptor{
		Name: "intelligence_find_related", Title: "Find related memories", Description: "Find memories semantically related to a given memory.",
		Annotations: Annotations{ReadOnly: true, OpenWorld: true},
		Schema: Schema{Fields: []Field{
			{Name: "memoryId", Type: TypeString, Required: true},
			{Name: "limit", Type: TypeInt, Min: ptr(1), Max: ptr(50)},
		}},
		Handler: func(ctx context.Context, args map[string]any) (any, *gwerrors.Error) {
			return c.FindRelated(ctx, stringArg(args, "memoryId"), intArg(args, "limit"))
		},
	})

	reg.RegisterTool(Descriptor{
		Name: "intelligence_detect_duplicates", Title: "Detect duplicates", Description: "Scan memories for near-duplicate clusters.",
		Annotations: Annotations{ReadOnly: true, OpenWorld: true},
		Schema:      Schema{Fields: []Field{{Name: "type", Type: TypeEnum, Enum: MemoryTypes}}},
		Handler: func(ctx context.Context, args map[string]any) (any, *gwerrors.Error) {
			return c.DetectDuplicates(ctx, stringArg(args, "type"))
		},
	})

	reg.RegisterTool(Descriptor{
		Name: "intelligence_extract_insights", Title: "Extract insights", Description: "Summarize themes across a set of memories.",
		Annotations: Annotations{ReadOnly: true, OpenWorld: true},
		Schema: Schema{Fields: []Field{
			{Name: "memoryIds", Type: TypeArray, Items: &Field{Type: TypeString}, Required: true},
		}},
		Handler: func(ctx context.Context, args map[string]any) (any, *gwerrors.Error) {
			return c.ExtractInsights(ctx, toStringSlice(args["memoryIds"]))
		},
	})

	reg.RegisterTool(Descriptor{
		Name: "intelligence_analyze_patterns", Title: "Analyze patterns", Description: "Find recurring topics and tag co-occurrence across memories.",
		Annotations: Annotations{ReadOnly: true, OpenWorld: true},
		Schema:      Schema{},
		Handler: func(ctx context.Context, args map[string]any) (any, *gwerrors.Error) {
			return c.AnalyzePatterns(ctx)
		},
	})

	reg.RegisterTool(Descriptor{
		Name: "memory_stats", Title: "Memory statistics", Description: "Aggregate memory counts and size by type.",
		Annotations: Annotations{ReadOnly: true, Idempotent: true},
		Schema:      Schema{},
		Handler: func(ctx context.Context, args map[string]any) (any, *gwerrors.Error) {
			cacheKey := "stats:memory"
			if deps.Caches != nil {
				if v, ok := deps.Caches.Stats.Get(cacheKey); ok {
					return v, nil
				}
			}
			out, err := c.MemoryStats(ctx)
			if err != nil {
				return nil, err
			}
			if deps.Caches != nil {
				deps.Caches.Stats.Set(cacheKey, out)
			}
			return out, nil
		},
	})

	reg.RegisterTool(Descriptor{
		Name: "memory_bulk_delete", Title: "Bulk delete memories", Description: "Delete multiple memories by id in one call.",
		Annotations: Annotations{Destructive: true},
		Schema: Schema{Fields: []Field{
			{Name: "ids", Type: TypeArray, Items: &Field{Type: TypeString}, Required: true, Min: ptr(1)},
		}},
		Handler: func(ctx context.Context, args map[string]any) (any, *gwerrors.Error) {
			out, err := c.MemoryBulkDelete(ctx, toStringSlice(args["ids"]))
			if err == nil {
				invalidateOnWrite(deps)
			}
			return out, err
		},
	})
}

func memoryFromArgs(args map[string]any) upstream.Memory {
	metadata, _ := args["metadata"].(map[string]any)
	return upstream.Memory{
		Title:    stringArg(args, "title"),
		Content:  stringArg(args, "content"),
		Type:     stringArg(args, "type"),
		Tags:     toStringSlice(args["tags"]),
		Metadata: metadata,
	}
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func intArg(args map[string]any, key string) int {
	n, _ := asInt(args[key])
	return n
}
