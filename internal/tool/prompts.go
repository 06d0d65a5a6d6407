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

import gwerrors "github.com/lanonasis/mcp-gateway/internal/errors"

// registerPrompts wires the three named prompt templates the catalog
// advertises: a general memory workflow guide, an API key management
// guide, and an intelligence/analytics guide.
func registerPrompts(reg *Registry) {
	reg.RegisterPrompt(Prompt{
		Name:        "memory_workflow",
		Description: "Guides an agent through listing, creating, searching, and chunking memories.",
		Render: func(args map[string]any) (string, *gwerrors.Error) {
			return "" +
				"Use list_memories to survey existing context before creating new memories. " +
				"Prefer create_memory_chunked over create_memory when content may exceed a single chunk. " +
				"Use search_memories for keyword/semantic lookups and get_memory once you have an id. " +
				"update_memory and delete_memory are idempotent and destructive respectively — confirm intent before calling delete_memory.", nil
		},
	})

	reg.RegisterPrompt(Prompt{
		Name:        "api_key_management",
		Description: "Guides an agent through provisioning, rotating, and revoking API keys.",
		Render: func(args map[string]any) (string, *gwerrors.Error) {
			return "" +
				"Use list_api_keys to audit existing keys for a project before creating a new one. " +
				"create_api_key returns the secret exactly once — surface it to the caller immediately. " +
				"Prefer rotate_api_key over delete_api_key plus create_api_key when replacing a compromised credential; " +
				"use revoke_api_key to disable a key without losing its audit history.", nil
		},
	})

	reg.RegisterPrompt(Prompt{
		Name:        "intelligence_guide",
		Description: "Guides an agent through the analytics and pattern-detection tools.",
		Render: func(args map[string]any) (string, *gwerrors.Error) {
			return "" +
				"Use intelligence_suggest_tags before create_memory to improve discoverability. " +
				"Use intelligence_find_related and intelligence_detect_duplicates before creating a memory that might " +
				"overlap with existing content. intelligence_analyze_patterns and memory_stats are read-only summaries " +
				"suitable for periodic review; memory_bulk_delete is destructive and should follow an explicit review step.", nil
		},
	})
}
