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
	"encoding/json"

	gwerrors "github.com/lanonasis/mcp-gateway/internal/errors"
)

// registerResources wires the two named resources the catalog advertises:
// a static API reference document and a live, read-only view of the
// configuration record.
func registerResources(reg *Registry, deps Deps) {
	reg.RegisterResource(Resource{
		URI:         "gateway://docs/api-reference",
		Name:        "API reference",
		Description: "Summary of the tool catalog's operation groups and their upstream endpoints.",
		MimeType:    "text/markdown",
		Load: func(ctx context.Context) (string, *gwerrors.Error) {
			return "" +
				"# Tool catalog\n\n" +
				"- Memory: list_memories, create_memory, create_memory_chunked, get_memory, update_memory, delete_memory, search_memories, search_lanonasis_docs\n" +
				"- API keys: list_api_keys, create_api_key, delete_api_key, rotate_api_key, revoke_api_key\n" +
				"- Projects: list_projects, create_project\n" +
				"- Organizations: get_organization_info\n" +
				"- System: get_health_status, get_auth_status, get_config, set_config\n" +
				"- Intelligence: intelligence_health_check, intelligence_suggest_tags, intelligence_find_related, " +
				"intelligence_detect_duplicates, intelligence_extract_insights, intelligence_analyze_patterns\n" +
				"- Memory utilities: memory_stats, memory_bulk_delete\n", nil
		},
	})

	reg.RegisterResource(Resource{
		URI:         "gateway://config/current",
		Name:        "Current configuration",
		Description: "A read-only JSON view of the gateway's live configuration record.",
		MimeType:    "application/json",
		Load: func(ctx context.Context) (string, *gwerrors.Error) {
			v, err := deps.Config.Get(".")
			if err != nil {
				return "", err
			}
			encoded, jsonErr := json.MarshalIndent(v, "", "  ")
			if jsonErr != nil {
				return "", gwerrors.Wrap(gwerrors.KindInternal, "failed to encode configuration resource", jsonErr)
			}
			return string(encoded), nil
		},
	})
}
