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

// IntelligenceHealth is the edge-functions domain's own health report.
type IntelligenceHealth struct {
	Status string `json:"status"`
}

// IntelligenceHealthCheck probes the edge-functions domain's health endpoint.
func (c *Clients) IntelligenceHealthCheck(ctx context.Context) (*IntelligenceHealth, *gwerrors.Error) {
	var out IntelligenceHealth
	if err := c.Functions.doJSON(ctx, "health_check", "GET", "/intelligence/health", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SuggestTagsResult carries the model's suggested tags for a memory's content.
type SuggestTagsResult struct {
	Tags []string `json:"tags"`
}

// SuggestTags asks the intelligence service to propose tags for content.
func (c *Clients) SuggestTags(ctx context.Context, content string) (*SuggestTagsResult, *gwerrors.Error) {
	body := map[string]any{"content": content}
	var out SuggestTagsResult
	if err := c.Functions.doJSON(ctx, "suggest_tags", "POST", "/intelligence/suggest-tags", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RelatedMemory is one hit from a find_related_memories call.
type RelatedMemory struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// FindRelatedResult holds the ranked related memories for a given memory.
type FindRelatedResult struct {
	Related []RelatedMemory `json:"related"`
}

// FindRelated finds memories semantically related to memoryID.
func (c *Clients) FindRelated(ctx context.Context, memoryID string, limit int) (*FindRelatedResult, *gwerrors.Error) {
	body := map[string]any{"memoryId": memoryID}
	if limit > 0 {
		body["limit"] = limit
	}
	var out FindRelatedResult
	if err := c.Functions.doJSON(ctx, "find_related_memories", "POST", "/intelligence/find-related", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DuplicateGroup is a cluster of memories the intelligence service judges duplicates.
type DuplicateGroup struct {
	MemoryIDs []string `json:"memoryIds"`
	Score     float64  `json:"score"`
}

// DetectDuplicatesResult holds the duplicate clusters found across memories.
type DetectDuplicatesResult struct {
	Groups []DuplicateGroup `json:"groups"`
}

// DetectDuplicates scans all memories (optionally scoped by type) for near-duplicates.
func (c *Clients) DetectDuplicates(ctx context.Context, memType string) (*DetectDuplicatesResult, *gwerrors.Error) {
	body := map[string]any{}
	if memType != "" {
		body["type"] = memType
	}
	var out DetectDuplicatesResult
	if err := c.Functions.doJSON(ctx, "detect_duplicates", "POST", "/intelligence/detect-duplicates", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExtractInsightsResult holds the model's summarized insights for a memory set.
type ExtractInsightsResult struct {
	Insights []string `json:"insights"`
}

// ExtractInsights summarizes themes and takeaways across a set of memories.
func (c *Clients) ExtractInsights(ctx context.Context, memoryIDs []string) (*ExtractInsightsResult, *gwerrors.Error) {
	body := map[string]any{"memoryIds": memoryIDs}
	var out ExtractInsightsResult
	if err := c.Functions.doJSON(ctx, "extract_insights", "POST", "/intelligence/extract-insights", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PatternReport holds recurring topics/tags the analyzer surfaced.
type PatternReport struct {
	Patterns []string `json:"patterns"`
}

// AnalyzePatterns looks for recurring topics and tag co-occurrence across memories.
func (c *Clients) AnalyzePatterns(ctx context.Context) (*PatternReport, *gwerrors.Error) {
	var out PatternReport
	if err := c.Functions.doJSON(ctx, "analyze_memory_patterns", "POST", "/intelligence/analyze-patterns", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
