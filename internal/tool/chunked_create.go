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

	"github.com/lanonasis/mcp-gateway/internal/chunk"
	gwerrors "github.com/lanonasis/mcp-gateway/internal/errors"
	"github.com/lanonasis/mcp-gateway/internal/upstream"
)

// CreateMemoryFunc is the single-memory create operation the chunked
// composite falls back to, or issues once per chunk.
type CreateMemoryFunc func(ctx context.Context, m upstream.Memory) (*upstream.Memory, *gwerrors.Error)

// ChunkedCreateHandler builds the create_memory_chunked composite tool
// handler bound to create. Chunks are created sequentially, on purpose,
// to preserve upstream write order and bound concurrent upstream pressure
// for a single request.
func ChunkedCreateHandler(create CreateMemoryFunc) Handler {
	return func(ctx context.Context, args map[string]any) (any, *gwerrors.Error) {
		title, _ := args["title"].(string)
		content, _ := args["content"].(string)
		memType, _ := args["type"].(string)
		tags := toStringSlice(args["tags"])
		metadata, _ := args["metadata"].(map[string]any)

		opts := chunk.DefaultOptions()
		if !chunk.NeedsChunking(content, opts) {
			created, err := create(ctx, upstream.Memory{Title: title, Content: content, Type: memType, Tags: tags, Metadata: metadata})
			if err != nil {
				return nil, err
			}
			return chunk.Result{
				Chunked:        false,
				TotalChunks:    1,
				Successful:     1,
				OriginalLength: len(content),
				Results:        []any{created},
			}, nil
		}

		payloads := chunk.CreateChunkedMemories(title, content, memType, tags, metadata, opts)
		result := chunk.Result{
			Chunked:        true,
			TotalChunks:    len(payloads),
			OriginalLength: len(content),
		}

		for _, p := range payloads {
			created, err := create(ctx, upstream.Memory{Title: p.Title, Content: p.Content, Type: p.Type, Tags: p.Tags, Metadata: p.Metadata})
			if err != nil {
				result.Failed++
				result.Errors = append(result.Errors, err.Error())
				continue
			}
			result.Successful++
			result.Results = append(result.Results, created)
		}

		return result, nil
	}
}

func toStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
