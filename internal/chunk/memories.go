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

package chunk

import "fmt"

// MemoryPayload is one chunk materialized as a memory-creation request.
type MemoryPayload struct {
	Title    string
	Content  string
	Type     string
	Tags     []string
	Metadata map[string]any
}

// CreateChunkedMemories builds one MemoryPayload per chunk of content,
// each carrying a "Part i of N" title suffix, "chunked"/"chunk-i-of-N"
// tags, and chunking metadata describing its position in the original.
func CreateChunkedMemories(baseTitle, content, memType string, tags []string, metadata map[string]any, opts Options) []MemoryPayload {
	chunks := Split(content, opts)
	payloads := make([]MemoryPayload, len(chunks))

	for i, c := range chunks {
		title := baseTitle
		if c.Total > 1 {
			title = fmt.Sprintf("%s (Part %d of %d)", baseTitle, c.Index, c.Total)
		}

		chunkTags := make([]string, 0, len(tags)+2)
		chunkTags = append(chunkTags, tags...)
		if c.Total > 1 {
			chunkTags = append(chunkTags, "chunked", fmt.Sprintf("chunk-%d-of-%d", c.Index, c.Total))
		}

		meta := make(map[string]any, len(metadata)+5)
		for k, v := range metadata {
			meta[k] = v
		}
		meta["chunkIndex"] = c.Index
		meta["chunkTotal"] = c.Total
		meta["originalLength"] = len(content)
		meta["chunkStart"] = c.Start
		meta["chunkEnd"] = c.End
		meta["continuation"] = c.Continuation

		payloads[i] = MemoryPayload{
			Title:    title,
			Content:  c.Content,
			Type:     memType,
			Tags:     chunkTags,
			Metadata: meta,
		}
	}
	return payloads
}

// Result summarizes the outcome of a composite chunked-create dispatch.
type Result struct {
	Chunked        bool
	TotalChunks    int
	Successful     int
	Failed         int
	OriginalLength int
	Results        []any
	Errors         []string
}
