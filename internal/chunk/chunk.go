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

// Package chunk splits oversized memory content into an ordered,
// overlapping sequence of chunks along semantic boundaries, so a single
// large create_memory call can be materialized as several smaller ones.
package chunk

import (
	"strings"
)

// separator visibly marks a chunk boundary when reassembling split content.
const separator = "\n--- chunk boundary ---\n"

// maxIterations bounds the splitting loop; if content is pathological
// enough to exhaust it, the whole remaining tail becomes one final chunk
// marked as a forced split.
const maxIterations = 1000

// DefaultBoundaries is the preferred split-point search order: paragraph
// breaks first, falling back to progressively finer-grained boundaries.
var DefaultBoundaries = []string{"\n\n\n", "\n\n", "\n", ". ", "! ", "? ", " "}

// Options configures a Split call.
type Options struct {
	MaxChunkSize int
	OverlapSize  int
	MinChunkSize int
	Boundaries   []string
}

// DefaultOptions returns reasonable defaults.
func DefaultOptions() Options {
	return Options{
		MaxChunkSize: 8000,
		OverlapSize:  200,
		MinChunkSize: 500,
		Boundaries:   DefaultBoundaries,
	}
}

// Chunk is one piece of a split content string.
type Chunk struct {
	Index        int
	Total        int
	Content      string
	Start        int
	End          int
	Continuation bool
	SplitMethod  string // "boundary", "exact", or "forced"
}

// NeedsChunking reports whether content exceeds the configured max size.
func NeedsChunking(content string, opts Options) bool {
	return len(content) > opts.MaxChunkSize
}

// EstimateChunkCount estimates the number of chunks Split will produce,
// without actually splitting.
func EstimateChunkCount(contentLen int, opts Options) int {
	if contentLen <= opts.MaxChunkSize {
		return 1
	}
	effective := float64(opts.MaxChunkSize) * 0.9
	if effective <= 0 {
		return 1
	}
	n := float64(contentLen) / effective
	count := int(n)
	if float64(count) < n {
		count++
	}
	return count
}

// Split divides content into an ordered sequence of overlapping chunks.
func Split(content string, opts Options) []Chunk {
	if len(content) <= opts.MaxChunkSize {
		return []Chunk{{Index: 1, Total: 1, Content: content, Start: 0, End: len(content), SplitMethod: "exact"}}
	}

	boundaries := opts.Boundaries
	if len(boundaries) == 0 {
		boundaries = DefaultBoundaries
	}

	var chunks []Chunk
	start := 0
	forced := false

	for i := 0; i < maxIterations && start < len(content); i++ {
		targetEnd := start + opts.MaxChunkSize
		if targetEnd >= len(content) {
			chunks = append(chunks, Chunk{Content: content[start:], Start: start, End: len(content), SplitMethod: "exact"})
			start = len(content)
			break
		}

		chunkEnd, method := findBoundary(content, start, targetEnd, opts, boundaries)
		chunks = append(chunks, Chunk{Content: content[start:chunkEnd], Start: start, End: chunkEnd, SplitMethod: method})

		nextStart := start + opts.MinChunkSize
		if alt := chunkEnd - opts.OverlapSize; alt > nextStart {
			nextStart = alt
		}
		if nextStart <= start {
			nextStart = start + 1 // guarantee monotonic progress
		}
		start = nextStart

		if i == maxIterations-1 && start < len(content) {
			forced = true
		}
	}

	if start < len(content) {
		chunks = append(chunks, Chunk{Content: content[start:], Start: start, End: len(content), SplitMethod: "forced"})
		forced = true
	}

	total := len(chunks)
	for i := range chunks {
		chunks[i].Index = i + 1
		chunks[i].Total = total
		chunks[i].Continuation = i > 0
		if forced && i == total-1 {
			chunks[i].SplitMethod = "forced"
		}
	}
	return chunks
}

// findBoundary searches [targetEnd-overlap, targetEnd+overlap] (clamped to
// the content bounds) for the boundary string, from the preferred list,
// whose split point is closest to targetEnd and yields a chunk of at
// least MinChunkSize. Falls back to an exact cut at targetEnd.
func findBoundary(content string, start, targetEnd int, opts Options, boundaries []string) (int, string) {
	winStart := targetEnd - opts.OverlapSize
	if winStart < start {
		winStart = start
	}
	winEnd := targetEnd + opts.OverlapSize
	if winEnd > len(content) {
		winEnd = len(content)
	}
	window := content[winStart:winEnd]

	for _, b := range boundaries {
		bestPos := -1
		bestDist := -1
		searchFrom := 0
		for {
			idx := strings.Index(window[searchFrom:], b)
			if idx < 0 {
				break
			}
			absIdx := winStart + searchFrom + idx + len(b)
			searchFrom += idx + len(b)
			if absIdx-start < opts.MinChunkSize {
				continue
			}
			dist := absIdx - targetEnd
			if dist < 0 {
				dist = -dist
			}
			if bestPos == -1 || dist < bestDist {
				bestPos = absIdx
				bestDist = dist
			}
		}
		if bestPos != -1 {
			return bestPos, "boundary"
		}
	}
	return targetEnd, "exact"
}

// Reassemble sorts chunks by index and concatenates their content with a
// visible separator, for verifying round-trip content preservation.
func Reassemble(chunks []Chunk) string {
	sorted := make([]Chunk, len(chunks))
	copy(sorted, chunks)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Index < sorted[j-1].Index; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	parts := make([]string, len(sorted))
	for i, c := range sorted {
		parts[i] = c.Content
	}
	return strings.Join(parts, separator)
}
