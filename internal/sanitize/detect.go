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

package sanitize

import (
	"regexp"
	"strings"
)

// Category names an injection signature family flagged by Detect.
type Category string

const (
	CategorySQLInjection   Category = "sql_injection"
	CategoryShellInjection Category = "shell_injection"
	CategoryPathTraversal  Category = "path_traversal"
)

// Violation describes one matched injection signature.
type Violation struct {
	Category Category
	Pattern  string
}

var sqlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)'\s*;\s*drop\s+table`),
	regexp.MustCompile(`(?i)'\s*or\s+'?1'?\s*=\s*'?1`),
	regexp.MustCompile(`(?i)union\s+select`),
	regexp.MustCompile(`(?i);\s*(drop|delete|truncate)\s+`),
	regexp.MustCompile(`(?i)--\s*$`),
}

var shellPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\(.*\)`),
	regexp.MustCompile("`[^`]+`"),
	regexp.MustCompile(`(?i)(;|\|\||&&|\|)\s*(curl|wget|rm|eval|exec|nc|bash|sh)\b`),
}

var pathTraversalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\.\./`),
	regexp.MustCompile(`\.\.\\`),
	regexp.MustCompile(`(?i)%2e%2e%2f`),
	regexp.MustCompile(`(?i)/etc/passwd`),
}

// Detect scans serialized body for injection signatures, returning every
// match found (there may be more than one category in the same payload).
func Detect(body string) []Violation {
	var violations []Violation
	violations = append(violations, matchAll(body, CategorySQLInjection, sqlPatterns)...)
	violations = append(violations, matchAll(body, CategoryShellInjection, shellPatterns)...)
	violations = append(violations, matchAll(body, CategoryPathTraversal, pathTraversalPatterns)...)
	return violations
}

func matchAll(body string, category Category, patterns []*regexp.Regexp) []Violation {
	var out []Violation
	for _, re := range patterns {
		if re.MatchString(body) {
			out = append(out, Violation{Category: category, Pattern: re.String()})
		}
	}
	return out
}

// SerializeForDetection flattens a decoded value into a single string
// for pattern scanning; map keys are ignored, only values are scanned.
func SerializeForDetection(v any) string {
	var b strings.Builder
	serializeInto(&b, v)
	return b.String()
}

func serializeInto(b *strings.Builder, v any) {
	switch t := v.(type) {
	case string:
		b.WriteString(t)
		b.WriteByte(' ')
	case map[string]any:
		for _, val := range t {
			serializeInto(b, val)
		}
	case []any:
		for _, val := range t {
			serializeInto(b, val)
		}
	}
}
