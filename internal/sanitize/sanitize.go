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

// Package sanitize performs best-effort hygiene on incoming tool-call
// arguments: a safe-rewriting pass that neutralizes script tags and event
// handler attributes while preserving content formatting, followed by a
// pattern detector that rejects payloads carrying SQL-injection,
// shell-injection, or path-traversal signatures. This is defense in
// depth, never an authorization boundary.
package sanitize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// contentFields receive lighter-touch rewriting (script tags and handler
// attributes stripped, formatting otherwise preserved); every other
// string field is HTML-escaped and trimmed.
var contentFields = map[string]bool{
	"content":     true,
	"description": true,
	"text":        true,
	"body":        true,
}

var (
	scriptTagRe   = regexp.MustCompile(`(?i)<script[^>]*>.*?</script>`)
	eventAttrRe   = regexp.MustCompile(`(?i)\son\w+\s*=\s*("[^"]*"|'[^']*'|[^\s>]+)`)
	jsSchemeRe    = regexp.MustCompile(`(?i)javascript:`)
	controlCharRe = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)
)

// confusables maps common homoglyph characters onto their ASCII
// equivalents, supplementing Unicode NFKC normalization for confusables
// NFKC alone does not fold (e.g. Cyrillic lookalikes).
var confusables = map[rune]rune{
	'а': 'a', 'е': 'e', 'о': 'o', 'р': 'p', 'с': 'c', 'у': 'y', 'х': 'x', // Cyrillic
	'Α': 'A', 'Β': 'B', 'Ε': 'E', 'Ζ': 'Z', 'Η': 'H', 'Ι': 'I', 'Κ': 'K', // Greek
}

// foldConfusables normalizes s to NFKC and folds known homoglyphs to
// their ASCII look-alike, so obfuscated injection attempts normalize
// before pattern detection runs.
func foldConfusables(s string) string {
	s = norm.NFKC.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if ascii, ok := confusables[r]; ok {
			r = ascii
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RewriteString applies the safe-rewriting pass to a single string value.
// field names the struct/map key the value came from, used to choose
// between content-field and generic-field handling.
func RewriteString(field, value string) string {
	value = foldConfusables(value)
	value = controlCharRe.ReplaceAllString(value, "")

	if contentFields[strings.ToLower(field)] {
		value = scriptTagRe.ReplaceAllString(value, "")
		value = eventAttrRe.ReplaceAllString(value, "")
		value = jsSchemeRe.ReplaceAllString(value, "")
		return value
	}

	value = scriptTagRe.ReplaceAllString(value, "")
	value = htmlEscape(value)
	return strings.TrimSpace(value)
}

func htmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(s)
}

// RewriteValue recursively rewrites every string found in a decoded
// JSON-like value (map[string]any, []any, or string); other types pass
// through unchanged.
func RewriteValue(field string, v any) any {
	switch t := v.(type) {
	case string:
		return RewriteString(field, t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = RewriteValue(k, val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = RewriteValue(field, val)
		}
		return out
	default:
		return v
	}
}
