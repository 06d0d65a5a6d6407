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
	gwerrors "github.com/lanonasis/mcp-gateway/internal/errors"
)

// Arguments runs the two-pass sanitizer over decoded tool-call arguments:
// safe rewriting, then pattern detection. It returns the rewritten
// arguments and, if a violation was found, an INVALID_INPUT error describing
// it; callers must not forward the original arguments upstream if an
// error is returned.
func Arguments(args map[string]any) (map[string]any, *gwerrors.Error) {
	rewritten := RewriteValue("", args).(map[string]any)

	if violations := Detect(SerializeForDetection(rewritten)); len(violations) > 0 {
		v := violations[0]
		e := gwerrors.New(gwerrors.KindInvalidInput, "request body matched a blocked pattern: "+string(v.Category))
		e.Details = []gwerrors.FieldError{{Field: string(v.Category), Message: "matched pattern " + v.Pattern}}
		return rewritten, e
	}

	return rewritten, nil
}
