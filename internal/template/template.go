// Copyright 2025 Ian Lewis
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

// Package template substitutes "{{name}}" placeholders in page shells.
package template

import (
	"regexp"
	"strings"
)

var placeholder = regexp.MustCompile(`\{\{([^}]*)\}\}`)

// Context maps placeholder names to their values. Names are lower case.
type Context map[string]string

// Execute replaces every "{{name}}" placeholder in shell whose trimmed, lower
// cased name is in ctx. Unknown placeholders are left as is. Substitution is
// single level: values are not scanned for placeholders.
func Execute(shell string, ctx Context) string {
	matches := placeholder.FindAllStringSubmatchIndex(shell, -1)
	if len(matches) == 0 {
		return shell
	}

	// Replace from the end so earlier match positions stay valid.
	out := shell
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		name := strings.ToLower(strings.TrimSpace(shell[m[2]:m[3]]))
		value, ok := ctx[name]
		if !ok {
			continue
		}
		out = out[:m[0]] + value + out[m[1]:]
	}
	return out
}
