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

package template

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExecute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		shell    string
		ctx      Context
		expected string
	}{
		{
			name:     "no placeholders",
			shell:    "<p>hello</p>",
			ctx:      Context{"title": "x"},
			expected: "<p>hello</p>",
		},
		{
			name:     "single",
			shell:    "<h1>{{title}}</h1>",
			ctx:      Context{"title": "Foo"},
			expected: "<h1>Foo</h1>",
		},
		{
			name:     "case and whitespace",
			shell:    "<h1>{{ Title }}</h1>",
			ctx:      Context{"title": "Foo"},
			expected: "<h1>Foo</h1>",
		},
		{
			name:     "multiple",
			shell:    "<title>{{title}}</title><main>{{content}}</main><h1>{{title}}</h1>",
			ctx:      Context{"title": "A much longer title", "content": "x"},
			expected: "<title>A much longer title</title><main>x</main><h1>A much longer title</h1>",
		},
		{
			name:     "unknown",
			shell:    "{{title}} {{other}}",
			ctx:      Context{"title": "Foo"},
			expected: "Foo {{other}}",
		},
		{
			name:     "single level",
			shell:    "{{content}}",
			ctx:      Context{"content": "{{title}}", "title": "Foo"},
			expected: "{{title}}",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, Execute(test.shell, test.ctx)); diff != "" {
				t.Fatalf("Execute (-want, +got):\n%s", diff)
			}
		})
	}
}
