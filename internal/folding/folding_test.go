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

package folding

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/transform"
)

func TestSpaceFolder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "no spaces",
			input:    "Rust",
			expected: "Rust",
		},
		{
			name:     "leading and trailing",
			input:    " \t Rust \n",
			expected: "Rust",
		},
		{
			name:     "internal runs",
			input:    "Rust  (programming \t\n language)",
			expected: "Rust (programming language)",
		},
		{
			name:     "unicode spaces",
			input:    "Tōkyō　Tower",
			expected: "Tōkyō Tower",
		},
		{
			name:     "only spaces",
			input:    "   ",
			expected: "",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, _, err := transform.String(&SpaceFolder{}, test.input)
			if err != nil {
				t.Fatalf("transform.String: %v", err)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("transform.String (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestSpaceFolder_shortDst(t *testing.T) {
	t.Parallel()

	// Large input forces the transformer to be called with small buffers.
	input := strings.Repeat("a  b\t", 4096)
	expected := strings.TrimSpace(strings.Repeat("a b ", 4096))

	got, _, err := transform.String(&SpaceFolder{}, input)
	if err != nil {
		t.Fatalf("transform.String: %v", err)
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Fatalf("transform.String (-want, +got):\n%s", diff)
	}
}

func TestTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"Rust_(programming_language)", "Rust (programming language)"},
		{"_Leading_and_trailing_", "Leading and trailing"},
		{"Double__underscore", "Double underscore"},
		{"Already clean", "Already clean"},
		{"Category:Foo_bar", "Category:Foo bar"},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, Title(test.input)); diff != "" {
				t.Fatalf("Title (-want, +got):\n%s", diff)
			}
		})
	}
}
