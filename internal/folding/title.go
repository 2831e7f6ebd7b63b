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
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

var underscores = runes.Map(func(r rune) rune {
	if r == '_' {
		return ' '
	}
	return r
})

// NewTitleFolder returns a transformer that normalizes titles as they appear
// in article URLs. Underscores become spaces and whitespace is folded with a
// [SpaceFolder].
func NewTitleFolder() transform.Transformer {
	return transform.Chain(underscores, &SpaceFolder{})
}

// Title returns the normalized form of title.
func Title(title string) string {
	s, _, err := transform.String(NewTitleFolder(), title)
	if err != nil {
		return title
	}
	return s
}
