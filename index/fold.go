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

package index

import (
	"unicode"
	"unicode/utf8"
)

// equalFold reports whether a and b have the same length and are equal rune by
// rune ignoring case. It does not allocate.
func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for a != "" && b != "" {
		ar, an := utf8.DecodeRuneInString(a)
		br, bn := utf8.DecodeRuneInString(b)
		if ar != br && unicode.ToLower(ar) != unicode.ToLower(br) {
			return false
		}
		a = a[an:]
		b = b[bn:]
	}
	return a == "" && b == ""
}

// hasPrefixFold reports whether s begins with prefix ignoring case.
func hasPrefixFold(s, prefix string) bool {
	for prefix != "" {
		if s == "" {
			return false
		}
		pr, pn := utf8.DecodeRuneInString(prefix)
		sr, sn := utf8.DecodeRuneInString(s)
		if pr != sr && unicode.ToLower(pr) != unicode.ToLower(sr) {
			return false
		}
		prefix = prefix[pn:]
		s = s[sn:]
	}
	return true
}
