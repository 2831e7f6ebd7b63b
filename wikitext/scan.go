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

package wikitext

import (
	"strings"
)

const (
	commentOpen  = "<!--"
	commentClose = "-->"
)

// rawTags are extension tags whose content is kept verbatim.
var rawTags = map[string]bool{
	"nowiki":          true,
	"pre":             true,
	"math":            true,
	"chem":            true,
	"ce":              true,
	"source":          true,
	"syntaxhighlight": true,
	"score":           true,
	"timeline":        true,
	"hiero":           true,
	"graph":           true,
	"templatedata":    true,
	"mapframe":        true,
	"maplink":         true,
	"inputbox":        true,
	"categorytree":    true,
	"imagemap":        true,
}

// parsedTags are extension tags whose content is parsed as markup.
var parsedTags = map[string]bool{
	"ref":         true,
	"references":  true,
	"gallery":     true,
	"poem":        true,
	"includeonly": true,
	"noinclude":   true,
	"onlyinclude": true,
	"section":     true,
}

// htmlTags are the HTML tags allowed in markup.
var htmlTags = map[string]bool{
	"abbr": true, "b": true, "bdi": true, "bdo": true, "big": true,
	"blockquote": true, "br": true, "caption": true, "center": true,
	"cite": true, "code": true, "data": true, "dd": true, "del": true,
	"dfn": true, "div": true, "dl": true, "dt": true, "em": true,
	"font": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "hr": true, "i": true, "ins": true,
	"kbd": true, "li": true, "mark": true, "ol": true, "p": true,
	"q": true, "rb": true, "rp": true, "rt": true, "rtc": true,
	"ruby": true, "s": true, "samp": true, "small": true, "span": true,
	"strike": true, "strong": true, "sub": true, "sup": true,
	"table": true, "td": true, "th": true, "time": true, "tr": true,
	"tt": true, "u": true, "ul": true, "var": true, "wbr": true,
}

// isExtensionTag reports whether name is a raw or parsed extension tag.
func isExtensionTag(name string) bool {
	return rawTags[name] || parsedTags[name]
}

// skipComment returns the index just past the comment starting at s[i], or
// len(s) if the comment is not terminated.
func skipComment(s string, i int) int {
	end := strings.Index(s[i+len(commentOpen):], commentClose)
	if end < 0 {
		return len(s)
	}
	return i + len(commentOpen) + end + len(commentClose)
}

// pairTable answers matchPair for every opening byte of s after a single
// scan, so unclosed runs do not rescan the rest of s.
type pairTable struct {
	s                string
	opening, closing byte
	ends             map[int]int
}

func newPairTable(s string, opening, closing byte) *pairTable {
	t := &pairTable{
		s:       s,
		opening: opening,
		closing: closing,
		ends:    map[int]int{},
	}
	var stack []int
	for j := 0; j < len(s); {
		switch {
		case s[j] == opening:
			t.ends[j] = -1
			stack = append(stack, j)
			j++
		case s[j] == closing:
			j++
			if n := len(stack); n > 0 {
				t.ends[stack[n-1]] = j
				stack = stack[:n-1]
			}
		case s[j] == '<' && strings.HasPrefix(s[j:], commentOpen):
			j = skipComment(s, j)
		default:
			j++
		}
	}
	return t
}

// match returns matchPair(s, i, opening, closing).
func (t *pairTable) match(i int) int {
	if end, ok := t.ends[i]; ok {
		return end
	}
	// i was inside a comment during the scan.
	return matchPair(t.s, i, t.opening, t.closing)
}

// matchPair returns the index just past the closing byte that balances the
// opening byte at s[i], or -1 if it is never closed. Bytes are balanced one by
// one so "{{{a|{{b}}}}}" closes after the last brace.
func matchPair(s string, i int, opening, closing byte) int {
	depth := 0
	for j := i; j < len(s); {
		switch {
		case s[j] == opening:
			depth++
			j++
		case s[j] == closing:
			depth--
			j++
			if depth == 0 {
				return j
			}
		case s[j] == '<' && strings.HasPrefix(s[j:], commentOpen):
			j = skipComment(s, j)
		default:
			j++
		}
	}
	return -1
}

// indexTopLevel returns the index of the first sep in s that is not nested
// inside a link, template or comment, or -1.
func indexTopLevel(s, sep string) int {
	depth := 0
	for j := 0; j < len(s); {
		switch {
		case strings.HasPrefix(s[j:], "[[") || strings.HasPrefix(s[j:], "{{"):
			depth++
			j += 2
		case strings.HasPrefix(s[j:], "]]") || strings.HasPrefix(s[j:], "}}"):
			if depth > 0 {
				depth--
			}
			j += 2
		case strings.HasPrefix(s[j:], commentOpen):
			j = skipComment(s, j)
		case depth == 0 && strings.HasPrefix(s[j:], sep):
			return j
		default:
			j++
		}
	}
	return -1
}

// splitTopLevel splits s at every sep that is not nested inside a link,
// template or comment.
func splitTopLevel(s string, seps ...string) []string {
	var parts []string
	depth := 0
	start := 0
	for j := 0; j < len(s); {
		switch {
		case strings.HasPrefix(s[j:], "[[") || strings.HasPrefix(s[j:], "{{"):
			depth++
			j += 2
			continue
		case strings.HasPrefix(s[j:], "]]") || strings.HasPrefix(s[j:], "}}"):
			if depth > 0 {
				depth--
			}
			j += 2
			continue
		case strings.HasPrefix(s[j:], commentOpen):
			j = skipComment(s, j)
			continue
		}
		if depth == 0 {
			if sep := hasAnyPrefix(s[j:], seps); sep != "" {
				parts = append(parts, s[start:j])
				j += len(sep)
				start = j
				continue
			}
		}
		j++
	}
	return append(parts, s[start:])
}

func hasAnyPrefix(s string, prefixes []string) string {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return p
		}
	}
	return ""
}

// tagOpen is a parsed "<name attrs>" tag.
type tagOpen struct {
	name        string
	end         int
	selfClosing bool
}

// parseTagOpen parses a start tag at s[i]. The tag name is lower cased.
func parseTagOpen(s string, i int) (tagOpen, bool) {
	j := i + 1
	for j < len(s) && isTagNameByte(s[j], j == i+1) {
		j++
	}
	if j == i+1 || j >= len(s) {
		return tagOpen{}, false
	}
	if c := s[j]; c != '>' && c != '/' && c != ' ' && c != '\t' && c != '\n' {
		return tagOpen{}, false
	}

	k := strings.IndexAny(s[j:], "<>")
	if k < 0 || s[j+k] == '<' {
		return tagOpen{}, false
	}
	return tagOpen{
		name:        strings.ToLower(s[i+1 : j]),
		end:         j + k + 1,
		selfClosing: k > 0 && s[j+k-1] == '/',
	}, true
}

// parseTagClose parses an end tag "</name>" at s[i].
func parseTagClose(s string, i int) (string, int, bool) {
	j := i + 2
	for j < len(s) && isTagNameByte(s[j], j == i+2) {
		j++
	}
	if j == i+2 {
		return "", 0, false
	}
	name := strings.ToLower(s[i+2 : j])
	for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
		j++
	}
	if j >= len(s) || s[j] != '>' {
		return "", 0, false
	}
	return name, j + 1, true
}

// closeFinder finds closing tags in s. Once no "</name>" is found after some
// offset none is found after any later offset, so misses are remembered.
type closeFinder struct {
	s      string
	missed map[string]int
}

func newCloseFinder(s string) *closeFinder {
	return &closeFinder{s: s, missed: map[string]int{}}
}

// find returns findClose(s, from, name).
func (f *closeFinder) find(from int, name string) (int, int) {
	if m, ok := f.missed[name]; ok && from >= m {
		return -1, -1
	}
	start, end := findClose(f.s, from, name)
	if start < 0 {
		f.missed[name] = from
	}
	return start, end
}

// findClose returns the start and end of the first "</name>" at or after
// from, or -1, -1.
func findClose(s string, from int, name string) (int, int) {
	for from < len(s) {
		k := strings.Index(s[from:], "</")
		if k < 0 {
			break
		}
		start := from + k
		if got, end, ok := parseTagClose(s, start); ok && got == name {
			return start, end
		}
		from = start + 2
	}
	return -1, -1
}

func isTagNameByte(c byte, first bool) bool {
	if 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' {
		return true
	}
	return !first && '0' <= c && c <= '9'
}

// matchExtensionTag returns the index just past the closing tag of the
// extension tag starting at s[i], or -1.
func matchExtensionTag(f *closeFinder, i int) int {
	t, ok := parseTagOpen(f.s, i)
	if !ok || t.selfClosing || !isExtensionTag(t.name) {
		return -1
	}
	_, end := f.find(t.end, t.name)
	return end
}

// logicalLines splits s into lines. Newlines inside templates, comments and
// extension tags do not end a line.
func logicalLines(s string) []string {
	var lines []string
	braces := newPairTable(s, '{', '}')
	tags := newCloseFinder(s)
	start := 0
	for i := 0; i < len(s); {
		switch c := s[i]; {
		case c == '\n':
			lines = append(lines, s[start:i])
			i++
			start = i
		case c == '<' && strings.HasPrefix(s[i:], commentOpen):
			i = skipComment(s, i)
		case c == '<':
			if end := matchExtensionTag(tags, i); end > 0 {
				i = end
			} else {
				i++
			}
		case c == '{' && strings.HasPrefix(s[i:], "{{"):
			if end := braces.match(i); end > 0 {
				i = end
			} else {
				i += 2
			}
		default:
			i++
		}
	}
	return append(lines, s[start:])
}
