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
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// magicWords are the recognized "__WORD__" behavior switches.
var magicWords = map[string]bool{
	"NOTOC":                true,
	"FORCETOC":             true,
	"TOC":                  true,
	"NOEDITSECTION":        true,
	"NEWSECTIONLINK":       true,
	"NONEWSECTIONLINK":     true,
	"NOGALLERY":            true,
	"HIDDENCAT":            true,
	"EXPECTUNUSEDCATEGORY": true,
	"NOCONTENTCONVERT":     true,
	"NOCC":                 true,
	"NOTITLECONVERT":       true,
	"NOTC":                 true,
	"INDEX":                true,
	"NOINDEX":              true,
	"STATICREDIRECT":       true,
	"DISAMBIG":             true,
	"NOGLOBAL":             true,
	"EXPECTUNUSEDTEMPLATE": true,
}

var urlSchemes = []string{
	"http://",
	"https://",
	"ftp://",
	"ftps://",
	"sftp://",
	"irc://",
	"ircs://",
	"news:",
	"mailto:",
	"gopher://",
	"//",
}

var imageOption = regexp.MustCompile(`^(?:thumb|thumbnail|frame|framed|frameless|border|left|right|center|centre|none|baseline|sub|super|top|text-top|middle|bottom|text-bottom|upright|\d*x?\d+px|(?:upright|alt|link|page|lang|class|thumbtime|start|end)=.*)$`)

// maxSchemeLen is the length of the longest entry in urlSchemes.
var maxSchemeLen = func() int {
	n := 0
	for _, s := range urlSchemes {
		n = max(n, len(s))
	}
	return n
}()

// inline parses markup that does not span block structure.
type inline struct {
	s    string
	out  []Node
	text strings.Builder

	braces   *pairTable
	brackets *pairTable
	tags     *closeFinder

	// linkStop is the index of the first ']' or '\n' at or after linkFrom,
	// or -1 if there is none.
	linkFrom int
	linkStop int
}

// parseInline parses s as inline markup.
func parseInline(s string) []Node {
	p := &inline{
		s:        s,
		tags:     newCloseFinder(s),
		linkFrom: -1,
	}
	p.parse()
	return p.out
}

func (p *inline) matchBraces(i int) int {
	if p.braces == nil {
		p.braces = newPairTable(p.s, '{', '}')
	}
	return p.braces.match(i)
}

func (p *inline) matchBrackets(i int) int {
	if p.brackets == nil {
		p.brackets = newPairTable(p.s, '[', ']')
	}
	return p.brackets.match(i)
}

// externalLinkEnd returns the index relative to from of the first ']' or
// '\n' at or after from, or -1.
func (p *inline) externalLinkEnd(from int) int {
	if p.linkFrom < 0 || from < p.linkFrom || p.linkStop >= 0 && from > p.linkStop {
		p.linkFrom = from
		p.linkStop = -1
		if k := strings.IndexAny(p.s[from:], "]\n"); k >= 0 {
			p.linkStop = from + k
		}
	}
	if p.linkStop < 0 {
		return -1
	}
	return p.linkStop - from
}

func (p *inline) parse() {
	s := p.s
	for i := 0; i < len(s); {
		k := strings.IndexAny(s[i:], "'<{[&_")
		if k < 0 {
			p.text.WriteString(s[i:])
			break
		}
		p.text.WriteString(s[i : i+k])
		i += k

		if next := p.special(i); next > i {
			i = next
			continue
		}
		p.text.WriteByte(s[i])
		i++
	}
	p.flush()
}

func (p *inline) flush() {
	if p.text.Len() > 0 {
		p.out = append(p.out, &Text{Value: p.text.String()})
		p.text.Reset()
	}
}

func (p *inline) emit(n Node) {
	p.flush()
	p.out = append(p.out, n)
}

// special parses the markup starting at s[i] and returns the index just past
// it. It returns i if s[i] does not start any markup.
func (p *inline) special(i int) int {
	switch p.s[i] {
	case '\'':
		return p.quotes(i)
	case '<':
		return p.angle(i)
	case '{':
		return p.brace(i)
	case '[':
		return p.bracket(i)
	case '&':
		return p.entity(i)
	case '_':
		return p.magicWord(i)
	}
	return i
}

func (p *inline) quotes(i int) int {
	n := 0
	for i+n < len(p.s) && p.s[i+n] == '\'' {
		n++
	}
	switch {
	case n < 2:
		return i
	case n == 2:
		p.emit(&Italic{})
	case n == 3:
		p.emit(&Bold{})
	case n == 4:
		// An apostrophe followed by bold.
		p.text.WriteByte('\'')
		p.emit(&Bold{})
	case n == 5:
		p.emit(&BoldItalic{})
	default:
		p.text.WriteString(strings.Repeat("'", n-5))
		p.emit(&BoldItalic{})
	}
	return i + n
}

func (p *inline) angle(i int) int {
	s := p.s
	if strings.HasPrefix(s[i:], commentOpen) {
		start := i + len(commentOpen)
		p.emit(&Comment{})
		end := strings.Index(s[start:], commentClose)
		if end < 0 {
			if start < len(s) {
				p.emit(&Text{Value: s[start:]})
			}
			return len(s)
		}
		if end > 0 {
			p.emit(&Text{Value: s[start : start+end]})
		}
		p.emit(&Comment{})
		return start + end + len(commentClose)
	}

	if strings.HasPrefix(s[i:], "</") {
		name, end, ok := parseTagClose(s, i)
		if !ok || !htmlTags[name] && !isExtensionTag(name) {
			return i
		}
		p.emit(&EndTag{Name: name})
		return end
	}

	t, ok := parseTagOpen(s, i)
	if !ok {
		return i
	}
	switch {
	case isExtensionTag(t.name):
		if t.selfClosing {
			p.emit(&Tag{Name: t.name})
			return t.end
		}
		start, end := p.tags.find(t.end, t.name)
		if start < 0 {
			p.emit(&StartTag{Name: t.name})
			return t.end
		}
		content := s[t.end:start]
		var nodes []Node
		switch {
		case rawTags[t.name]:
			if content != "" {
				nodes = []Node{&Text{Value: content}}
			}
		default:
			nodes = Parse(content)
		}
		p.emit(&Tag{Name: t.name, Nodes: nodes})
		return end
	case htmlTags[t.name]:
		p.emit(&StartTag{Name: t.name})
		return t.end
	}
	return i
}

func (p *inline) brace(i int) int {
	s := p.s
	n := 0
	for n < 4 && i+n < len(s) && s[i+n] == '{' {
		n++
	}
	switch {
	case n < 2:
		return i
	case n > 3:
		// "{{{{a}}}}" is a brace around a parameter.
		p.text.WriteByte('{')
		return i + 1
	}

	end := p.matchBraces(i)
	if end < 0 {
		p.text.WriteString(s[i : i+n])
		return i + n
	}

	if n == 3 {
		if !strings.HasSuffix(s[:end], "}}}") || end-i < 6 {
			p.text.WriteByte('{')
			return i + 1
		}
		parts := splitTopLevel(s[i+3:end-3], "|")
		param := &Parameter{
			Name: parseInline(strings.TrimSpace(parts[0])),
		}
		if len(parts) > 1 {
			param.Default = parseInline(strings.Join(parts[1:], "|"))
		}
		p.emit(param)
		return end
	}

	if !strings.HasSuffix(s[:end], "}}") || end-i < 4 {
		p.text.WriteString("{{")
		return i + 2
	}
	parts := splitTopLevel(s[i+2:end-2], "|")
	t := &Template{
		Name: parseInline(strings.TrimSpace(parts[0])),
	}
	for _, arg := range parts[1:] {
		if k := indexTopLevel(arg, "="); k >= 0 {
			t.Arguments = append(t.Arguments, Argument{
				Name:  parseInline(strings.TrimSpace(arg[:k])),
				Value: parseInline(arg[k+1:]),
			})
			continue
		}
		t.Arguments = append(t.Arguments, Argument{
			Value: parseInline(arg),
		})
	}
	p.emit(t)
	return end
}

func (p *inline) bracket(i int) int {
	s := p.s
	if strings.HasPrefix(s[i:], "[[") {
		end := p.matchBrackets(i)
		if end < 0 || end-i < 5 || !strings.HasSuffix(s[:end], "]]") || !p.link(s[i+2:end-2]) {
			p.text.WriteString("[[")
			return i + 2
		}
		return end
	}

	rest := s[i+1:]
	if hasAnyPrefix(strings.ToLower(rest[:min(len(rest), maxSchemeLen)]), urlSchemes) == "" {
		return i
	}
	k := p.externalLinkEnd(i + 1)
	if k < 0 || rest[k] != ']' {
		return i
	}
	url, text, _ := strings.Cut(rest[:k], " ")
	ext := &ExternalLink{URL: url}
	if text = strings.TrimSpace(text); text != "" {
		ext.Nodes = parseInline(text)
	} else {
		ext.Nodes = []Node{&Text{Value: url}}
	}
	p.emit(ext)
	return i + 1 + k + 1
}

// link parses the inside of "[[...]]". It reports false if inner is not a
// valid link.
func (p *inline) link(inner string) bool {
	target, text, hasText := inner, "", false
	if k := indexTopLevel(inner, "|"); k >= 0 {
		target, text, hasText = inner[:k], inner[k+1:], true
	}
	target = strings.TrimSpace(target)
	if target == "" || strings.ContainsAny(target, "[]\n") {
		return false
	}

	if strings.HasPrefix(target, ":") {
		target = strings.TrimSpace(target[1:])
		p.emit(&Link{Target: target, Text: linkText(target, text, hasText)})
		return true
	}

	ns, _, _ := strings.Cut(target, ":")
	switch strings.ToLower(strings.TrimSpace(ns)) {
	case "file", "image":
		img := &Image{Target: target}
		if hasText {
			img.Text = imageCaption(text)
		}
		p.emit(img)
	case "category":
		cat := &Category{Target: target}
		if hasText {
			cat.Ordinal = parseInline(text)
		}
		p.emit(cat)
	default:
		p.emit(&Link{Target: target, Text: linkText(target, text, hasText)})
	}
	return true
}

func linkText(target, text string, hasText bool) []Node {
	if !hasText || strings.TrimSpace(text) == "" {
		return []Node{&Text{Value: target}}
	}
	return parseInline(text)
}

// imageCaption returns the caption of a file link: its last argument that is
// not an image option.
func imageCaption(text string) []Node {
	parts := splitTopLevel(text, "|")
	last := strings.TrimSpace(parts[len(parts)-1])
	if last == "" || imageOption.MatchString(last) {
		return nil
	}
	return parseInline(last)
}

func (p *inline) entity(i int) int {
	s := p.s
	limit := min(len(s), i+34)
	end := strings.IndexByte(s[i:limit], ';')
	if end < 2 {
		return i
	}
	name := s[i+1 : i+end]
	for j := 0; j < len(name); j++ {
		c := name[j]
		if !(c == '#' && j == 0) && !isTagNameByte(c, false) {
			return i
		}
	}

	cand := s[i : i+end+1]
	r := html.UnescapeString(cand)
	if r == cand {
		return i
	}
	c, size := utf8.DecodeRuneInString(r)
	if size != len(r) {
		return i
	}
	p.emit(&CharacterEntity{Character: c})
	return i + end + 1
}

func (p *inline) magicWord(i int) int {
	s := p.s
	if !strings.HasPrefix(s[i:], "__") {
		return i
	}
	j := i + 2
	for j < len(s) && 'A' <= s[j] && s[j] <= 'Z' {
		j++
	}
	name := s[i+2 : j]
	if !strings.HasPrefix(s[j:], "__") || !magicWords[name] {
		return i
	}
	p.emit(&MagicWord{Name: name})
	return j + 2
}
