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

// listLine is a line of a list with its prefix of list markers split off.
type listLine struct {
	prefix  string
	content string
}

func isListByte(c byte) bool {
	return c == '*' || c == '#' || c == ':' || c == ';'
}

// list parses the run of list lines at the current position. Each change of
// list type at the top level starts a new list.
func (p *parser) list() []Node {
	var lines []listLine
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		if line == "" || !isListByte(line[0]) {
			break
		}
		lines = append(lines, splitListLine(line)...)
		p.pos++
	}
	return buildLists(lines)
}

// splitListLine splits off the list markers. A ";term : details" line is
// returned as a term line and a details line.
func splitListLine(line string) []listLine {
	n := 0
	for n < len(line) && isListByte(line[n]) {
		n++
	}
	l := listLine{prefix: line[:n], content: line[n:]}
	if l.prefix[n-1] != ';' {
		return []listLine{l}
	}

	k := indexTopLevel(l.content, ":")
	if k < 0 {
		return []listLine{l}
	}
	return []listLine{
		{prefix: l.prefix, content: l.content[:k]},
		{prefix: l.prefix[:n-1] + ":", content: l.content[k+1:]},
	}
}

// sameList reports whether markers a and b belong in the same list.
func sameList(a, b byte) bool {
	if a == b {
		return true
	}
	return (a == ';' || a == ':') && (b == ';' || b == ':')
}

func buildLists(lines []listLine) []Node {
	var out []Node
	for i := 0; i < len(lines); {
		kind := lines[i].prefix[0]
		j := i + 1
		for j < len(lines) && sameList(kind, lines[j].prefix[0]) {
			j++
		}
		out = append(out, buildList(kind, lines[i:j]))
		i = j
	}
	return out
}

type listEntry struct {
	marker   byte
	nodes    []Node
	children []listLine
}

// buildList builds a single list. Lines with a longer prefix are nested
// under the item before them.
func buildList(kind byte, lines []listLine) Node {
	var entries []*listEntry
	for _, l := range lines {
		if len(l.prefix) == 1 {
			entries = append(entries, &listEntry{
				marker: l.prefix[0],
				nodes:  parseInline(strings.TrimSpace(l.content)),
			})
			continue
		}
		if len(entries) == 0 {
			entries = append(entries, &listEntry{marker: l.prefix[0]})
		}
		last := entries[len(entries)-1]
		last.children = append(last.children, listLine{
			prefix:  l.prefix[1:],
			content: l.content,
		})
	}

	for _, e := range entries {
		if len(e.children) > 0 {
			e.nodes = append(e.nodes, buildLists(e.children)...)
		}
	}

	switch kind {
	case '*':
		return &UnorderedList{Items: listItems(entries)}
	case '#':
		return &OrderedList{Items: listItems(entries)}
	}

	dl := &DefinitionList{}
	for _, e := range entries {
		typ := Details
		if e.marker == ';' {
			typ = Term
		}
		dl.Items = append(dl.Items, DefinitionListItem{
			Type:  typ,
			Nodes: e.nodes,
		})
	}
	return dl
}

func listItems(entries []*listEntry) []ListItem {
	items := make([]ListItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, ListItem{Nodes: e.nodes})
	}
	return items
}
