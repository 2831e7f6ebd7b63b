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
	"regexp"
	"strings"
)

var redirectPattern = regexp.MustCompile(`(?i)^\s*#redirect\s*:?\s*\[\[([^\]|\n]+)(?:\|[^\]\n]*)?\]\]`)

// Parse parses the markup in src and returns its top level nodes.
func Parse(src string) []Node {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	p := &parser{lines: logicalLines(src)}

	if m := redirectPattern.FindStringSubmatchIndex(p.lines[0]); m != nil {
		p.out = append(p.out, &Redirect{
			Target: strings.TrimSpace(p.lines[0][m[2]:m[3]]),
		})
		p.lines[0] = p.lines[0][m[1]:]
	}

	p.parse()
	return p.out
}

// parser splits markup into blocks. Inline markup within blocks is handled
// by parseInline.
type parser struct {
	lines []string
	pos   int
	out   []Node

	// para holds the lines of the paragraph being read.
	para []string

	// paraBreak is set after a blank line that follows content.
	paraBreak bool
}

func (p *parser) parse() {
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			p.endParagraph()
			p.paraBreak = len(p.out) > 0
			p.pos++
			continue
		}

		if strings.HasPrefix(strings.TrimLeft(line, " \t"), "{|") {
			p.endParagraph()
			p.block(p.table())
			continue
		}

		if h, ok := parseHeading(line); ok {
			p.endParagraph()
			p.block(h)
			p.pos++
			continue
		}

		switch c := line[0]; {
		case strings.HasPrefix(line, "----"):
			p.endParagraph()
			p.block(&HorizontalDivider{})
			if rest := strings.TrimLeft(line, "-"); strings.TrimSpace(rest) != "" {
				p.para = append(p.para, rest)
			}
			p.pos++
		case isListByte(c):
			p.endParagraph()
			p.block(p.list()...)
		case c == ' ':
			p.endParagraph()
			p.block(p.preformatted())
		default:
			p.para = append(p.para, line)
			p.pos++
		}
	}
	p.endParagraph()
}

// block appends block level nodes.
func (p *parser) block(nodes ...Node) {
	p.paraBreak = false
	p.out = append(p.out, nodes...)
}

func (p *parser) endParagraph() {
	if len(p.para) == 0 {
		return
	}
	if p.paraBreak {
		p.out = append(p.out, &ParagraphBreak{})
		p.paraBreak = false
	}
	p.out = append(p.out, parseInline(strings.Join(p.para, "\n"))...)
	p.para = nil
}

func (p *parser) preformatted() Node {
	var lines []string
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		if line == "" || line[0] != ' ' || strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line[1:])
		p.pos++
	}
	return &Preformatted{Nodes: parseInline(strings.Join(lines, "\n"))}
}

// parseHeading parses a line like "== Title ==". The level is the smaller
// of the two runs of '=', at most 6.
func parseHeading(line string) (*Heading, bool) {
	t := strings.TrimRight(line, " \t")
	if len(t) < 3 || t[0] != '=' || t[len(t)-1] != '=' {
		return nil, false
	}
	opening := len(t) - len(strings.TrimLeft(t, "="))
	if opening == len(t) {
		return nil, false
	}
	closing := len(t) - len(strings.TrimRight(t, "="))
	level := min(opening, closing, 6)

	inner := strings.TrimSpace(t[level : len(t)-level])
	if inner == "" {
		return nil, false
	}
	return &Heading{
		Level: level,
		Nodes: parseInline(inner),
	}, true
}
