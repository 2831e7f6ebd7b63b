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

// tableBuilder accumulates the rows and cells of a table.
type tableBuilder struct {
	table *Table

	// row is the open row, or nil.
	row *TableRow

	// cell is the open cell or caption, or nil.
	cell *openCell
}

type openCell struct {
	caption bool
	typ     TableCellType
	attrs   []Node
	lines   []string
}

// table parses the table starting at the current line through its closing
// "|}". Nested tables are kept as content of the enclosing cell.
func (p *parser) table() *Table {
	first := strings.TrimLeft(p.lines[p.pos], " \t")
	b := &tableBuilder{
		table: &Table{Attributes: parseInline(strings.TrimSpace(first[2:]))},
	}
	p.pos++

	depth := 0
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		p.pos++
		t := strings.TrimLeft(line, " \t")

		if depth > 0 {
			switch {
			case strings.HasPrefix(t, "{|"):
				depth++
			case strings.HasPrefix(t, "|}"):
				depth--
			}
			b.appendLine(line)
			continue
		}

		switch {
		case strings.HasPrefix(t, "{|"):
			depth++
			b.appendLine(line)
		case strings.HasPrefix(t, "|}"):
			b.flushCell()
			return b.table
		case strings.HasPrefix(t, "|+"):
			b.caption(t[2:])
		case strings.HasPrefix(t, "|-"):
			b.newRow(strings.TrimLeft(t[2:], "-"))
		case strings.HasPrefix(t, "|"):
			b.cells(t[1:], Ordinary, "||")
		case strings.HasPrefix(t, "!"):
			b.cells(t[1:], HeadingCell, "!!", "||")
		default:
			b.appendLine(line)
		}
	}

	// Unterminated table.
	b.flushCell()
	return b.table
}

func (b *tableBuilder) newRow(attrs string) {
	b.flushCell()
	b.table.Rows = append(b.table.Rows, TableRow{
		Attributes: parseInline(strings.TrimSpace(attrs)),
	})
	b.row = &b.table.Rows[len(b.table.Rows)-1]
}

func (b *tableBuilder) caption(s string) {
	b.flushCell()
	attrs, content := splitCellAttributes(s)
	b.cell = &openCell{
		caption: true,
		attrs:   attrs,
		lines:   []string{content},
	}
}

// cells parses a line of one or more cells separated by seps. The last cell
// stays open for continuation lines.
func (b *tableBuilder) cells(s string, typ TableCellType, seps ...string) {
	b.flushCell()
	for _, part := range splitTopLevel(s, seps...) {
		b.flushCell()
		attrs, content := splitCellAttributes(part)
		b.cell = &openCell{
			typ:   typ,
			attrs: attrs,
			lines: []string{content},
		}
	}
}

func (b *tableBuilder) appendLine(line string) {
	if b.cell == nil {
		if strings.TrimSpace(line) == "" {
			return
		}
		b.cell = &openCell{typ: Ordinary}
	}
	b.cell.lines = append(b.cell.lines, line)
}

func (b *tableBuilder) flushCell() {
	c := b.cell
	if c == nil {
		return
	}
	b.cell = nil

	content := Parse(strings.TrimSpace(strings.Join(c.lines, "\n")))
	if c.caption {
		b.table.Captions = append(b.table.Captions, TableCaption{
			Attributes: c.attrs,
			Content:    content,
		})
		return
	}

	if b.row == nil {
		b.newRow("")
	}
	b.row.Cells = append(b.row.Cells, TableCell{
		Type:       c.typ,
		Attributes: c.attrs,
		Content:    content,
	})
}

// splitCellAttributes splits "attrs | content". The separator must not be
// nested inside a link or template.
func splitCellAttributes(s string) ([]Node, string) {
	k := indexTopLevel(s, "|")
	if k < 0 {
		return nil, s
	}
	return parseInline(strings.TrimSpace(s[:k])), s[k+1:]
}
