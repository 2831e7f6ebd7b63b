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

// Node is a node in a parsed document.
type Node interface {
	node()
}

// Text is literal text.
type Text struct {
	Value string
}

// Bold toggles bold text ('''). It does not say whether bold text starts or
// ends.
type Bold struct{}

// Italic toggles italic text ('').
type Italic struct{}

// BoldItalic toggles bold italic text (''''').
type BoldItalic struct{}

// Comment marks the start or end of an HTML comment. The comment's text is a
// Text node between two Comment markers.
type Comment struct{}

// Heading is a section heading such as "== Title ==".
type Heading struct {
	Level int
	Nodes []Node
}

// ListItem is an item of an ordered or unordered list.
type ListItem struct {
	Nodes []Node
}

// OrderedList is a list of "#" items.
type OrderedList struct {
	Items []ListItem
}

// UnorderedList is a list of "*" items.
type UnorderedList struct {
	Items []ListItem
}

// DefinitionListItemType is the type of a definition list item.
type DefinitionListItemType int

const (
	// Term is a ";" item.
	Term DefinitionListItemType = iota

	// Details is a ":" item.
	Details
)

// DefinitionListItem is an item of a definition list.
type DefinitionListItem struct {
	Type  DefinitionListItemType
	Nodes []Node
}

// DefinitionList is a list of ";" and ":" items.
type DefinitionList struct {
	Items []DefinitionListItem
}

// Preformatted is a run of lines starting with a space.
type Preformatted struct {
	Nodes []Node
}

// Table is a "{| ... |}" table.
type Table struct {
	Attributes []Node
	Captions   []TableCaption
	Rows       []TableRow
}

// TableCaption is a "|+" table caption. Attributes is nil when the caption
// has none.
type TableCaption struct {
	Attributes []Node
	Content    []Node
}

// TableRow is a table row.
type TableRow struct {
	Attributes []Node
	Cells      []TableCell
}

// TableCellType is the type of a table cell.
type TableCellType int

const (
	// Ordinary is a "|" cell.
	Ordinary TableCellType = iota

	// HeadingCell is a "!" cell.
	HeadingCell
)

// TableCell is a table cell. Attributes is nil when the cell has none.
type TableCell struct {
	Type       TableCellType
	Attributes []Node
	Content    []Node
}

// StartTag is an HTML start tag such as "<div>" or "<br/>".
type StartTag struct {
	Name string
}

// EndTag is an HTML end tag such as "</div>".
type EndTag struct {
	Name string
}

// Tag is an extension tag and its content, such as "<ref>...</ref>".
type Tag struct {
	Name  string
	Nodes []Node
}

// Link is an internal link such as "[[Target|text]]".
type Link struct {
	Target string
	Text   []Node
}

// ExternalLink is an external link such as "[https://example.com text]".
type ExternalLink struct {
	URL   string
	Nodes []Node
}

// Image is a file link such as "[[File:Example.png|thumb|caption]]".
type Image struct {
	Target string
	Text   []Node
}

// Category is a category link such as "[[Category:Example]]".
type Category struct {
	Target  string
	Ordinal []Node
}

// Redirect is a "#REDIRECT [[Target]]" marker.
type Redirect struct {
	Target string
}

// CharacterEntity is an HTML character entity such as "&amp;".
type CharacterEntity struct {
	Character rune
}

// HorizontalDivider is a "----" line.
type HorizontalDivider struct{}

// ParagraphBreak is a blank line between paragraphs.
type ParagraphBreak struct{}

// Template is a "{{name|args}}" template invocation. It is never expanded.
type Template struct {
	Name      []Node
	Arguments []Argument
}

// Argument is a template argument. Name is nil for positional arguments.
type Argument struct {
	Name  []Node
	Value []Node
}

// Parameter is a "{{{name|default}}}" template parameter reference.
type Parameter struct {
	Name    []Node
	Default []Node
}

// MagicWord is a behavior switch such as "__NOTOC__".
type MagicWord struct {
	Name string
}

func (*Text) node()              {}
func (*Bold) node()              {}
func (*Italic) node()            {}
func (*BoldItalic) node()        {}
func (*Comment) node()           {}
func (*Heading) node()           {}
func (*OrderedList) node()       {}
func (*UnorderedList) node()     {}
func (*DefinitionList) node()    {}
func (*Preformatted) node()      {}
func (*Table) node()             {}
func (*StartTag) node()          {}
func (*EndTag) node()            {}
func (*Tag) node()               {}
func (*Link) node()              {}
func (*ExternalLink) node()      {}
func (*Image) node()             {}
func (*Category) node()          {}
func (*Redirect) node()          {}
func (*CharacterEntity) node()   {}
func (*HorizontalDivider) node() {}
func (*ParagraphBreak) node()    {}
func (*Template) node()          {}
func (*Parameter) node()         {}
func (*MagicWord) node()         {}
