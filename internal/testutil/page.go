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

// Package testutil builds index files and dumps for tests.
package testutil

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"slices"
)

// Page describes a page in a test dump.
type Page struct {
	ID        uint64
	Title     string
	Timestamp string
	Username  string
	Text      string

	// Omit lists elements to leave out of the page: "id", "title",
	// "revision", "text", "timestamp", "contributor" or "username".
	Omit []string
}

func (p *Page) has(name string) bool {
	return !slices.Contains(p.Omit, name)
}

// MakePage returns the XML of the page as it appears in a dump.
func MakePage(p *Page) []byte {
	var b bytes.Buffer

	b.WriteString("  <page>\n")
	if p.has("title") {
		writeElement(&b, 4, "title", p.Title)
	}
	b.WriteString("    <ns>0</ns>\n")
	if p.has("id") {
		writeElement(&b, 4, "id", fmt.Sprint(p.ID))
	}
	if p.has("revision") {
		b.WriteString("    <revision>\n")
		writeElement(&b, 6, "id", fmt.Sprint(p.ID*100))
		if p.has("timestamp") {
			writeElement(&b, 6, "timestamp", p.Timestamp)
		}
		if p.has("contributor") {
			b.WriteString("      <contributor>\n")
			if p.has("username") {
				writeElement(&b, 8, "username", p.Username)
			}
			b.WriteString("      </contributor>\n")
		}
		b.WriteString("      <model>wikitext</model>\n")
		b.WriteString("      <format>text/x-wiki</format>\n")
		if p.has("text") {
			fmt.Fprintf(&b, "      <text bytes=\"%d\" xml:space=\"preserve\">", len(p.Text))
			_ = xml.EscapeText(&b, []byte(p.Text))
			b.WriteString("</text>\n")
		}
		b.WriteString("    </revision>\n")
	}
	b.WriteString("  </page>\n")

	return b.Bytes()
}

func writeElement(b *bytes.Buffer, indent int, name, value string) {
	fmt.Fprintf(b, "%*s<%s>", indent, "", name)
	_ = xml.EscapeText(b, []byte(value))
	fmt.Fprintf(b, "</%s>\n", name)
}

// MakeBlock returns the uncompressed contents of a block holding pages.
func MakeBlock(pages ...*Page) []byte {
	var b []byte
	for _, p := range pages {
		b = append(b, MakePage(p)...)
	}
	return b
}
