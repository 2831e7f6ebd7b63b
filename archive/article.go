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

package archive

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Article is a single page read from the dump.
type Article struct {
	// ID is the page id.
	ID uint64

	// Title is the page title.
	Title string

	// LastChangedAt is the timestamp of the page's revision.
	LastChangedAt time.Time

	// LastChangedBy is the username of the revision's contributor.
	LastChangedBy string

	// Body is the revision's raw wikitext.
	Body string
}

const (
	// Blocks hold a run of pages with no root element. They are wrapped in a
	// synthetic root before parsing.
	rootOpen  = `<root xmlns="">`
	rootClose = `</root>`

	// The last block of a dump also holds the dump's closing tag.
	dumpClose = "</mediawiki>"
)

type xmlPage struct {
	ID       *string      `xml:"id"`
	Title    *string      `xml:"title"`
	Revision *xmlRevision `xml:"revision"`
}

type xmlRevision struct {
	Text        *string         `xml:"text"`
	Timestamp   *string         `xml:"timestamp"`
	Contributor *xmlContributor `xml:"contributor"`
}

type xmlContributor struct {
	Username *string `xml:"username"`
}

// findArticle scans the pages in a decompressed block for the page with the
// given id.
func findArticle(block []byte, id uint64) (*Article, error) {
	want := strconv.FormatUint(id, 10)

	block = bytes.TrimRightFunc(block, isSpace)
	block = bytes.TrimSuffix(block, []byte(dumpClose))

	d := xml.NewDecoder(io.MultiReader(
		strings.NewReader(rootOpen),
		bytes.NewReader(block),
		strings.NewReader(rootClose),
	))

	depth := 0
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				depth++
				continue
			}
			var p xmlPage
			if err := d.DecodeElement(&p, &t); err != nil {
				return nil, fmt.Errorf("%w: decoding <%s>: %w", ErrParse, t.Name.Local, err)
			}
			if p.ID != nil && *p.ID == want {
				return p.article()
			}
		case xml.EndElement:
			depth--
		}
	}

	return nil, fmt.Errorf("%w: page %d", ErrArticleNotFound, id)
}

func (p *xmlPage) article() (*Article, error) {
	if p.ID == nil {
		return nil, &MissingPropertyError{Field: "id"}
	}
	id, err := strconv.ParseUint(strings.TrimSpace(*p.ID), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: id: %w", ErrParse, err)
	}
	if p.Title == nil {
		return nil, &MissingPropertyError{Field: "title"}
	}

	rev := p.Revision
	if rev == nil {
		return nil, &MissingPropertyError{Field: "revision"}
	}
	if rev.Text == nil {
		return nil, &MissingPropertyError{Field: "text"}
	}
	if rev.Timestamp == nil {
		return nil, &MissingPropertyError{Field: "timestamp"}
	}
	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(*rev.Timestamp))
	if err != nil {
		return nil, fmt.Errorf("%w: timestamp: %w", ErrParse, err)
	}
	if rev.Contributor == nil {
		return nil, &MissingPropertyError{Field: "contributor"}
	}
	if rev.Contributor.Username == nil {
		return nil, &MissingPropertyError{Field: "username"}
	}

	return &Article{
		ID:            id,
		Title:         *p.Title,
		LastChangedAt: ts,
		LastChangedBy: *rev.Contributor.Username,
		Body:          *rev.Text,
	}, nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
