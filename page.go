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

package wikidump

import (
	"github.com/k3a/html2text"

	"github.com/ianlewis/go-wikidump/archive"
)

// Page is a rendered article.
type Page struct {
	// Article is the article read from the dump.
	Article *archive.Article

	// HTML is the rendered article body.
	HTML string
}

// Title returns the article title.
func (p *Page) Title() string {
	return p.Article.Title
}

// Text returns the rendered article as plain text.
func (p *Page) Text() string {
	return html2text.HTML2Text(p.HTML)
}
