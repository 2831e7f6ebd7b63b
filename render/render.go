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

package render

import (
	"html"
	"net/url"
	"strconv"
	"strings"

	"github.com/ianlewis/go-wikidump/archive"
	"github.com/ianlewis/go-wikidump/wikitext"
)

// Options are options for a Renderer.
type Options struct {
	// ArticleURL returns the href of the article with the given title. It
	// is used for links, categories and redirects.
	ArticleURL func(title string) string
}

// DefaultOptions are the default options for a Renderer.
var DefaultOptions = &Options{
	ArticleURL: ArticleURL,
}

// ArticleURL returns the path that serves the article with the given title.
func ArticleURL(title string) string {
	return "/article/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))
}

// Renderer renders markup to HTML. A Renderer is safe for concurrent use.
type Renderer struct {
	articleURL func(string) string
}

// New returns a new Renderer. If opts is nil, DefaultOptions is used.
func New(opts *Options) *Renderer {
	if opts == nil {
		opts = DefaultOptions
	}
	r := &Renderer{articleURL: opts.ArticleURL}
	if r.articleURL == nil {
		r.articleURL = ArticleURL
	}
	return r
}

// Render renders the body of the article.
func (r *Renderer) Render(a *archive.Article) string {
	return r.RenderMarkup(a.Body)
}

// RenderMarkup parses and renders markup.
func (r *Renderer) RenderMarkup(src string) string {
	return r.RenderNodes(wikitext.Parse(src))
}

// RenderNodes renders parsed markup.
func (r *Renderer) RenderNodes(nodes []wikitext.Node) string {
	w := &walker{articleURL: r.articleURL}
	w.nodes(nodes)
	return w.b.String()
}

// Render renders the body of the article with the default options.
func Render(a *archive.Article) string {
	return New(nil).Render(a)
}

// state holds the inline formatting toggles.
type state struct {
	bold       bool
	italic     bool
	boldItalic bool
	comment    bool
}

// walker holds the state of a single render.
type walker struct {
	articleURL func(string) string
	state      state
	b          strings.Builder
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

func (w *walker) toggle(open *bool, opening, closing string) {
	*open = !*open
	if *open {
		w.b.WriteString(opening)
	} else {
		w.b.WriteString(closing)
	}
}

func (w *walker) nodes(nodes []wikitext.Node) {
	for _, n := range nodes {
		w.node(n)
	}
}

//nolint:gocyclo // One case per node type.
func (w *walker) node(n wikitext.Node) {
	switch n := n.(type) {
	case *wikitext.Text:
		// Text is escaped, not appended as is. Only tag nodes emit raw markup.
		textEscaper.WriteString(&w.b, n.Value)
	case *wikitext.Bold:
		w.toggle(&w.state.bold, "<strong>", "</strong>")
	case *wikitext.Italic:
		w.toggle(&w.state.italic, "<em>", "</em>")
	case *wikitext.BoldItalic:
		w.toggle(&w.state.boldItalic, "<strong><em>", "</em></strong>")
	case *wikitext.Comment:
		w.toggle(&w.state.comment, "<!--", "-->")
	case *wikitext.CharacterEntity:
		// Decoded entities are escaped again so &lt; stays text.
		textEscaper.WriteString(&w.b, string(n.Character))

	case *wikitext.Heading:
		level := strconv.Itoa(n.Level)
		w.b.WriteString("<h" + level + ">")
		w.nodes(n.Nodes)
		w.b.WriteString("</h" + level + ">")
	case *wikitext.OrderedList:
		w.list("ol", n.Items)
	case *wikitext.UnorderedList:
		w.list("ul", n.Items)
	case *wikitext.DefinitionList:
		w.b.WriteString("<dl>")
		for _, item := range n.Items {
			w.nodes(item.Nodes)
		}
		w.b.WriteString("</dl>")
	case *wikitext.Preformatted:
		w.b.WriteString("<pre>")
		w.nodes(n.Nodes)
		w.b.WriteString("</pre>")
	case *wikitext.Table:
		w.table(n)
	case *wikitext.HorizontalDivider:
		w.b.WriteString("<hr/>")
	case *wikitext.ParagraphBreak:
		w.b.WriteString("<p/>")

	case *wikitext.StartTag:
		w.b.WriteString("<" + n.Name + ">")
	case *wikitext.EndTag:
		w.b.WriteString("</" + n.Name + ">")
	case *wikitext.Tag:
		w.b.WriteString("<" + n.Name + ">")
		w.nodes(n.Nodes)
		w.b.WriteString("</" + n.Name + ">")

	case *wikitext.Link:
		w.anchor(w.articleURL(n.Target), "")
		w.nodes(n.Text)
		w.b.WriteString("</a>")
	case *wikitext.ExternalLink:
		w.anchor("#", "")
		w.nodes(n.Nodes)
		w.b.WriteString("</a>")
	case *wikitext.Image:
		w.b.WriteString(`<figure><img src="` + html.EscapeString(n.Target) + `"/><figcaption>`)
		w.nodes(n.Text)
		w.b.WriteString("</figcaption></figure>")
	case *wikitext.Category:
		w.anchor(w.articleURL(n.Target), "category")
		textEscaper.WriteString(&w.b, n.Target)
		w.b.WriteString("</a>")
	case *wikitext.Redirect:
		w.anchor(w.articleURL(n.Target), "")
		w.b.WriteString("Redirect</a>")

	case *wikitext.Template, *wikitext.Parameter, *wikitext.MagicWord:
		// Not expanded.
	}
}

func (w *walker) anchor(href, class string) {
	w.b.WriteString("<a ")
	if class != "" {
		w.b.WriteString(`class="` + class + `" `)
	}
	w.b.WriteString(`href="` + html.EscapeString(href) + `">`)
}

func (w *walker) list(tag string, items []wikitext.ListItem) {
	w.b.WriteString("<" + tag + ">")
	for _, item := range items {
		w.b.WriteString("<li>")
		w.nodes(item.Nodes)
		w.b.WriteString("</li>")
	}
	w.b.WriteString("</" + tag + ">")
}

func (w *walker) table(t *wikitext.Table) {
	w.b.WriteString("<table " + attributes(t.Attributes) + ">")

	w.b.WriteString("<thead><tr>")
	for _, c := range t.Captions {
		w.b.WriteString("<th " + attributes(c.Attributes) + ">")
		w.nodes(c.Content)
		w.b.WriteString("</th>")
	}
	w.b.WriteString("</tr></thead>")

	w.b.WriteString("<tbody>")
	for _, row := range t.Rows {
		w.b.WriteString("<tr " + attributes(row.Attributes) + ">")
		for _, c := range row.Cells {
			w.b.WriteString("<td " + attributes(c.Attributes) + ">")
			w.nodes(c.Content)
			w.b.WriteString("</td>")
		}
		w.b.WriteString("</tr>")
	}
	w.b.WriteString("</tbody></table>")
}

// attributes returns the text of an attribute list verbatim. Markup other
// than text and character entities is dropped.
func attributes(nodes []wikitext.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		switch n := n.(type) {
		case *wikitext.Text:
			b.WriteString(n.Value)
		case *wikitext.CharacterEntity:
			b.WriteRune(n.Character)
		}
	}
	return b.String()
}
