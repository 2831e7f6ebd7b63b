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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ianlewis/go-wikidump/archive"
	"github.com/ianlewis/go-wikidump/index"
	"github.com/ianlewis/go-wikidump/internal/folding"
	"github.com/ianlewis/go-wikidump/render"
)

var (
	// ErrNotFound indicates that a title is not in the index.
	ErrNotFound = errors.New("not found")

	// ErrNoIndex indicates that no index file was found next to a dump.
	ErrNoIndex = errors.New("no index found")
)

// dumpExts are the dump file extensions removed to find the index.
var dumpExts = []string{".xml.bz2", ".xml.zst", ".xml.gz", ".xml.lz4"}

// indexExts are the index file suffixes in order of preference.
var indexExts = []string{"-index.txt", "-index.txt.bz2", "-index.txt.gz", "-index.txt.dz"}

// Options are options for opening a Dump.
type Options struct {
	// IndexPath is the path to the index file. If empty, it is found with
	// FindIndex.
	IndexPath string

	// Index are options for loading the index.
	Index *index.Options

	// Render are options for rendering articles.
	Render *render.Options

	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger
}

// DefaultOptions are the default options for opening a Dump.
var DefaultOptions = &Options{}

// Dump is an open multistream dump and its index. A Dump is safe for
// concurrent use.
type Dump struct {
	path      string
	indexPath string

	index    *index.Index
	archive  *archive.Reader
	renderer *render.Renderer
	logger   *slog.Logger
}

// FindIndex returns the path of the index file for the dump at path. For a
// dump named "name.xml.bz2" it looks for "name-index.txt" with no extension
// or a ".bz2", ".gz" or ".dz" extension.
func FindIndex(path string) (string, error) {
	base := path
	for _, ext := range dumpExts {
		if strings.HasSuffix(base, ext) {
			base = strings.TrimSuffix(base, ext)
			break
		}
	}

	for _, ext := range indexExts {
		p := base + ext
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w for %q", ErrNoIndex, path)
}

// Open opens the dump at path and loads its index. The Dump should be closed
// with the Close method.
func Open(path string, opts *Options) (*Dump, error) {
	if opts == nil {
		opts = DefaultOptions
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	indexPath := opts.IndexPath
	if indexPath == "" {
		var err error
		indexPath, err = FindIndex(path)
		if err != nil {
			return nil, err
		}
	}

	indexOpts := index.Options{}
	if opts.Index != nil {
		indexOpts = *opts.Index
	}
	if indexOpts.Logger == nil {
		indexOpts.Logger = logger
	}

	start := time.Now()
	idx, err := index.OpenFile(indexPath, &indexOpts)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded index",
		"path", indexPath,
		"entries", idx.Size(),
		"skipped", idx.Skipped(),
		"took", time.Since(start),
	)

	r, err := archive.Open(path, &archive.Options{Logger: logger})
	if err != nil {
		return nil, err
	}

	return &Dump{
		path:      path,
		indexPath: indexPath,
		index:     idx,
		archive:   r,
		renderer:  render.New(opts.Render),
		logger:    logger,
	}, nil
}

// Path returns the path of the dump file.
func (d *Dump) Path() string {
	return d.path
}

// IndexPath returns the path of the index file.
func (d *Dump) IndexPath() string {
	return d.indexPath
}

// Index returns the dump's index.
func (d *Dump) Index() *index.Index {
	return d.index
}

// Size returns the size of the dump file in bytes.
func (d *Dump) Size() int64 {
	return d.archive.Size()
}

// Search returns up to n entries whose title starts with query ignoring case.
// Shorter titles come first. n is capped at index.MaxResults.
func (d *Dump) Search(query string, n int) []index.Entry {
	return d.index.FindPrefixN(query, n)
}

// Lookup returns the index entry for the title. Underscores in title are
// read as spaces and case is ignored.
func (d *Dump) Lookup(title string) (index.Entry, error) {
	title = folding.Title(title)
	e, ok := d.index.FindExact(title)
	if !ok {
		return index.Entry{}, fmt.Errorf("%w: %q", ErrNotFound, title)
	}
	return e, nil
}

// Article reads the article for the entry from the dump.
func (d *Dump) Article(e index.Entry) (*archive.Article, error) {
	a, err := d.archive.Article(e)
	if err != nil {
		return nil, fmt.Errorf("reading %v: %w", e, err)
	}
	return a, nil
}

// Render renders the article's markup as HTML.
func (d *Dump) Render(a *archive.Article) string {
	return d.renderer.Render(a)
}

// Page looks up, reads and renders the article with the given title.
func (d *Dump) Page(title string) (*Page, error) {
	e, err := d.Lookup(title)
	if err != nil {
		return nil, err
	}
	a, err := d.Article(e)
	if err != nil {
		return nil, err
	}
	return &Page{
		Article: a,
		HTML:    d.Render(a),
	}, nil
}

// Close closes the dump file.
func (d *Dump) Close() error {
	if err := d.archive.Close(); err != nil {
		return fmt.Errorf("closing %q: %w", d.path, err)
	}
	return nil
}
