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

package archive_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-wikidump/archive"
	"github.com/ianlewis/go-wikidump/index"
	"github.com/ianlewis/go-wikidump/internal/testutil"
)

var (
	pageApril = &testutil.Page{
		ID:        1,
		Title:     "April",
		Timestamp: "2024-01-02T03:04:05Z",
		Username:  "Alice",
		Text:      "'''April''' is a month.\n\n== Events ==\n* <b>Easter</b> & spring",
	}
	pageAugust = &testutil.Page{
		ID:        2,
		Title:     "August",
		Timestamp: "2024-02-03T04:05:06Z",
		Username:  "Bob",
		Text:      "'''August''' is the eighth month.",
	}
	pageArt = &testutil.Page{
		ID:        6,
		Title:     "Art",
		Timestamp: "2024-03-04T05:06:07Z",
		Username:  "Carol",
		Text:      "''Art'' is a creative activity.",
	}
	pageApr = &testutil.Page{
		ID:        8,
		Title:     "Apr",
		Timestamp: "2024-04-05T06:07:08Z",
		Username:  "Dave",
		Text:      "#REDIRECT [[April]]",
	}
)

func article(t *testing.T, p *testutil.Page) *archive.Article {
	t.Helper()

	ts, err := time.Parse(time.RFC3339, p.Timestamp)
	if err != nil {
		t.Fatal(err)
	}
	return &archive.Article{
		ID:            p.ID,
		Title:         p.Title,
		LastChangedAt: ts,
		LastChangedBy: p.Username,
		Body:          p.Text,
	}
}

func TestReader_Article(t *testing.T) {
	t.Parallel()

	codecs := []struct {
		name     string
		compress testutil.Compressor
		codec    archive.Codec
	}{
		{"gzip", testutil.Gzip, archive.CodecGzip},
		{"zstd", testutil.Zstd, archive.CodecZstd},
		{"lz4", testutil.LZ4, archive.CodecLZ4},
	}

	for _, c := range codecs {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			dump, entries := testutil.MakeDump(t, c.compress,
				[]*testutil.Page{pageApril, pageAugust},
				[]*testutil.Page{pageArt, pageApr},
			)
			if got := archive.DetectCodec(dump); got != c.codec {
				t.Fatalf("DetectCodec: got %v, want %v", got, c.codec)
			}

			r := archive.New(dump, nil)
			defer r.Close()

			pages := []*testutil.Page{pageApril, pageAugust, pageArt, pageApr}
			for i, e := range entries {
				got, err := r.Article(e)
				if err != nil {
					t.Fatalf("Article(%v): %v", e, err)
				}
				if diff := cmp.Diff(article(t, pages[i]), got); diff != "" {
					t.Fatalf("Article(%v) (-want, +got):\n%s", e, diff)
				}
			}

			// The second page of the first block is not in the second block.
			_, err := r.Article(index.Entry{Offset: entries[2].Offset, ID: pageAugust.ID})
			if !errors.Is(err, archive.ErrArticleNotFound) {
				t.Fatalf("Article: got %v, want %v", err, archive.ErrArticleNotFound)
			}
		})
	}
}

func TestReader_Article_secondRecord(t *testing.T) {
	t.Parallel()

	dump, _ := testutil.MakeDump(t, testutil.Gzip, []*testutil.Page{pageApril, pageAugust})
	r := archive.New(dump, nil)

	got, err := r.Article(index.Entry{Offset: 0, ID: 2})
	if err != nil {
		t.Fatalf("Article: %v", err)
	}
	if diff := cmp.Diff(article(t, pageAugust), got); diff != "" {
		t.Fatalf("Article (-want, +got):\n%s", diff)
	}
}

func TestReader_Article_errors(t *testing.T) {
	t.Parallel()

	dump, _ := testutil.MakeDump(t, testutil.Gzip, []*testutil.Page{pageApril})

	tests := []struct {
		name  string
		data  []byte
		entry index.Entry
		err   error
	}{
		{
			name:  "not found",
			data:  dump,
			entry: index.Entry{Offset: 0, ID: 99},
			err:   archive.ErrArticleNotFound,
		},
		{
			name:  "offset past end",
			data:  dump,
			entry: index.Entry{Offset: uint64(len(dump)), ID: 1},
			err:   archive.ErrOffset,
		},
		{
			name:  "empty dump",
			data:  nil,
			entry: index.Entry{Offset: 0, ID: 1},
			err:   archive.ErrOffset,
		},
		{
			name:  "unknown codec",
			data:  []byte("not a compressed block"),
			entry: index.Entry{Offset: 0, ID: 1},
			err:   archive.ErrParse,
		},
		{
			name:  "corrupt block",
			data:  dump[:len(dump)/2],
			entry: index.Entry{Offset: 0, ID: 1},
			err:   archive.ErrParse,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			a, err := archive.New(test.data, nil).Article(test.entry)
			if !errors.Is(err, test.err) {
				t.Fatalf("Article: got %v, want %v", err, test.err)
			}
			if a != nil {
				t.Fatalf("Article: got %v, want nil", a)
			}
		})
	}
}

func TestReader_Article_missingProperty(t *testing.T) {
	t.Parallel()

	for _, field := range []string{"title", "revision", "text", "timestamp", "contributor", "username"} {
		t.Run(field, func(t *testing.T) {
			t.Parallel()

			p := *pageApril
			p.Omit = []string{field}
			dump, entries := testutil.MakeDump(t, testutil.Gzip, []*testutil.Page{&p})

			_, err := archive.New(dump, nil).Article(entries[0])
			if !errors.Is(err, archive.ErrMissingProperty) {
				t.Fatalf("Article: got %v, want %v", err, archive.ErrMissingProperty)
			}
			var perr *archive.MissingPropertyError
			if !errors.As(err, &perr) {
				t.Fatalf("Article: got %T, want %T", err, perr)
			}
			if perr.Field != field {
				t.Fatalf("MissingPropertyError.Field: got %q, want %q", perr.Field, field)
			}
		})
	}
}

func TestReader_Article_badTimestamp(t *testing.T) {
	t.Parallel()

	p := *pageApril
	p.Timestamp = "yesterday"
	dump, entries := testutil.MakeDump(t, testutil.Gzip, []*testutil.Page{&p})

	_, err := archive.New(dump, nil).Article(entries[0])
	if !errors.Is(err, archive.ErrParse) {
		t.Fatalf("Article: got %v, want %v", err, archive.ErrParse)
	}
}

func TestOpen_bzip2(t *testing.T) {
	t.Parallel()

	r, err := archive.Open("testdata/multistream.xml.bz2", nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	info, err := os.Stat("testdata/multistream.xml.bz2")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := r.Size(), info.Size(); got != want {
		t.Fatalf("Size: got %d, want %d", got, want)
	}

	idx, err := index.OpenFile("testdata/multistream-index.txt", nil)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}

	want := map[uint64]*archive.Article{
		1: {
			ID:            1,
			Title:         "April",
			LastChangedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
			LastChangedBy: "Alice",
			Body:          "'''April''' is the fourth [[month]] of the year.\n\n== Events ==\n* [[Easter]] & spring",
		},
		2: {
			ID:            2,
			Title:         "August",
			LastChangedAt: time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC),
			LastChangedBy: "Bob",
			Body:          "'''August''' is the eighth month.",
		},
		6: {
			ID:            6,
			Title:         "Art",
			LastChangedAt: time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC),
			LastChangedBy: "Carol",
			Body:          "''Art'' is a creative activity.",
		},
		8: {
			ID:            8,
			Title:         "Apr",
			LastChangedAt: time.Date(2024, 4, 5, 6, 7, 8, 0, time.UTC),
			LastChangedBy: "Dave",
			Body:          "#REDIRECT [[April]]",
		},
	}

	for i := range idx.Size() {
		e := idx.Entry(i)
		got, err := r.Article(e)
		if err != nil {
			t.Fatalf("Article(%v): %v", e, err)
		}
		if diff := cmp.Diff(want[e.ID], got); diff != "" {
			t.Fatalf("Article(%v) (-want, +got):\n%s", e, diff)
		}
	}

	// Decoding stops at the end of the first block, so a page from the
	// following block is not found.
	first := idx.Entry(0)
	_, err = r.Article(index.Entry{Offset: first.Offset, ID: 6})
	if !errors.Is(err, archive.ErrArticleNotFound) {
		t.Fatalf("Article: got %v, want %v", err, archive.ErrArticleNotFound)
	}
}

func TestOpen_errors(t *testing.T) {
	t.Parallel()

	_, err := archive.Open(filepath.Join(t.TempDir(), "missing.xml.bz2"), nil)
	if !errors.Is(err, archive.ErrIO) {
		t.Fatalf("Open: got %v, want %v", err, archive.ErrIO)
	}

	empty := testutil.WriteTempFile(t, "empty.xml.bz2", nil)
	r, err := archive.Open(empty, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	_, err = r.Article(index.Entry{Offset: 0, ID: 1})
	if !errors.Is(err, archive.ErrOffset) {
		t.Fatalf("Article: got %v, want %v", err, archive.ErrOffset)
	}
}

func TestCodec_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		codec    archive.Codec
		expected string
	}{
		{archive.CodecBzip2, "bzip2"},
		{archive.CodecGzip, "gzip"},
		{archive.CodecZstd, "zstd"},
		{archive.CodecLZ4, "lz4"},
		{archive.CodecUnknown, "unknown(0)"},
	}
	for _, test := range tests {
		if got := test.codec.String(); got != test.expected {
			t.Errorf("String: got %q, want %q", got, test.expected)
		}
	}
}
