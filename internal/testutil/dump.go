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

package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/ianlewis/go-wikidump/index"
)

// Compressor compresses a single block.
type Compressor func(t *testing.T, b []byte) []byte

// Gzip compresses b as a gzip member.
func Gzip(t *testing.T, b []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	z := gzip.NewWriter(&buf)
	if _, err := z.Write(b); err != nil {
		t.Fatal(err)
	}
	if err := z.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// Zstd compresses b as a zstd frame.
func Zstd(t *testing.T, b []byte) []byte {
	t.Helper()

	z, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer z.Close()
	return z.EncodeAll(b, nil)
}

// LZ4 compresses b as an LZ4 frame.
func LZ4(t *testing.T, b []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	z := lz4.NewWriter(&buf)
	if _, err := z.Write(b); err != nil {
		t.Fatal(err)
	}
	if err := z.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// MakeDump compresses each block of pages separately and concatenates them.
// It returns the dump and an index entry for every page. The last block is
// followed by the dump's closing tag, as in a real dump.
func MakeDump(t *testing.T, compress Compressor, blocks ...[]*Page) ([]byte, []index.Entry) {
	t.Helper()

	var dump []byte
	var entries []index.Entry
	for i, pages := range blocks {
		block := MakeBlock(pages...)
		if i == len(blocks)-1 {
			block = append(block, "</mediawiki>\n"...)
		}

		offset := uint64(len(dump))
		for _, p := range pages {
			entries = append(entries, index.Entry{
				Offset: offset,
				ID:     p.ID,
				Title:  p.Title,
			})
		}
		dump = append(dump, compress(t, block)...)
	}
	return dump, entries
}

// WriteTempFile writes data to a file named name in a temporary directory and
// returns its path.
func WriteTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
