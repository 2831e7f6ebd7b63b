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

package index

import (
	"compress/bzip2"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ianlewis/go-dictzip"
	"github.com/klauspost/compress/gzip"
)

type readCloser struct {
	io.Reader
	close func() error
}

func (r *readCloser) Close() error {
	return r.close()
}

// Open opens the index file at path for scanning. Files ending in .bz2, .gz
// or .dz are decompressed transparently. The caller must close the returned
// reader.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening index %q: %w", path, err)
	}

	var r io.Reader
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bz2":
		r = bzip2.NewReader(f)
	case ".gz":
		z, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("creating gzip reader for %q: %w", path, err)
		}
		r = z
	case ".dz":
		z, err := dictzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("creating dictzip reader for %q: %w", path, err)
		}
		r = z
	default:
		return f, nil
	}

	return &readCloser{
		Reader: r,
		close:  f.Close,
	}, nil
}

// OpenFile reads the index file at path into a new Index.
func OpenFile(path string, opts *Options) (*Index, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	s := NewScanner(r)
	defer s.Close()

	idx, err := New(s, opts)
	if err != nil {
		return nil, fmt.Errorf("reading index %q: %w", path, err)
	}
	return idx, nil
}
