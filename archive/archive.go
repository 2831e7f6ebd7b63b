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
	"fmt"
	"io"
	"log/slog"
	"math"
	"runtime/debug"

	"github.com/ianlewis/go-wikidump/index"
)

// Options are options for reading a dump.
type Options struct {
	// Logger receives read diagnostics. Nil discards them.
	Logger *slog.Logger
}

// DefaultOptions is the default options for a Reader.
var DefaultOptions = &Options{}

// Reader reads pages from a multistream dump. The dump is never modified and
// a Reader is safe for concurrent use.
type Reader struct {
	data   []byte
	close  func() error
	logger *slog.Logger
}

// Open memory maps the dump file at path. The Reader should be closed with the
// Close method.
func Open(path string, opts *Options) (*Reader, error) {
	data, closeFn, err := mapFile(path)
	if err != nil {
		return nil, err
	}
	r := New(data, opts)
	r.close = closeFn
	return r, nil
}

// New returns a new Reader over the dump data held in memory.
func New(data []byte, opts *Options) *Reader {
	if opts == nil {
		opts = DefaultOptions
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Reader{
		data:   data,
		close:  func() error { return nil },
		logger: logger,
	}
}

// Size returns the size of the dump in bytes.
func (r *Reader) Size() int64 {
	return int64(len(r.data))
}

// Block returns the decompressed contents of the block starting at offset.
func (r *Reader) Block(offset uint64) (b []byte, err error) {
	if offset > math.MaxInt || int(offset) >= len(r.data) {
		return nil, fmt.Errorf("%w: %d (dump is %d bytes)", ErrOffset, offset, len(r.data))
	}

	// Guard against page faults from I/O errors on the mapped file. Without
	// this a SIGBUS would crash the process.
	old := debug.SetPanicOnFault(true)
	defer func() {
		debug.SetPanicOnFault(old)
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: page fault reading block at offset %d: %v", ErrIO, offset, rec)
		}
	}()

	//nolint:gosec // offset is bounds checked above.
	b, codec, err := decodeBlock(r.data[offset:])
	if err != nil {
		return nil, fmt.Errorf("block at offset %d: %w", offset, err)
	}
	r.logger.Debug("decoded block", "offset", offset, "codec", codec, "size", len(b))
	return b, nil
}

// Article reads the page for the given index entry from the dump. Only the
// block at the entry's offset is decompressed.
func (r *Reader) Article(e index.Entry) (*Article, error) {
	b, err := r.Block(e.Offset)
	if err != nil {
		return nil, err
	}
	return findArticle(b, e.ID)
}

// Close unmaps the dump file.
func (r *Reader) Close() error {
	err := r.close()
	r.data = nil
	return err
}
