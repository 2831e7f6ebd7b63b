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
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrParse indicates that an index line is malformed.
var ErrParse = errors.New("parsing index line")

// maxLineSize is the largest index line the scanner accepts.
const maxLineSize = 1 << 20

// Entry is an index file entry. Entries are immutable once parsed.
type Entry struct {
	// Offset is the byte offset of the compressed block holding the page.
	Offset uint64

	// ID is the page id.
	ID uint64

	// Title is the page title.
	Title string
}

// String returns the entry's title.
func (e Entry) String() string {
	return e.Title
}

// ParseError describes a malformed index line.
type ParseError struct {
	// Line is the 1-based line number in the index file.
	Line int

	// Text is the offending line.
	Text string

	// Err is the underlying error.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: line %d %q: %v", ErrParse, e.Line, e.Text, e.Err)
}

// Unwrap returns the errors matched by errors.Is.
func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

var errSeparator = errors.New("missing separator")

// ParseEntry parses a single "offset:id:title" line. Only the first two
// colons are structural; the rest of the line is the title verbatim.
func ParseEntry(line string) (Entry, error) {
	line = strings.TrimSuffix(line, "\r")

	sep0 := strings.IndexByte(line, ':')
	if sep0 < 0 {
		return Entry{}, errSeparator
	}
	sep1 := strings.IndexByte(line[sep0+1:], ':')
	if sep1 < 0 {
		return Entry{}, errSeparator
	}
	sep1 += sep0 + 1

	offset, err := strconv.ParseUint(line[:sep0], 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("offset: %w", err)
	}
	id, err := strconv.ParseUint(line[sep0+1:sep1], 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("id: %w", err)
	}

	return Entry{
		Offset: offset,
		ID:     id,
		Title:  line[sep1+1:],
	}, nil
}

// Scanner scans an index from start to end, one line at a time.
type Scanner struct {
	r    io.ReadCloser
	s    *bufio.Scanner
	line int
}

// NewScanner return a new index scanner that scans the index from start to
// end. The Scanner assumes ownership of the reader and should be closed with
// the Close method.
func NewScanner(r io.ReadCloser) *Scanner {
	s := &Scanner{
		r: r,
		s: bufio.NewScanner(r),
	}
	s.s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return s
}

// Scan advances the scanner to the next non-empty line. It returns false if
// the scan stops either by reaching the end of the index or an error.
func (s *Scanner) Scan() bool {
	for s.s.Scan() {
		s.line++
		if len(s.s.Bytes()) > 0 {
			return true
		}
	}
	return false
}

// Text returns the current line.
func (s *Scanner) Text() string {
	return s.s.Text()
}

// Line returns the 1-based line number of the current line.
func (s *Scanner) Line() int {
	return s.line
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	//nolint:wrapcheck // error should not be wrapped
	return s.s.Err()
}

// Close closes the underlying reader.
func (s *Scanner) Close() error {
	err := s.r.Close()
	if err != nil {
		return fmt.Errorf("closing index file: %w", err)
	}
	return nil
}
