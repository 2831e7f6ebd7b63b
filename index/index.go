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
	"io"
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"unicode/utf8"
)

// MaxResults is the most entries FindPrefix returns.
const MaxResults = 100

// Options are options for building an Index.
type Options struct {
	// Workers is the number of goroutines used to parse and scan the index.
	// Zero means runtime.GOMAXPROCS(0).
	Workers int

	// OnError is called with each malformed line. Malformed lines are always
	// skipped. OnError is called from a single goroutine.
	OnError func(*ParseError)

	// Logger receives load diagnostics. Nil discards them.
	Logger *slog.Logger
}

// DefaultOptions is the default options for building an Index.
var DefaultOptions = &Options{}

func (o *Options) workers() int {
	if o != nil && o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (o *Options) logger() *slog.Logger {
	if o != nil && o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type rawLine struct {
	num  int
	text string
}

// Builder collects index lines and parses them into an Index. A Builder is not
// safe for concurrent use. The Index it builds is read-only.
type Builder struct {
	lines []rawLine
	opts  *Options
}

// NewBuilder returns a new empty Builder.
func NewBuilder(opts *Options) *Builder {
	if opts == nil {
		opts = DefaultOptions
	}
	return &Builder{opts: opts}
}

// ReadFrom adds all lines read from the scanner. It does not close the
// scanner.
func (b *Builder) ReadFrom(s *Scanner) error {
	for s.Scan() {
		b.lines = append(b.lines, rawLine{
			num:  s.Line(),
			text: s.Text(),
		})
	}
	return s.Err()
}

// Len returns the number of lines added so far.
func (b *Builder) Len() int {
	return len(b.lines)
}

// Build parses the collected lines in parallel and returns the frozen Index.
// Malformed lines are skipped. The Builder is reset and may be reused.
func (b *Builder) Build() *Index {
	workers := b.opts.workers()
	chunks := split(len(b.lines), workers)

	entries := make([][]Entry, len(chunks))
	errs := make([][]*ParseError, len(chunks))

	var wg sync.WaitGroup
	for i, c := range chunks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out := make([]Entry, 0, c.hi-c.lo)
			for _, l := range b.lines[c.lo:c.hi] {
				e, err := ParseEntry(l.text)
				if err != nil {
					errs[i] = append(errs[i], &ParseError{
						Line: l.num,
						Text: l.text,
						Err:  err,
					})
					continue
				}
				out = append(out, e)
			}
			entries[i] = out
		}()
	}
	wg.Wait()

	idx := &Index{
		entries: slices.Concat(entries...),
		workers: workers,
	}

	logger := b.opts.logger()
	for _, chunkErrs := range errs {
		for _, err := range chunkErrs {
			idx.skipped++
			logger.Debug("skipping malformed index line", "line", err.Line, "err", err.Err)
			if b.opts.OnError != nil {
				b.opts.OnError(err)
			}
		}
	}
	if idx.skipped > 0 {
		logger.Warn("skipped malformed index lines", "skipped", idx.skipped, "entries", len(idx.entries))
	}

	b.lines = nil
	return idx
}

// Index is an in-memory, read-only index of dump entries. Lookups are
// parallel linear scans and are safe for concurrent use.
type Index struct {
	entries []Entry
	workers int
	skipped int
}

// New returns a new Index read from the scanner.
func New(s *Scanner, opts *Options) (*Index, error) {
	b := NewBuilder(opts)
	if err := b.ReadFrom(s); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// Size returns the number of entries in the index.
func (idx *Index) Size() int {
	return len(idx.entries)
}

// Skipped returns the number of malformed lines skipped when building the
// index.
func (idx *Index) Skipped() int {
	return idx.skipped
}

// Entry returns the i-th entry in file order.
func (idx *Index) Entry(i int) Entry {
	return idx.entries[i]
}

// FindExact returns an entry whose title equals name ignoring case. If several
// titles match, which one is returned is unspecified.
func (idx *Index) FindExact(name string) (Entry, bool) {
	var found atomic.Int64
	found.Store(-1)

	idx.parallel(func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if i%1024 == 0 && found.Load() >= 0 {
				return
			}
			if equalFold(idx.entries[i].Title, name) {
				found.CompareAndSwap(-1, int64(i))
				return
			}
		}
	})

	i := found.Load()
	if i < 0 {
		return Entry{}, false
	}
	return idx.entries[i], true
}

// FindPrefix returns up to MaxResults entries whose title starts with query
// ignoring case. Shorter titles come first.
func (idx *Index) FindPrefix(query string) []Entry {
	return idx.FindPrefixN(query, MaxResults)
}

// FindPrefixN is like FindPrefix but returns at most n entries. n is capped at
// MaxResults.
func (idx *Index) FindPrefixN(query string, n int) []Entry {
	if n <= 0 || n > MaxResults {
		n = MaxResults
	}

	var mu sync.Mutex
	var all []match
	idx.parallel(func(lo, hi int) {
		var local []match
		for i := lo; i < hi; i++ {
			title := idx.entries[i].Title
			if !hasPrefixFold(title, query) {
				continue
			}
			local = append(local, match{
				pos: i,
				len: utf8.RuneCountInString(title),
			})
			// Only the n shortest of each chunk can make the final cut.
			if len(local) >= 4*n {
				local = shortest(local, n)
			}
		}
		local = shortest(local, n)

		mu.Lock()
		all = append(all, local...)
		mu.Unlock()
	})

	all = shortest(all, n)
	if len(all) == 0 {
		return nil
	}
	result := make([]Entry, len(all))
	for i, m := range all {
		result[i] = idx.entries[m.pos]
	}
	return result
}

type match struct {
	pos int
	len int
}

// shortest sorts matches by title length then file position and truncates to
// n.
func shortest(m []match, n int) []match {
	slices.SortFunc(m, func(a, b match) int {
		if a.len != b.len {
			return a.len - b.len
		}
		return a.pos - b.pos
	})
	if len(m) > n {
		m = m[:n]
	}
	return m
}

type chunk struct {
	lo, hi int
}

// split divides n items into at most k contiguous chunks.
func split(n, k int) []chunk {
	if k < 1 {
		k = 1
	}
	if n < k {
		k = max(n, 1)
	}
	size := (n + k - 1) / k
	chunks := make([]chunk, 0, k)
	for lo := 0; lo < n; lo += size {
		chunks = append(chunks, chunk{lo: lo, hi: min(lo+size, n)})
	}
	return chunks
}

// parallel calls fn on disjoint chunks of the entries concurrently.
func (idx *Index) parallel(fn func(lo, hi int)) {
	chunks := split(len(idx.entries), idx.workers)
	var wg sync.WaitGroup
	for _, c := range chunks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(c.lo, c.hi)
		}()
	}
	wg.Wait()
}
