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
	"compress/bzip2"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec identifies the compression format of a block.
type Codec uint8

const (
	// CodecUnknown is an unrecognized block format.
	CodecUnknown Codec = iota

	// CodecBzip2 is a bzip2 stream. Multistream dumps published by
	// Wikimedia use bzip2.
	CodecBzip2

	// CodecGzip is a gzip member.
	CodecGzip

	// CodecZstd is a zstd frame.
	CodecZstd

	// CodecLZ4 is an LZ4 frame.
	CodecLZ4
)

// String returns the name of the codec.
func (c Codec) String() string {
	switch c {
	case CodecBzip2:
		return "bzip2"
	case CodecGzip:
		return "gzip"
	case CodecZstd:
		return "zstd"
	case CodecLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

var (
	magicBzip2 = []byte("BZh")
	magicGzip  = []byte{0x1f, 0x8b}
	magicZstd  = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4   = []byte{0x04, 0x22, 0x4d, 0x18}

	// The 48-bit magic numbers that follow a bzip2 stream header.
	bzip2BlockMagic = []byte{0x31, 0x41, 0x59, 0x26, 0x53, 0x59}
	bzip2EOSMagic   = []byte{0x17, 0x72, 0x45, 0x38, 0x50, 0x90}

	errUnknownCodec = errors.New("unknown block format")
)

// DetectCodec returns the codec of the block starting at b.
func DetectCodec(b []byte) Codec {
	switch {
	case isBzip2Header(b):
		return CodecBzip2
	case bytes.HasPrefix(b, magicGzip):
		return CodecGzip
	case bytes.HasPrefix(b, magicZstd):
		return CodecZstd
	case bytes.HasPrefix(b, magicLZ4):
		return CodecLZ4
	default:
		return CodecUnknown
	}
}

// decodeZstd shares one decoder. DecodeAll is safe for concurrent use.
var decodeZstd = zstdDecodeFunc(zstd.WithDecoderConcurrency(0))

// zstdDecodeFunc returns a function that decodes a zstd frame. The decoder is
// created with opts on first use.
func zstdDecodeFunc(opts ...zstd.DOption) func([]byte) ([]byte, error) {
	decoder := sync.OnceValues(func() (*zstd.Decoder, error) {
		return zstd.NewReader(nil, opts...)
	})
	return func(b []byte) ([]byte, error) {
		d, err := decoder()
		if err != nil {
			return nil, fmt.Errorf("creating zstd decoder: %w", err)
		}
		return d.DecodeAll(b, nil)
	}
}

// decodeBlock decompresses the first block in b. Bytes after the end of the
// block are ignored.
func decodeBlock(b []byte) ([]byte, Codec, error) {
	codec := DetectCodec(b)

	var out []byte
	var err error
	switch codec {
	case CodecBzip2:
		out, err = decodeFirst(b, magicBzip2, isBzip2Header, decodeBzip2)
	case CodecGzip:
		out, err = decodeGzip(b)
	case CodecZstd:
		out, err = decodeFirst(b, magicZstd, isZstdHeader, decodeZstd)
	case CodecLZ4:
		out, err = decodeFirst(b, magicLZ4, isLZ4Header, decodeLZ4)
	default:
		err = errUnknownCodec
	}
	if err != nil {
		return nil, codec, fmt.Errorf("%w: decoding %v block: %w", ErrParse, codec, err)
	}
	return out, codec, nil
}

// decodeFirst decodes the stream at the start of b. The decoders read on into
// concatenated streams so the input is cut at the next stream header. A
// compressed stream can contain bytes that look like a header; if decoding
// the cut input fails the cut moves to the next candidate.
func decodeFirst(
	b, magic []byte,
	isHeader func([]byte) bool,
	decode func([]byte) ([]byte, error),
) ([]byte, error) {
	end := nextHeader(b, 1, magic, isHeader)
	for {
		out, err := decode(b[:end])
		if err == nil {
			return out, nil
		}
		if end == len(b) {
			return nil, err
		}
		end = nextHeader(b, end+1, magic, isHeader)
	}
}

// nextHeader returns the offset of the first stream header at or after from,
// or len(b) if there is none.
func nextHeader(b []byte, from int, magic []byte, isHeader func([]byte) bool) int {
	for from < len(b) {
		i := bytes.Index(b[from:], magic)
		if i < 0 {
			break
		}
		from += i
		if isHeader(b[from:]) {
			return from
		}
		from++
	}
	return len(b)
}

func decodeBzip2(b []byte) ([]byte, error) {
	return io.ReadAll(bzip2.NewReader(bytes.NewReader(b)))
}

func decodeLZ4(b []byte) ([]byte, error) {
	return io.ReadAll(lz4.NewReader(bytes.NewReader(b)))
}

func decodeGzip(b []byte) ([]byte, error) {
	z, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer z.Close()
	z.Multistream(false)
	return io.ReadAll(z)
}

// isBzip2Header reports whether b starts with a bzip2 stream header followed
// by a block or end of stream magic. Stream headers are always byte aligned.
func isBzip2Header(b []byte) bool {
	if len(b) < 10 || !bytes.HasPrefix(b, magicBzip2) || b[3] < '1' || b[3] > '9' {
		return false
	}
	return bytes.Equal(b[4:10], bzip2BlockMagic) || bytes.Equal(b[4:10], bzip2EOSMagic)
}

// isZstdHeader reports whether b starts with a zstd frame magic and a frame
// header descriptor with the reserved bit clear.
func isZstdHeader(b []byte) bool {
	return len(b) > 4 && bytes.HasPrefix(b, magicZstd) && b[4]&0x08 == 0
}

// isLZ4Header reports whether b starts with an LZ4 frame magic and a frame
// descriptor of version 01.
func isLZ4Header(b []byte) bool {
	return len(b) > 4 && bytes.HasPrefix(b, magicLZ4) && b[4]>>6 == 1
}
