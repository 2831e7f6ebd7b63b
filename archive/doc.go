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

// Package archive implements random access reads of multistream dump files.
//
// A multistream dump is a concatenation of independently compressed blocks.
// Each block decompresses to a run of <page> elements with no enclosing root
// element. The offset of each block is recorded in the dump's index so a
// single page can be read by decompressing only the block that holds it.
//
// Blocks are normally bzip2 streams. gzip members, zstd frames and LZ4 frames
// are also recognized by their magic bytes.
package archive
