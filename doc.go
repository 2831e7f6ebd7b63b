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

// Package wikidump reads articles from offline Wikipedia multistream dumps.
//
// A multistream dump is made of two files:
//  1. The dump itself, for example
//     "enwiki-latest-pages-articles-multistream.xml.bz2". It is a series of
//     independently compressed blocks of about 100 pages each.
//  2. An index, for example
//     "enwiki-latest-pages-articles-multistream-index.txt.bz2". Each line
//     holds the offset of a block in the dump, a page id and a page title,
//     separated by colons.
//
// A [Dump] loads the index into memory and maps the dump file. Looking up an
// article decompresses only the block that holds it. The article's markup is
// rendered to HTML with the render package.
//
// Dumps can be downloaded from https://dumps.wikimedia.org/.
package wikidump
