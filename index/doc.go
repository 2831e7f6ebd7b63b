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

// Package index implements reading multistream dump index files.
//
// The index file is UTF-8 text with one entry per line. Each line comes in
// three parts separated by ASCII colons:
//  1. The offset: the byte offset of the compressed block in the dump file
//     that holds the page.
//  2. The page id: the numeric id of the page, unique across the dump.
//  3. The title: the page title. Titles may themselves contain colons so
//     only the first two colons on a line are separators.
//
// Many entries share an offset since each block holds around a hundred pages.
package index
