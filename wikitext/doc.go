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

// Package wikitext parses MediaWiki markup into a tree of nodes.
//
// The parser is not a full MediaWiki preprocessor. Templates, parser
// functions and template parameters are recognized and kept in the tree but
// never expanded. Bold and italic markup is reported as toggle markers in
// document order rather than as matched pairs; consumers decide whether a
// marker opens or closes by counting occurrences.
//
// Parse never fails. Markup that cannot be recognized is kept as text.
package wikitext
