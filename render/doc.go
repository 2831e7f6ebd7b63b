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

// Package render converts article markup to HTML.
//
// Rendering is a single depth first walk over the tree produced by
// [wikitext.Parse]. Bold, italic, bold italic and comment markers are
// toggles: each marker flips its state and emits an opening or closing tag
// accordingly. The four toggles are independent, so irregular markup can
// produce tags that are not well nested. Templates, template parameters and
// magic words produce no output.
package render
