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
	"errors"
	"fmt"
)

var (
	// ErrIO indicates that the dump file could not be opened, mapped or read.
	ErrIO = errors.New("archive i/o")

	// ErrArticleNotFound indicates that the block at the entry's offset does
	// not hold a page with the entry's id.
	ErrArticleNotFound = errors.New("article not found")

	// ErrMissingProperty indicates that a page is missing a required element.
	ErrMissingProperty = errors.New("missing property")

	// ErrParse indicates that a block could not be decoded or a page value
	// could not be parsed.
	ErrParse = errors.New("parsing archive")

	// ErrOffset indicates that an entry's offset is outside the dump file.
	ErrOffset = errors.New("offset out of range")
)

// MissingPropertyError reports the element a page is missing.
type MissingPropertyError struct {
	// Field is the name of the missing element.
	Field string
}

func (e *MissingPropertyError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingProperty, e.Field)
}

// Is reports whether target is ErrMissingProperty.
func (e *MissingPropertyError) Is(target error) bool {
	return target == ErrMissingProperty
}
