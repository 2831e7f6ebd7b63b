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

// Package resource holds named static resources, such as page shells and
// style sheets, with a MIME type inferred from their file extension.
package resource

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

//go:embed assets
var assets embed.FS

// mimeTypes maps file extensions to MIME types.
var mimeTypes = map[string]string{
	".txt":  "text/plain",
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// MIMEType returns the MIME type of the named resource. Unknown extensions
// are "application/octet-stream".
func MIMEType(name string) string {
	if t, ok := mimeTypes[strings.ToLower(path.Ext(name))]; ok {
		return t
	}
	return "application/octet-stream"
}

// Resource is a named blob of data.
type Resource struct {
	// Name is the resource name.
	Name string

	// MIMEType is the MIME type inferred from the name.
	MIMEType string

	// Data is the resource contents.
	Data []byte
}

// String returns the resource contents as a string.
func (r *Resource) String() string {
	return string(r.Data)
}

// Table is a set of resources keyed by name.
type Table struct {
	resources map[string]*Resource
}

// New returns an empty table.
func New() *Table {
	return &Table{
		resources: map[string]*Resource{},
	}
}

// Register adds a resource to the table, replacing any resource with the
// same name.
func (t *Table) Register(name string, data []byte) {
	t.resources[name] = &Resource{
		Name:     name,
		MIMEType: MIMEType(name),
		Data:     data,
	}
}

// Find returns the named resource.
func (t *Table) Find(name string) (*Resource, bool) {
	r, ok := t.resources[name]
	return r, ok
}

// Load registers every regular file in fsys under its slash separated path.
func Load(fsys fs.FS) (*Table, error) {
	t := New()
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("reading %q: %w", p, err)
		}
		t.Register(p, data)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading resources: %w", err)
	}
	return t, nil
}

// Embedded returns the table of built in resources: the "article.html" and
// "search.html" page shells and "styles.css".
func Embedded() *Table {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(err)
	}
	t, err := Load(sub)
	if err != nil {
		panic(err)
	}
	return t
}
