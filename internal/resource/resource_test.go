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

package resource

import (
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestMIMEType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		expected string
	}{
		{"notes.txt", "text/plain"},
		{"article.html", "text/html"},
		{"styles.css", "text/css"},
		{"app.js", "application/javascript"},
		{"logo.png", "image/png"},
		{"photo.jpg", "image/jpeg"},
		{"photo.JPEG", "image/jpeg"},
		{"archive.tar", "application/octet-stream"},
		{"README", "application/octet-stream"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, MIMEType(test.name)); diff != "" {
				t.Fatalf("MIMEType (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestTable(t *testing.T) {
	t.Parallel()

	table := New()
	table.Register("a.css", []byte("body{}"))

	r, ok := table.Find("a.css")
	if !ok {
		t.Fatalf("Find: resource not found")
	}
	want := &Resource{Name: "a.css", MIMEType: "text/css", Data: []byte("body{}")}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Fatalf("Find (-want, +got):\n%s", diff)
	}

	if _, ok := table.Find("b.css"); ok {
		t.Fatalf("Find: unexpected resource")
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"page.html":    {Data: []byte("<p>{{body}}</p>")},
		"img/logo.png": {Data: []byte{0x89, 'P', 'N', 'G'}},
		"empty/.keep":  {Data: nil},
	}

	table, err := Load(fsys)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	r, ok := table.Find("img/logo.png")
	if !ok {
		t.Fatalf("Find: resource not found")
	}
	if diff := cmp.Diff("image/png", r.MIMEType); diff != "" {
		t.Errorf("MIMEType (-want, +got):\n%s", diff)
	}

	r, ok = table.Find("page.html")
	if !ok {
		t.Fatalf("Find: resource not found")
	}
	if diff := cmp.Diff("<p>{{body}}</p>", r.String()); diff != "" {
		t.Errorf("String (-want, +got):\n%s", diff)
	}
}

func TestEmbedded(t *testing.T) {
	t.Parallel()

	table := Embedded()
	for _, name := range []string{"article.html", "search.html", "styles.css"} {
		if _, ok := table.Find(name); !ok {
			t.Errorf("Find(%q): resource not found", name)
		}
	}
}
