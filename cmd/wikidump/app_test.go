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

package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testArchive = "../../testdata/simplewiki-multistream.xml.bz2"

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := newWikidumpApp()
	app.Writer = &out
	app.ErrWriter = io.Discard
	err := app.Run(append([]string{"wikidump"}, args...))
	return out.String(), err
}

func TestApp_search(t *testing.T) {
	t.Parallel()

	out, err := runApp(t, "--archive", testArchive, "search", "ap")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if got, want := len(lines), 3; got != want {
		t.Fatalf("lines: want %d, got %d:\n%s", want, got, out)
	}
	for i, want := range []string{"Title", "Apr", "April"} {
		if got := strings.Fields(lines[i])[0]; got != want {
			t.Errorf("line %d: want %q, got %q", i, want, got)
		}
	}
	if got, want := strings.Fields(lines[1]), []string{"Apr", "8", "579"}; strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("row: want %q, got %q", want, got)
	}
}

func TestApp_search_limit(t *testing.T) {
	t.Parallel()

	out, err := runApp(t, "--archive", testArchive, "search", "--limit", "1", "a")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got, want := len(strings.Split(strings.TrimSpace(out), "\n")), 2; got != want {
		t.Errorf("lines: want %d, got %d:\n%s", want, got, out)
	}
}

func TestApp_show(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		args []string
		want []string
	}{
		"text": {
			args: []string{"show", "august"},
			want: []string{"August\n\n", "August is the eighth month."},
		},
		"html": {
			args: []string{"show", "--html", "August"},
			want: []string{"<strong>August</strong> is the eighth month."},
		},
		"words": {
			args: []string{"show", "--html", "Art"},
			want: []string{"<em>Art</em> is a creative activity."},
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			out, err := runApp(t, append([]string{"--archive", testArchive}, tc.args...)...)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			for _, want := range tc.want {
				if !strings.Contains(out, want) {
					t.Errorf("output: want %q in %q", want, out)
				}
			}
		})
	}
}

func TestApp_info(t *testing.T) {
	t.Parallel()

	out, err := runApp(t, "--archive", testArchive, "info")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, want := range []string{
		"Index:        ../../testdata/simplewiki-multistream-index.txt.bz2\n",
		"Size:         911\n",
		"Entries:      4\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output: want %q in %q", want, out)
		}
	}
}

func TestApp_config(t *testing.T) {
	t.Parallel()

	archive, err := filepath.Abs(testArchive)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "wikidump.yaml")
	data := "archive: " + archive + "\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := runApp(t, "--config", path, "info")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out, "Entries:      4\n") {
		t.Errorf("output: want entry count in %q", out)
	}
}

func TestApp_errors(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		args []string
		err  error
	}{
		"no archive": {
			args: []string{"info"},
			err:  ErrFlagParse,
		},
		"bad log level": {
			args: []string{"--archive", testArchive, "--log-level", "loud", "info"},
			err:  ErrConfig,
		},
		"search without query": {
			args: []string{"--archive", testArchive, "search"},
			err:  ErrFlagParse,
		},
		"show unknown title": {
			args: []string{"--archive", testArchive, "show", "Banana"},
			err:  ErrWikidump,
		},
		"missing config": {
			args: []string{"--config", "missing.yaml", "info"},
			err:  ErrConfig,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := runApp(t, tc.args...)
			if !errors.Is(err, tc.err) {
				t.Errorf("Run: want %v, got %v", tc.err, err)
			}
		})
	}
}
