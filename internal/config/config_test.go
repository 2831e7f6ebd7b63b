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

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "wikidump.yaml")
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	t.Setenv("WIKIDUMP_TEST_DIR", "/data")

	tests := []struct {
		name     string
		text     string
		expected *Config
		err      bool
	}{
		{
			name:     "empty",
			text:     "",
			expected: Default(),
		},
		{
			name: "all fields",
			text: "archive: /a.xml.bz2\nindex: /a-index.txt\nlisten: \"127.0.0.1:9000\"\nlog_level: debug\nsearch_limit: 20\n",
			expected: &Config{
				Archive:     "/a.xml.bz2",
				Index:       "/a-index.txt",
				Listen:      "127.0.0.1:9000",
				LogLevel:    "debug",
				SearchLimit: 20,
			},
		},
		{
			name: "variables",
			text: "archive: ${WIKIDUMP_TEST_DIR}/a.xml.bz2\nindex: ${WIKIDUMP_TEST_UNSET:-/idx}/a-index.txt\n",
			expected: &Config{
				Archive:     "/data/a.xml.bz2",
				Index:       "/idx/a-index.txt",
				Listen:      DefaultListen,
				LogLevel:    "info",
				SearchLimit: 100,
			},
		},
		{
			name: "bad log level",
			text: "log_level: loud\n",
			err:  true,
		},
		{
			name: "search limit too large",
			text: "search_limit: 1000\n",
			err:  true,
		},
		{
			name: "invalid yaml",
			text: "archive: [\n",
			err:  true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg, err := LoadFile(writeConfig(t, test.text))
			if test.err {
				if err == nil {
					t.Fatalf("LoadFile: expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadFile: %v", err)
			}
			if diff := cmp.Diff(test.expected, cfg); diff != "" {
				t.Fatalf("LoadFile (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestLoadFile_missing(t *testing.T) {
	t.Parallel()

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("LoadFile: expected error")
	}
}

func TestConfig_Level(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.LogLevel = "warn"
	l, err := cfg.Level()
	if err != nil {
		t.Fatalf("Level: %v", err)
	}
	if diff := cmp.Diff(slog.LevelWarn, l); diff != "" {
		t.Fatalf("Level (-want, +got):\n%s", diff)
	}
}
