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

// Package config loads the wikidump configuration file.
//
// The configuration file is YAML. Values given on the command line take
// precedence over the file. Paths may refer to environment variables as
// ${VAR} or ${VAR:-default}.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/ianlewis/go-wikidump/index"
)

// DefaultListen is the default HTTP listen address.
const DefaultListen = "127.0.0.1:8080"

// Config is the wikidump configuration.
type Config struct {
	// Archive is the path to the multistream dump.
	Archive string `yaml:"archive"`

	// Index is the path to the index file. If empty, the index is looked up
	// next to the archive.
	Index string `yaml:"index"`

	// Listen is the address the server listens on.
	Listen string `yaml:"listen"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`

	// SearchLimit is the maximum number of search results. At most
	// index.MaxResults.
	SearchLimit int `yaml:"search_limit"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Listen:      DefaultListen,
		LogLevel:    "info",
		SearchLimit: index.MaxResults,
	}
}

// LoadFile loads configuration from path on top of the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %q: %w", path, err)
	}

	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) expandVariables() {
	c.Archive = expandVars(c.Archive)
	c.Index = expandVars(c.Index)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns.
func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if c.SearchLimit < 1 || c.SearchLimit > index.MaxResults {
		errs = append(errs, fmt.Errorf("search_limit must be between 1 and %d, got %d", index.MaxResults, c.SearchLimit))
	}
	if c.Listen == "" {
		errs = append(errs, errors.New("listen is required"))
	}

	return errors.Join(errs...)
}
