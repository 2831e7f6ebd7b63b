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
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"

	"github.com/ianlewis/go-wikidump"
	"github.com/ianlewis/go-wikidump/internal/config"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrWikidump is a parent error for all command errors.
var ErrWikidump = errors.New("wikidump")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrWikidump)

// ErrConfig indicates the configuration is invalid.
var ErrConfig = fmt.Errorf("%w: configuration", ErrWikidump)

var copyrightNames = []string{
	"2025 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// which shadows our own --help flag.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

func newWikidumpApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Read offline Wikipedia multistream dumps.",
		Description: strings.Join([]string{
			"Wikipedia dump reader written in Go.",
			"http://github.com/ianlewis/go-wikidump",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "load configuration from `FILE`",
				Aliases: []string{"c"},
				EnvVars: []string{"WIKIDUMP_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "archive",
				Usage:   "read the multistream dump at `PATH`",
				Aliases: []string{"a"},
				EnvVars: []string{"WIKIDUMP_ARCHIVE"},
			},
			&cli.StringFlag{
				Name:    "index",
				Usage:   "read the index at `PATH` instead of the one next to the dump",
				Aliases: []string{"i"},
				EnvVars: []string{"WIKIDUMP_INDEX"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log at `LEVEL` (debug, info, warn, error)",
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			serveCommand(),
			searchCommand(),
			showCommand(),
			infoCommand(),
		},
	}
}

func printVersion(c *cli.Context) error {
	info := version.GetVersionInfo()
	if _, err := fmt.Fprintf(c.App.Writer, "%s %s\n", c.App.Name, info.GitVersion); err != nil {
		return fmt.Errorf("%w: printing version: %w", ErrWikidump, err)
	}
	if _, err := fmt.Fprintln(c.App.Writer, info.String()); err != nil {
		return fmt.Errorf("%w: printing version: %w", ErrWikidump, err)
	}
	return nil
}

// loadConfig loads the configuration file, if any, and applies flags on top
// of it.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		cfg, err = config.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfig, err)
		}
	}

	if c.IsSet("archive") {
		cfg.Archive = c.String("archive")
	}
	if c.IsSet("index") {
		cfg.Index = c.String("index")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("listen") {
		cfg.Listen = c.String("listen")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if cfg.Archive == "" {
		return nil, fmt.Errorf("%w: no archive given", ErrFlagParse)
	}
	return cfg, nil
}

// newLogger returns a text logger on the app's error writer.
func newLogger(c *cli.Context, cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	})), nil
}

// openDump loads the configuration and opens the dump it names.
func openDump(c *cli.Context) (*wikidump.Dump, *config.Config, *slog.Logger, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := newLogger(c, cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	d, err := wikidump.Open(cfg.Archive, &wikidump.Options{
		IndexPath: cfg.Index,
		Logger:    logger,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %w", ErrWikidump, err)
	}
	return d, cfg, logger, nil
}
