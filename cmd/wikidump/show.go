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
	"strings"

	"github.com/urfave/cli/v2"
)

func showCommand() *cli.Command {
	return &cli.Command{
		Name:        "show",
		Usage:       "Print an article",
		ArgsUsage:   "TITLE",
		Description: "Print the article with the given title as text, or as HTML with --html.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:               "html",
				Usage:              "print the rendered HTML",
				DisableDefaultText: true,
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("%w: %w", ErrFlagParse, errors.New("expected a TITLE argument"))
			}

			d, _, _, err := openDump(c)
			if err != nil {
				return err
			}
			defer d.Close()

			p, err := d.Page(strings.Join(c.Args().Slice(), " "))
			if err != nil {
				return fmt.Errorf("%w: %w", ErrWikidump, err)
			}

			out := p.Text()
			if c.Bool("html") {
				out = p.HTML
			}
			if _, err := fmt.Fprintf(c.App.Writer, "%s\n\n%s\n", p.Title(), out); err != nil {
				return fmt.Errorf("%w: %w", ErrWikidump, err)
			}
			return nil
		},
	}
}
