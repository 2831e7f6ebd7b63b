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

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
)

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search article titles",
		ArgsUsage: "QUERY",
		Description: "Print the articles whose title starts with QUERY, ignoring case.\n" +
			"Shorter titles are printed first.",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Usage:   "print at most `N` results",
				Aliases: []string{"n"},
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("%w: %w", ErrFlagParse, errors.New("expected one QUERY argument"))
			}

			d, cfg, _, err := openDump(c)
			if err != nil {
				return err
			}
			defer d.Close()

			limit := cfg.SearchLimit
			if c.IsSet("limit") {
				limit = c.Int("limit")
			}

			tbl := table.New("Title", "ID", "Offset").WithWriter(c.App.Writer)
			for _, e := range d.Search(strings.TrimSpace(c.Args().First()), limit) {
				tbl.AddRow(e.Title, e.ID, e.Offset)
			}
			tbl.Print()
			return nil
		},
	}
}
