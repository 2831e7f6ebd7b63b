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
	"fmt"

	"github.com/urfave/cli/v2"
)

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:  "info",
		Usage: "Print dump information",
		Action: func(c *cli.Context) error {
			d, _, _, err := openDump(c)
			if err != nil {
				return err
			}
			defer d.Close()

			w := c.App.Writer
			fmt.Fprintf(w, "Archive:      %s\n", d.Path())
			fmt.Fprintf(w, "Index:        %s\n", d.IndexPath())
			fmt.Fprintf(w, "Size:         %d\n", d.Size())
			fmt.Fprintf(w, "Entries:      %d\n", d.Index().Size())
			fmt.Fprintf(w, "Skipped:      %d\n", d.Index().Skipped())
			return nil
		},
	}
}
