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
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-wikidump/internal/server"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve articles over HTTP",
		Description: "Serve articles from the dump on a local HTTP listener.\n" +
			"Articles are at /article/TITLE and search results at /search?q=QUERY.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "listen",
				Usage:   "listen on `ADDR`",
				Aliases: []string{"l"},
				EnvVars: []string{"WIKIDUMP_LISTEN"},
			},
		},
		Action: func(c *cli.Context) error {
			d, cfg, logger, err := openDump(c)
			if err != nil {
				return err
			}
			defer d.Close()

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(d, &server.Options{
				SearchLimit: cfg.SearchLimit,
				Logger:      logger,
			})
			if err := srv.ListenAndServe(ctx, cfg.Listen); err != nil {
				return fmt.Errorf("%w: %w", ErrWikidump, err)
			}
			return nil
		},
	}
}
