/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/nourishnav/cmd"
)

func main() {
	app := &cli.Command{
		Name:  "nourishnav",
		Usage: "NourishNav - child growth assessment against the WHO standards",
		Commands: []*cli.Command{
			cmd.CmdStart,
			cmd.CmdReport,
			cmd.CmdReference,
			cmd.CmdMigrate,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
