/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/nourishnav/reference"
)

var CmdReference = newReferenceCommand()

func newReferenceCommand() *cli.Command {
	return &cli.Command{
		Name:  "reference",
		Usage: "Reference data commands",
		Commands: []*cli.Command{
			{
				Name:  "check",
				Usage: "Validate a reference directory and summarize its tables",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "dir",
						Sources: cli.EnvVars("REFERENCE_DIR"),
						Usage:   "directory with WHO LMS CSV tables (embedded tables when empty)",
					},
				},
				Action: referenceCheck,
			},
		},
	}
}

func referenceCheck(_ context.Context, cmd *cli.Command) error {
	dir := cmd.String("dir")

	refs, err := reference.LoadReferenceSets(dir)
	if err != nil {
		return err
	}

	source := dir
	if source == "" {
		source = "embedded"
	}

	tw := tabwriter.NewWriter(cmd.Root().Writer, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Source:\t%s\n\n", source)
	fmt.Fprintln(tw, "FILE\tKEY\tROWS\tFIRST\tLAST")

	for _, t := range refs.Tables() {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%g\t%g\n",
			reference.FileName(t.Indicator, t.Sex), t.KeyName, len(t.Rows),
			t.Rows[0].Key, t.Rows[len(t.Rows)-1].Key)
	}

	return tw.Flush()
}
