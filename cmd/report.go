/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/nourishnav/growth"
	"github.com/humaidq/nourishnav/reference"
)

var CmdReport = newReportCommand()

func newReportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Classify a single measurement against the WHO standards",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "sex",
				Usage:    "boy or girl",
				Required: true,
			},
			&cli.IntFlag{
				Name:     "age",
				Usage:    "age in completed months (0-24)",
				Required: true,
			},
			&cli.FloatFlag{
				Name:     "weight",
				Usage:    "weight in kg",
				Required: true,
			},
			&cli.FloatFlag{
				Name:     "height",
				Usage:    "length or height in cm",
				Required: true,
			},
			&cli.FloatFlag{
				Name:  "head",
				Usage: "head circumference in cm",
			},
			&cli.StringFlag{
				Name:    "reference-dir",
				Sources: cli.EnvVars("REFERENCE_DIR"),
				Usage:   "directory with WHO LMS CSV tables (embedded tables when empty)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the report as JSON",
			},
		},
		Action: runReport,
	}
}

func runReport(_ context.Context, cmd *cli.Command) error {
	sex, err := growth.ParseSex(cmd.String("sex"))
	if err != nil {
		return fmt.Errorf("%w: %v", errInvalidSex, err)
	}

	rec := growth.Record{
		Date:                growth.Day(time.Now()),
		AgeMonths:           cmd.Int("age"),
		Sex:                 sex,
		WeightKg:            cmd.Float("weight"),
		HeightCm:            cmd.Float("height"),
		HeadCircumferenceCm: cmd.Float("head"),
	}

	if err := rec.Validate(); err != nil {
		return err
	}

	refs, err := reference.LoadReferenceSets(cmd.String("reference-dir"))
	if err != nil {
		return fmt.Errorf("failed to load reference data: %w", err)
	}

	report, err := growth.Assess(rec, refs)
	if err != nil {
		return err
	}

	out := cmd.Root().Writer
	if cmd.Bool("json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")

		return enc.Encode(report)
	}

	return printReport(out, report)
}

func printReport(w io.Writer, report *growth.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Sex:\t%s\n", report.Record.Sex)
	fmt.Fprintf(tw, "Age:\t%d months\n", report.Record.AgeMonths)
	fmt.Fprintf(tw, "Weight:\t%.2f kg\n", report.Record.WeightKg)
	fmt.Fprintf(tw, "Length:\t%.1f cm\n\n", report.Record.HeightCm)
	fmt.Fprintln(tw, "INDICATOR\tZ-SCORE\tCATEGORY\tSEVERITY\tREFERENCE KEY")

	for _, c := range report.Classifications {
		fmt.Fprintf(tw, "%s\t%.2f\t%s\t%s\t%g\n", c.Indicator, c.ZScore, c.Category, c.Severity, c.Reference.Key)
	}

	return tw.Flush()
}
