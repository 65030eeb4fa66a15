/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package reference loads WHO LMS reference tables into immutable growth.ReferenceSets.
package reference

import (
	"bytes"
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/humaidq/nourishnav/growth"
	"github.com/humaidq/nourishnav/logging"
)

var logger = logging.Logger(logging.SourceReference)

//go:embed data/*.csv
var embeddedData embed.FS

// Loader produces reference sets. Implementations decide the storage format
// and location.
type Loader interface {
	Load() (*growth.ReferenceSets, error)
}

// FSLoader reads one CSV file per indicator and sex from a filesystem.
type FSLoader struct {
	FS     fs.FS
	Source string
}

// Dir returns a loader for reference files in a directory on disk.
func Dir(path string) FSLoader {
	return FSLoader{FS: os.DirFS(path), Source: path}
}

// Embedded returns a loader for the reference tables compiled into the binary.
func Embedded() FSLoader {
	sub, err := fs.Sub(embeddedData, "data")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(err)
	}

	return FSLoader{FS: sub, Source: "embedded"}
}

// LoaderFor returns a directory loader for path, or the embedded loader when
// path is empty.
func LoaderFor(path string) Loader {
	if path == "" {
		return Embedded()
	}

	return Dir(path)
}

// LoadReferenceSets loads reference sets from path, or from the embedded
// tables when path is empty.
func LoadReferenceSets(path string) (*growth.ReferenceSets, error) {
	return LoaderFor(path).Load()
}

// FileName returns the file holding the table for the indicator and sex.
func FileName(ind growth.Indicator, sex growth.Sex) string {
	var stem string

	switch ind {
	case growth.WeightForAge:
		stem = "wfa"
	case growth.LengthForAge:
		stem = "lhfa"
	case growth.WeightForLength:
		stem = "wfl"
	}

	if sex == growth.SexGirl {
		return stem + "_girls.csv"
	}

	return stem + "_boys.csv"
}

// Load reads all six tables. Any missing or malformed file fails the whole
// load with growth.ErrConfiguration.
func (l FSLoader) Load() (*growth.ReferenceSets, error) {
	tables := make([]growth.Table, 0, 2*len(growth.Indicators))

	for _, ind := range growth.Indicators {
		for _, sex := range []growth.Sex{growth.SexBoy, growth.SexGirl} {
			name := FileName(ind, sex)

			data, err := fs.ReadFile(l.FS, name)
			if err != nil {
				return nil, fmt.Errorf("%w: failed to read %s from %s: %w", growth.ErrConfiguration, name, l.Source, err)
			}

			table, err := ParseTable(bytes.NewReader(data), ind, sex)
			if err != nil {
				return nil, fmt.Errorf("%w: failed to parse %s from %s: %w", growth.ErrConfiguration, name, l.Source, err)
			}

			logger.Debug("loaded reference table", "file", name, "source", l.Source, "rows", len(table.Rows))
			tables = append(tables, table)
		}
	}

	sets, err := growth.NewReferenceSets(tables...)
	if err != nil {
		return nil, err
	}

	logger.Info("reference sets loaded", "source", l.Source, "tables", len(tables))

	return sets, nil
}

// ParseTable reads an LMS table. The first column is the key whatever its
// header says; it is relabelled to the indicator's key name. L, M and S are
// located by header name, so extra columns such as published SD curves are
// ignored. Comma and tab delimiters are both accepted.
func ParseTable(r io.Reader, ind growth.Indicator, sex growth.Sex) (growth.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return growth.Table{}, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	if firstLine, _, _ := bytes.Cut(data, []byte("\n")); bytes.Contains(firstLine, []byte("\t")) {
		reader.Comma = '\t'
	}

	header, err := reader.Read()
	if err == io.EOF {
		return growth.Table{}, errMissingHeader
	}

	if err != nil {
		return growth.Table{}, err
	}

	lCol, mCol, sCol := -1, -1, -1

	for i, name := range header {
		switch strings.ToUpper(strings.TrimSpace(name)) {
		case "L":
			lCol = i
		case "M":
			mCol = i
		case "S":
			sCol = i
		}
	}

	if lCol <= 0 || mCol <= 0 || sCol <= 0 {
		return growth.Table{}, errMissingColumn
	}

	width := max(lCol, mCol, sCol) + 1
	table := growth.Table{Indicator: ind, Sex: sex, KeyName: ind.KeyName()}

	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return growth.Table{}, err
		}

		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}

		line, _ := reader.FieldPos(0)
		if len(rec) < width {
			return growth.Table{}, fmt.Errorf("line %d: %w", line, errShortRow)
		}

		var row growth.Row

		for _, f := range []struct {
			dst *float64
			col int
		}{{&row.Key, 0}, {&row.L, lCol}, {&row.M, mCol}, {&row.S, sCol}} {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[f.col]), 64)
			if err != nil {
				return growth.Table{}, fmt.Errorf("line %d column %q: %w", line, header[f.col], err)
			}

			*f.dst = v
		}

		table.Rows = append(table.Rows, row)
	}

	if len(table.Rows) == 0 {
		return growth.Table{}, errNoRows
	}

	return table, nil
}
