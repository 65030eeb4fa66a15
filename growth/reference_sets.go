/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package growth

import (
	"fmt"
	"math"
	"sort"
)

type tableKey struct {
	indicator Indicator
	sex       Sex
}

// ReferenceSets holds one LMS table per indicator and sex. It is immutable
// after construction and safe for concurrent use without locking.
type ReferenceSets struct {
	tables map[tableKey]Table
}

// NewReferenceSets validates and copies the given tables. Every indicator must
// be present for both sexes. Rows are sorted by key; duplicate keys, non-positive
// M or S, and non-finite values are rejected with ErrConfiguration.
func NewReferenceSets(tables ...Table) (*ReferenceSets, error) {
	sets := &ReferenceSets{tables: make(map[tableKey]Table, len(tables))}

	for _, t := range tables {
		if !t.Indicator.Valid() {
			return nil, fmt.Errorf("%w: unknown indicator %q", ErrConfiguration, t.Indicator)
		}

		if !t.Sex.Valid() {
			return nil, fmt.Errorf("%w: unknown sex %q for %s", ErrConfiguration, t.Sex, t.Indicator)
		}

		key := tableKey{indicator: t.Indicator, sex: t.Sex}
		if _, exists := sets.tables[key]; exists {
			return nil, fmt.Errorf("%w: duplicate table %s/%s", ErrConfiguration, t.Indicator, t.Sex)
		}

		rows, err := normalizeRows(t.Rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s/%s: %w", ErrConfiguration, t.Indicator, t.Sex, err)
		}

		keyName := t.KeyName
		if keyName == "" {
			keyName = t.Indicator.KeyName()
		}

		sets.tables[key] = Table{
			Indicator: t.Indicator,
			Sex:       t.Sex,
			KeyName:   keyName,
			Rows:      rows,
		}
	}

	for _, ind := range Indicators {
		for _, sex := range []Sex{SexBoy, SexGirl} {
			if _, ok := sets.tables[tableKey{indicator: ind, sex: sex}]; !ok {
				return nil, fmt.Errorf("%w: missing table %s/%s", ErrConfiguration, ind, sex)
			}
		}
	}

	return sets, nil
}

func normalizeRows(in []Row) ([]Row, error) {
	if len(in) == 0 {
		return nil, ErrEmptyTable
	}

	rows := make([]Row, len(in))
	copy(rows, in)

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Key < rows[j].Key
	})

	for i, r := range rows {
		for _, v := range []float64{r.Key, r.L, r.M, r.S} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("row with key %v has a non-finite value", r.Key)
			}
		}

		if r.M <= 0 || r.S <= 0 {
			return nil, fmt.Errorf("row with key %v has non-positive M or S", r.Key)
		}

		if i > 0 && rows[i-1].Key == r.Key {
			return nil, fmt.Errorf("duplicate key %v", r.Key)
		}
	}

	return rows, nil
}

// Nearest resolves the closest reference row for the indicator and sex.
func (r *ReferenceSets) Nearest(ind Indicator, sex Sex, key float64) (Row, error) {
	t, ok := r.tables[tableKey{indicator: ind, sex: sex}]
	if !ok {
		return Row{}, fmt.Errorf("%w: no table for %s/%s", ErrConfiguration, ind, sex)
	}

	return Nearest(t.Rows, key)
}

// Table returns a copy of the table for the indicator and sex.
func (r *ReferenceSets) Table(ind Indicator, sex Sex) (Table, bool) {
	t, ok := r.tables[tableKey{indicator: ind, sex: sex}]
	if !ok {
		return Table{}, false
	}

	rows := make([]Row, len(t.Rows))
	copy(rows, t.Rows)
	t.Rows = rows

	return t, true
}

// Tables returns copies of all tables in indicator order, boys first.
func (r *ReferenceSets) Tables() []Table {
	tables := make([]Table, 0, len(r.tables))

	for _, ind := range Indicators {
		for _, sex := range []Sex{SexBoy, SexGirl} {
			if t, ok := r.Table(ind, sex); ok {
				tables = append(tables, t)
			}
		}
	}

	return tables
}
