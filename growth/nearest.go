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

// Nearest returns the row whose key is closest to query. rows must be sorted
// ascending by key. An exact tie resolves to the lower key.
func Nearest(rows []Row, query float64) (Row, error) {
	if len(rows) == 0 {
		return Row{}, ErrEmptyTable
	}

	if math.IsNaN(query) {
		return Row{}, fmt.Errorf("%w: lookup key is NaN", ErrDomain)
	}

	idx := sort.Search(len(rows), func(i int) bool {
		return rows[i].Key >= query
	})

	switch idx {
	case 0:
		return rows[0], nil
	case len(rows):
		return rows[len(rows)-1], nil
	}

	below, above := rows[idx-1], rows[idx]
	if query-below.Key <= above.Key-query {
		return below, nil
	}

	return above, nil
}
