/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package growth

import (
	"fmt"
	"math"
)

// ZScore converts a measurement to a standard score with the LMS (Box-Cox)
// method. No rounding is applied.
func ZScore(x, l, m, s float64) (float64, error) {
	switch {
	case !(x > 0) || math.IsInf(x, 0):
		return 0, fmt.Errorf("%w: measurement %v must be positive", ErrDomain, x)
	case !(m > 0) || math.IsInf(m, 0):
		return 0, fmt.Errorf("%w: median %v must be positive", ErrDomain, m)
	case !(s > 0) || math.IsInf(s, 0):
		return 0, fmt.Errorf("%w: coefficient of variation %v must be positive", ErrDomain, s)
	case math.IsNaN(l) || math.IsInf(l, 0):
		return 0, fmt.Errorf("%w: power %v must be finite", ErrDomain, l)
	}

	if l == 0 {
		return math.Log(x/m) / s, nil
	}

	return (math.Pow(x/m, l) - 1) / (l * s), nil
}

// ZScore computes the standard score of x against this row.
func (r Row) ZScore(x float64) (float64, error) {
	return ZScore(x, r.L, r.M, r.S)
}
