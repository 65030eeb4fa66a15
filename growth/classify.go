/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package growth

import "fmt"

// Threshold z-scores. Comparisons are strict, so a z-score sitting exactly on
// a threshold stays in the milder band.
const (
	ModerateLowZ  = -2.0
	SevereLowZ    = -3.0
	ModerateHighZ = 2.0
	SevereHighZ   = 3.0
)

// CategoryFor applies the indicator's threshold rule to z.
//
//	weight-for-age:    z < -2 Underweight
//	length-for-age:    z < -2 Stunted
//	weight-for-length: z < -2 Wasted, z > 2 Overweight
func CategoryFor(ind Indicator, z float64) (Category, error) {
	switch ind {
	case WeightForAge:
		if z < ModerateLowZ {
			return CategoryUnderweight, nil
		}
	case LengthForAge:
		if z < ModerateLowZ {
			return CategoryStunted, nil
		}
	case WeightForLength:
		if z < ModerateLowZ {
			return CategoryWasted, nil
		}

		if z > ModerateHighZ {
			return CategoryOverweight, nil
		}
	default:
		return "", fmt.Errorf("%w: %q", errUnknownIndicator, ind)
	}

	return CategoryNormal, nil
}

// SeverityOf grades z for the indicator. Normal results have SeverityNone;
// otherwise z < -3 (or z > 3 for Overweight) is severe and anything else moderate.
func SeverityOf(ind Indicator, z float64) (Severity, error) {
	cat, err := CategoryFor(ind, z)
	if err != nil {
		return "", err
	}

	switch cat {
	case CategoryNormal:
		return SeverityNone, nil
	case CategoryOverweight:
		if z > SevereHighZ {
			return SeveritySevere, nil
		}
	default:
		if z < SevereLowZ {
			return SeveritySevere, nil
		}
	}

	return SeverityModerate, nil
}

// Classify builds the classification of z for the indicator.
func Classify(ind Indicator, z float64) (Classification, error) {
	cat, err := CategoryFor(ind, z)
	if err != nil {
		return Classification{}, err
	}

	sev, err := SeverityOf(ind, z)
	if err != nil {
		return Classification{}, err
	}

	return Classification{
		Indicator: ind,
		ZScore:    z,
		Category:  cat,
		Severity:  sev,
	}, nil
}
