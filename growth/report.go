/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package growth

import "fmt"

// RecordSource hands back the most recent record of a profile. It returns
// ErrNoData when the profile has no records.
type RecordSource interface {
	LatestRecord(profile string) (Record, error)
}

// BuildReport classifies the latest record of a profile. ErrNoData is passed
// through unwrapped so callers can render a prompt instead of an error.
func BuildReport(src RecordSource, profile string, refs *ReferenceSets) (*Report, error) {
	rec, err := src.LatestRecord(profile)
	if err != nil {
		return nil, err
	}

	report, err := Assess(rec, refs)
	if err != nil {
		return nil, err
	}

	report.Profile = profile

	return report, nil
}

// Assess computes and classifies all three indicators for a single record.
// Each indicator resolves its own reference row: age keys weight-for-age and
// length-for-age, height keys weight-for-length.
func Assess(rec Record, refs *ReferenceSets) (*Report, error) {
	if refs == nil {
		return nil, fmt.Errorf("%w: reference sets not loaded", ErrConfiguration)
	}

	if !rec.Sex.Valid() {
		return nil, fmt.Errorf("%w: %q", errUnknownSex, rec.Sex)
	}

	report := &Report{
		Record:          rec,
		Classifications: make([]Classification, 0, len(Indicators)),
	}

	for _, ind := range Indicators {
		key, value := lookupKey(ind, rec), measuredValue(ind, rec)

		row, err := refs.Nearest(ind, rec.Sex, key)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s reference: %w", ind, err)
		}

		z, err := row.ZScore(value)
		if err != nil {
			return nil, fmt.Errorf("failed to compute %s z-score: %w", ind, err)
		}

		c, err := Classify(ind, z)
		if err != nil {
			return nil, err
		}

		c.Reference = row
		report.Classifications = append(report.Classifications, c)
	}

	return report, nil
}

func lookupKey(ind Indicator, rec Record) float64 {
	if ind == WeightForLength {
		return rec.HeightCm
	}

	return float64(rec.AgeMonths)
}

func measuredValue(ind Indicator, rec Record) float64 {
	if ind == LengthForAge {
		return rec.HeightCm
	}

	return rec.WeightKg
}
