/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package growth

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sex selects the reference set a child is compared against.
type Sex string

// Sex values supported by the WHO child growth standards.
const (
	SexBoy  Sex = "boy"
	SexGirl Sex = "girl"
)

// ParseSex accepts the common spellings used by caretaker input.
func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "boy", "male", "m", "boys":
		return SexBoy, nil
	case "girl", "female", "f", "girls":
		return SexGirl, nil
	default:
		return "", fmt.Errorf("%w: %q", errUnknownSex, s)
	}
}

// Valid reports whether s is one of the known values.
func (s Sex) Valid() bool {
	return s == SexBoy || s == SexGirl
}

// Indicator identifies one of the three classified growth indicators.
type Indicator string

// Indicator values, each with its own reference table and key dimension.
const (
	WeightForAge    Indicator = "weight_for_age"
	LengthForAge    Indicator = "length_for_age"
	WeightForLength Indicator = "weight_for_length"
)

// Indicators lists every indicator in report order.
var Indicators = []Indicator{WeightForAge, LengthForAge, WeightForLength}

// Valid reports whether i is one of the known indicators.
func (i Indicator) Valid() bool {
	switch i {
	case WeightForAge, LengthForAge, WeightForLength:
		return true
	default:
		return false
	}
}

// KeyName returns the semantic label of the table key column.
func (i Indicator) KeyName() string {
	if i == WeightForLength {
		return "Length (cm)"
	}

	return "Age (months)"
}

// Input bounds used to sanitize caretaker input. They are not classification logic.
// The weight lower bound is exclusive.
const (
	MinAgeMonths = 0
	MaxAgeMonths = 24

	MinWeightKg = 0.0
	MaxWeightKg = 25.0

	MinHeightCm = 40.0
	MaxHeightCm = 110.0

	MinHeadCircumferenceCm = 0.0
	MaxHeadCircumferenceCm = 60.0
)

// Record is a single anthropometric measurement of a child. Records are never
// mutated after creation; corrections are new records.
type Record struct {
	ID                  uuid.UUID `json:"id"`
	Date                time.Time `json:"date"`
	AgeMonths           int       `json:"age_months"`
	Sex                 Sex       `json:"sex"`
	WeightKg            float64   `json:"weight_kg"`
	HeightCm            float64   `json:"height_cm"`
	HeadCircumferenceCm float64   `json:"head_circumference_cm"`
}

// RecordKey identifies a record within a profile.
type RecordKey struct {
	Date      time.Time
	AgeMonths int
}

// Key returns the (date, age) pair that must be unique within a profile.
func (r Record) Key() RecordKey {
	return RecordKey{Date: Day(r.Date), AgeMonths: r.AgeMonths}
}

// Validate checks the record against the input bounds.
func (r Record) Validate() error {
	if r.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}

	if !r.Sex.Valid() {
		return fmt.Errorf("%w: %q", errUnknownSex, r.Sex)
	}

	if r.AgeMonths < MinAgeMonths || r.AgeMonths > MaxAgeMonths {
		return fmt.Errorf("%w: age_months %d outside %d-%d",
			ErrValidation, r.AgeMonths, MinAgeMonths, MaxAgeMonths)
	}

	if err := checkBounds("weight_kg", r.WeightKg, MinWeightKg, MaxWeightKg); err != nil {
		return err
	}

	if r.WeightKg <= MinWeightKg {
		return fmt.Errorf("%w: weight_kg must be greater than %v", ErrValidation, MinWeightKg)
	}

	if err := checkBounds("height_cm", r.HeightCm, MinHeightCm, MaxHeightCm); err != nil {
		return err
	}

	return checkBounds("head_circumference_cm", r.HeadCircumferenceCm, MinHeadCircumferenceCm, MaxHeadCircumferenceCm)
}

func checkBounds(field string, v, lo, hi float64) error {
	if math.IsNaN(v) || v < lo || v > hi {
		return fmt.Errorf("%w: %s %v outside %v-%v", ErrValidation, field, v, lo, hi)
	}

	return nil
}

// Day truncates t to its calendar day in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Row is one line of an LMS reference table.
type Row struct {
	Key float64 `json:"key"`
	L   float64 `json:"l"`
	M   float64 `json:"m"`
	S   float64 `json:"s"`
}

// Table is the reference table for one indicator and sex, sorted by Key.
type Table struct {
	Indicator Indicator `json:"indicator"`
	Sex       Sex       `json:"sex"`
	KeyName   string    `json:"key_name"`
	Rows      []Row     `json:"rows"`
}

// Category is the clinical label assigned to a z-score.
type Category string

// Category values.
const (
	CategoryNormal      Category = "Normal"
	CategoryUnderweight Category = "Underweight"
	CategoryStunted     Category = "Stunted"
	CategoryWasted      Category = "Wasted"
	CategoryOverweight  Category = "Overweight"
)

// Severity grades a non-normal category.
type Severity string

// Severity values.
const (
	SeverityNone     Severity = "none"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// Classification is the derived result for one indicator.
type Classification struct {
	Indicator Indicator `json:"indicator"`
	ZScore    float64   `json:"z_score"`
	Category  Category  `json:"category"`
	Severity  Severity  `json:"severity"`
	Reference Row       `json:"reference"`
}

// Report is the result of assessing a single record.
type Report struct {
	Profile         string           `json:"profile,omitempty"`
	Record          Record           `json:"record"`
	Classifications []Classification `json:"classifications"`
}

// Classification returns the result for the given indicator.
func (r *Report) Classification(ind Indicator) (Classification, bool) {
	for _, c := range r.Classifications {
		if c.Indicator == ind {
			return c, true
		}
	}

	return Classification{}, false
}
