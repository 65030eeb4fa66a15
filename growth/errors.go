/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package growth

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks missing, unreadable or malformed reference data.
	// Nothing can be classified until it is corrected.
	ErrConfiguration = errors.New("invalid reference configuration")

	// ErrValidation marks caller input that was rejected.
	ErrValidation = errors.New("validation failed")

	// ErrDomain marks a value outside the domain of the LMS transform.
	ErrDomain = errors.New("value outside LMS domain")

	// ErrEmptyTable is returned when a nearest-match lookup has no rows to search.
	ErrEmptyTable = errors.New("reference table is empty")

	// ErrProfileNotFound is returned for operations on a profile name that does not exist.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrNoData signals that a profile has no growth records yet. It is a normal
	// state, not a failure.
	ErrNoData = errors.New("no growth records")

	// ErrDuplicateRecord is returned when a profile already holds a record with the
	// same date and age.
	ErrDuplicateRecord = fmt.Errorf("%w: duplicate growth record", ErrValidation)

	// ErrInactiveProfile is returned when attaching data to the placeholder profile.
	ErrInactiveProfile = fmt.Errorf("%w: profile cannot accept records", ErrValidation)

	errUnknownIndicator = fmt.Errorf("%w: unknown indicator", ErrValidation)
	errUnknownSex       = fmt.Errorf("%w: unknown sex", ErrValidation)
)
