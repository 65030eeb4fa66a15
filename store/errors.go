/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package store

import (
	"fmt"

	"github.com/humaidq/nourishnav/growth"
)

var (
	errEmptyName          = fmt.Errorf("%w: profile name is required", growth.ErrValidation)
	errProfileExists      = fmt.Errorf("%w: profile already exists", growth.ErrValidation)
	errReservedProfile    = fmt.Errorf("%w: placeholder profile is reserved", growth.ErrValidation)
	errMissingDate        = fmt.Errorf("%w: date is required", growth.ErrValidation)
	errUnknownFeedingType = fmt.Errorf("%w: unknown feeding type", growth.ErrValidation)
	errEmptyMilestone     = fmt.Errorf("%w: milestone description is required", growth.ErrValidation)
)
