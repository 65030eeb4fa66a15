/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"fmt"

	"github.com/humaidq/nourishnav/growth"
)

var (
	errMissingDate = fmt.Errorf("%w: missing date", growth.ErrValidation)
	errInvalidDate = fmt.Errorf("%w: invalid date, expected YYYY-MM-DD", growth.ErrValidation)
	errInvalidBody = fmt.Errorf("%w: invalid JSON body", growth.ErrValidation)
)
