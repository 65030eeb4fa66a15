/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package reference

import (
	"errors"
	"fmt"

	"github.com/humaidq/nourishnav/growth"
)

var (
	errMissingHeader  = errors.New("missing header row")
	errMissingColumn  = errors.New("missing L, M or S column")
	errShortRow       = errors.New("row has too few columns")
	errNoRows         = errors.New("no data rows")
	errNotInitialized = fmt.Errorf("%w: reference cache has no loader", growth.ErrConfiguration)
)
