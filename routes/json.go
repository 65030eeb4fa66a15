/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/flamego/flamego"

	"github.com/humaidq/nourishnav/growth"
)

const dateLayout = "2006-01-02"

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 64 << 10

func writeJSON(c flamego.Context, status int, v interface{}) {
	c.ResponseWriter().Header().Set("Content-Type", "application/json")
	c.ResponseWriter().WriteHeader(status)

	if err := json.NewEncoder(c.ResponseWriter()).Encode(v); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, growth.ErrDuplicateRecord):
		return http.StatusConflict
	case errors.Is(err, growth.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, growth.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, growth.ErrDomain):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c flamego.Context, err error) {
	status := statusFor(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "path", c.Request().URL.Path, "error", err)
		msg = "internal error"
	}

	writeJSON(c, status, map[string]string{"error": msg})
}

func decodeJSON(c flamego.Context, v interface{}) error {
	body := http.MaxBytesReader(c.ResponseWriter(), c.Request().Body().ReadCloser(), maxBodyBytes)

	defer func() {
		_ = body.Close()
	}()

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}

	return nil
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errMissingDate
	}

	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, errInvalidDate
	}

	return t, nil
}
